package store

import (
	"context"
	"fmt"
	"strconv"
)

// WriteRun records r and returns it with ID and Seq filled in.
//
// An empty r.ID is replaced by a fresh ID from the store's generator. Seq is
// always assigned by the store: one more than the highest seq recorded.
func (s *Store) WriteRun(ctx context.Context, r Run) (Run, error) {
	if r.Fingerprint == "" {
		return Run{}, fmt.Errorf("write run: empty fingerprint")
	}
	if r.Mode != ModeAggregate && r.Mode != ModeFirstLow {
		return Run{}, fmt.Errorf("write run: unknown mode %q", r.Mode)
	}
	if r.ID == "" {
		r.ID = s.ids.Generate()
	}

	periodsJSON, err := marshalPeriods(r.Periods)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM runs").Scan(&r.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, fingerprint, mode, sink, presses, low, high, answer, periods)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Seq,
		r.Fingerprint,
		string(r.Mode),
		r.Sink,
		r.Presses,
		r.Low,
		r.High,
		strconv.FormatUint(r.Answer, 10),
		periodsJSON,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return r, nil
}
