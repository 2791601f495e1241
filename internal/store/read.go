package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const runColumns = "id, seq, fingerprint, mode, sink, presses, low, high, answer, periods"

// ReadRun retrieves a single run by ID.
// Returns ErrNotFound if no run has that ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return r, nil
}

// ListRuns returns recorded runs, ordered by seq ASC, id ASC COLLATE BINARY.
// A non-empty fingerprint limits the list to runs of that circuit.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, fingerprint string) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if fingerprint != "" {
		query += ` WHERE fingerprint = ?`
		args = append(args, fingerprint)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r           Run
		mode        string
		answer      string
		periodsJSON string
	)
	err := row.Scan(
		&r.ID,
		&r.Seq,
		&r.Fingerprint,
		&mode,
		&r.Sink,
		&r.Presses,
		&r.Low,
		&r.High,
		&answer,
		&periodsJSON,
	)
	if err != nil {
		return Run{}, err
	}
	r.Mode = Mode(mode)

	r.Answer, err = strconv.ParseUint(answer, 10, 64)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: answer: %w", r.ID, err)
	}
	r.Periods, err = unmarshalPeriods(periodsJSON)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: %w", r.ID, err)
	}
	return r, nil
}
