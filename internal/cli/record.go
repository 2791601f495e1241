package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/pulsenet/internal/store"
)

// recordRun appends r to the run history at dbPath and returns it with its
// ID and seq assigned. An empty dbPath records nothing.
func recordRun(ctx context.Context, dbPath string, r store.Run) (store.Run, error) {
	if dbPath == "" {
		return r, nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return r, &LoadError{Code: ErrCodeStoreFailed, Message: fmt.Sprintf("failed to open database %s", dbPath), Err: err}
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	written, err := st.WriteRun(ctx, r)
	if err != nil {
		return r, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to record run", Err: err}
	}
	slog.Debug("run recorded", "id", written.ID, "seq", written.Seq, "mode", written.Mode)
	return written, nil
}
