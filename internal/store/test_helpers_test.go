package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/pulsenet/internal/analysis"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createAggregateRun creates an aggregate run with minimal required fields.
func createAggregateRun(fingerprint string, low, high int64) Run {
	return Run{
		Fingerprint: fingerprint,
		Mode:        ModeAggregate,
		Presses:     1000,
		Low:         low,
		High:        high,
		Answer:      uint64(low * high),
	}
}

// createFirstLowRun creates a first-low run with the given periods.
func createFirstLowRun(fingerprint string, answer uint64, periods ...analysis.Period) Run {
	return Run{
		Fingerprint: fingerprint,
		Mode:        ModeFirstLow,
		Sink:        "rx",
		Presses:     112,
		Answer:      answer,
		Periods:     periods,
	}
}
