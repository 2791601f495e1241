package store

import (
	"errors"

	"github.com/roach88/pulsenet/internal/analysis"
)

// ErrNotFound is returned when a run ID is not in the store.
var ErrNotFound = errors.New("store: run not found")

// Mode names the kind of run that produced a record.
type Mode string

const (
	// ModeAggregate is a fixed number of presses reporting pulse totals.
	ModeAggregate Mode = "aggregate"

	// ModeFirstLow is a periodicity analysis for a sink.
	ModeFirstLow Mode = "first_low"
)

// Run is one recorded simulation outcome.
//
// For ModeAggregate, Presses is the press count and Answer is Low*High.
// For ModeFirstLow, Presses is the number of presses simulated while
// sampling, Sink names the analyzed node and Periods holds one entry per
// monitor.
type Run struct {
	ID          string            `json:"id"`
	Seq         int64             `json:"seq"`
	Fingerprint string            `json:"fingerprint"`
	Mode        Mode              `json:"mode"`
	Sink        string            `json:"sink,omitempty"`
	Presses     int64             `json:"presses"`
	Low         int64             `json:"low"`
	High        int64             `json:"high"`
	Answer      uint64            `json:"answer"`
	Periods     []analysis.Period `json:"periods,omitempty"`
}
