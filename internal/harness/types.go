package harness

import "github.com/roach88/pulsenet/internal/analysis"

// Result is the outcome of a scenario execution.
type Result struct {
	// Scenario is the name of the scenario that produced this result.
	Scenario string `json:"scenario"`

	// Mode is the scenario mode.
	Mode string `json:"mode"`

	// Fingerprint identifies the circuit topology. Empty if the wiring
	// could not be built.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Pass indicates every expectation matched.
	Pass bool `json:"pass"`

	// Aggregate outcome.
	Presses int   `json:"presses,omitempty"`
	Low     int64 `json:"low,omitempty"`
	High    int64 `json:"high,omitempty"`
	Product int64 `json:"product,omitempty"`

	// First-low outcome.
	Answer    uint64            `json:"answer,omitempty"`
	Periods   []analysis.Period `json:"periods,omitempty"`
	Simulated int64             `json:"simulated,omitempty"`

	// ErrorCode is the code of the error the run failed with, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains expectation mismatches.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(s *Scenario) *Result {
	return &Result{
		Scenario: s.Name,
		Mode:     s.Mode,
		Pass:     true,
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// PeriodValues returns the inferred periods without node names.
func (r *Result) PeriodValues() []uint64 {
	values := make([]uint64, len(r.Periods))
	for i, p := range r.Periods {
		values[i] = p.Period
	}
	return values
}
