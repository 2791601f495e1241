package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/pulsenet/internal/canon"
)

// snapshot converts a Result to a map[string]any for canonical JSON.
// Only fields that apply to the result's mode are included.
func snapshot(r *Result) map[string]any {
	m := map[string]any{
		"scenario": r.Scenario,
		"mode":     r.Mode,
		"pass":     r.Pass,
	}
	if r.Fingerprint != "" {
		m["fingerprint"] = r.Fingerprint
	}
	if r.ErrorCode != "" {
		m["error"] = r.ErrorCode
		return m
	}

	switch r.Mode {
	case ModeAggregate:
		m["presses"] = r.Presses
		m["low"] = r.Low
		m["high"] = r.High
		m["product"] = r.Product
	case ModeFirstLow:
		periods := make([]any, len(r.Periods))
		for i, p := range r.Periods {
			periods[i] = map[string]any{
				"node":   p.Node,
				"period": p.Period,
			}
		}
		m["periods"] = periods
		m["answer"] = r.Answer
		m["simulated"] = r.Simulated
	}
	return m
}

// Canonical returns the result as canonical JSON.
func (r *Result) Canonical() ([]byte, error) {
	return canon.MarshalCanonical(snapshot(r))
}

// Digest identifies the result's outcome. Two runs of the same scenario
// produce the same digest.
func (r *Result) Digest() (string, error) {
	return canon.Hash(canon.DomainReport, snapshot(r))
}

// RunWithGolden executes a scenario and compares the outcome against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the outcome doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := result.Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
