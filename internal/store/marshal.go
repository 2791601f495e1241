package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/canon"
)

// marshalPeriods converts periods to canonical JSON TEXT for storage.
func marshalPeriods(periods []analysis.Period) (string, error) {
	items := make([]any, len(periods))
	for i, p := range periods {
		items[i] = map[string]any{
			"node":   p.Node,
			"period": p.Period,
		}
	}
	data, err := canon.MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("marshal periods: %w", err)
	}
	return string(data), nil
}

// unmarshalPeriods parses stored periods. An empty list yields nil.
// Periods decode straight into uint64, so values above 2^53 are exact.
func unmarshalPeriods(data string) ([]analysis.Period, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var periods []analysis.Period
	if err := json.Unmarshal([]byte(data), &periods); err != nil {
		return nil, fmt.Errorf("unmarshal periods: %w", err)
	}
	return periods, nil
}
