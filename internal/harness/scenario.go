package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario modes.
const (
	ModeAggregate = "aggregate"
	ModeFirstLow  = "first_low"
)

// Scenario defines one circuit run and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Wiring is inline wiring text. Exactly one of Wiring and WiringFile
	// must be set.
	Wiring string `yaml:"wiring,omitempty"`

	// WiringFile is a path to wiring text or a .cue circuit.
	// Relative paths are resolved against the scenario file location.
	WiringFile string `yaml:"wiring_file,omitempty"`

	// Initiator names the node the button feeds. Default: "broadcaster".
	Initiator string `yaml:"initiator,omitempty"`

	// Mode selects the run: ModeAggregate or ModeFirstLow.
	Mode string `yaml:"mode"`

	// Presses is the aggregate press count. Zero means 1000.
	Presses int `yaml:"presses,omitempty"`

	// Sink is the node analyzed in first_low mode. Default: "rx".
	Sink string `yaml:"sink,omitempty"`

	// Samples is the per-monitor sample count in first_low mode.
	Samples int `yaml:"samples,omitempty"`

	// MaxPresses bounds first_low sampling.
	MaxPresses int64 `yaml:"max_presses,omitempty"`

	// Expect holds the checked outcome. Unset fields are not checked.
	Expect Expect `yaml:"expect"`
}

// Expect specifies expected scenario outcomes.
type Expect struct {
	Low     *int64   `yaml:"low,omitempty"`
	High    *int64   `yaml:"high,omitempty"`
	Product *int64   `yaml:"product,omitempty"`
	Answer  *uint64  `yaml:"answer,omitempty"`
	Periods []uint64 `yaml:"periods,omitempty"`

	// Error is the expected error code, e.g. NON_PERIODIC_FEEDER or
	// MALFORMED_WIRING. When set, the run must fail with that code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.WiringFile != "" && !filepath.IsAbs(s.WiringFile) {
		s.WiringFile = filepath.Join(filepath.Dir(path), s.WiringFile)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML held in memory.
// A relative wiring_file is left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir whose base name
// matches filter (a filepath.Match pattern; empty matches all). Scenarios
// are returned in file name order.
func LoadScenarios(dir, filter string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob scenarios: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		if filter != "" {
			ok, err := filepath.Match(filter, filepath.Base(path))
			if err != nil {
				return nil, fmt.Errorf("bad filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch {
	case s.Wiring == "" && s.WiringFile == "":
		return fmt.Errorf("one of wiring or wiring_file is required")
	case s.Wiring != "" && s.WiringFile != "":
		return fmt.Errorf("wiring and wiring_file are mutually exclusive")
	}

	switch s.Mode {
	case ModeAggregate:
		if s.Presses < 0 {
			return fmt.Errorf("presses must be non-negative")
		}
		if s.Expect.Answer != nil || len(s.Expect.Periods) > 0 {
			return fmt.Errorf("expect.answer and expect.periods apply to first_low only")
		}
	case ModeFirstLow:
		if s.Samples < 0 || s.MaxPresses < 0 {
			return fmt.Errorf("samples and max_presses must be non-negative")
		}
		if s.Expect.Low != nil || s.Expect.High != nil || s.Expect.Product != nil {
			return fmt.Errorf("expect.low, expect.high and expect.product apply to aggregate only")
		}
	case "":
		return fmt.Errorf("mode is required")
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	return nil
}
