package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/circuit"
	"github.com/roach88/pulsenet/internal/wiring"
)

// Error code constants for failures outside the simulation itself.
// Wiring and analysis failures use their own codes (MALFORMED_WIRING,
// NON_PERIODIC_FEEDER, ...).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeStoreFailed = "E008" // Run history unavailable
)

// LoadError represents an input the command could not load: a wiring
// file or the run history database.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadCircuit builds a circuit from a wiring file. Files ending in .cue are
// compiled as CUE; anything else is parsed as wiring text.
func loadCircuit(path, initiator string) (*circuit.Circuit, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("wiring file not found: %s", path),
			Err:     err,
		}
	}

	opts := []wiring.Option{wiring.WithInitiator(initiator)}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return wiring.LoadCUE(path, opts...)
	}
	return wiring.ParseFile(path, opts...)
}

// reportError writes err through the formatter and maps it to an exit code.
// Wiring and analysis failures are run failures (exit 1); everything else
// is a command error (exit 2).
func reportError(f *OutputFormatter, err error) error {
	var (
		loadErr  *LoadError
		parseErr *wiring.ParseError
		anErr    *analysis.Error
	)
	switch {
	case errors.As(err, &loadErr):
		if outErr := f.Error(loadErr.Code, loadErr.Message, nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, loadErr.Message, loadErr.Err)

	case errors.As(err, &parseErr):
		var details any
		if parseErr.Line > 0 {
			details = map[string]string{
				"line": strconv.Itoa(parseErr.Line),
				"text": parseErr.Text,
			}
		}
		if outErr := f.Error(parseErr.Code, parseErr.Message, details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "malformed wiring", err)

	case errors.As(err, &anErr):
		details := map[string]string{}
		for k, v := range anErr.Details {
			details[k] = v
		}
		if anErr.Node != "" {
			details["node"] = anErr.Node
		}
		if outErr := f.Error(string(anErr.Code), anErr.Message, details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "analysis failed", err)

	default:
		if outErr := f.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "command failed", err)
	}
}
