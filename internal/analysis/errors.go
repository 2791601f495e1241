package analysis

import (
	"errors"
	"fmt"
)

// Error reports why a circuit cannot be analyzed.
//
// Every analysis error is fatal for the circuit it names. The simulation is
// deterministic, so retrying with the same options fails the same way.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Node names the sink or monitor the error is about, if any.
	Node string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes analysis errors.
type ErrorCode string

const (
	// ErrCodeNonPeriodic indicates a monitor fired off its multiple pattern.
	ErrCodeNonPeriodic ErrorCode = "NON_PERIODIC_FEEDER"

	// ErrCodeUnreachable indicates the sink is not fed by conjunctions.
	ErrCodeUnreachable ErrorCode = "UNREACHABLE_TARGET"

	// ErrCodePressLimit indicates sampling needed more presses than allowed.
	ErrCodePressLimit ErrorCode = "PRESS_LIMIT_EXCEEDED"

	// ErrCodeOverflow indicates the combined period does not fit in 64 bits.
	ErrCodeOverflow ErrorCode = "LCM_OVERFLOW"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNonPeriodic returns true if err is a non-periodic feeder error.
func IsNonPeriodic(err error) bool {
	return hasCode(err, ErrCodeNonPeriodic)
}

// IsUnreachable returns true if err is an unreachable target error.
func IsUnreachable(err error) bool {
	return hasCode(err, ErrCodeUnreachable)
}

// IsPressLimit returns true if err is a press limit error.
func IsPressLimit(err error) bool {
	return hasCode(err, ErrCodePressLimit)
}

// IsOverflow returns true if err is an LCM overflow error.
func IsOverflow(err error) bool {
	return hasCode(err, ErrCodeOverflow)
}

// Code extracts the error code from err, or "" if err is not an *Error.
func Code(err error) ErrorCode {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return Code(err) == code
}
