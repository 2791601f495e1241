// Package wiring builds circuits from their textual description.
//
// The line grammar is
//
//	[prefix]name -> target1, target2, ...
//
// where prefix is "%" for a FlipFlop, "&" for a Conjunction, or absent. An
// unprefixed line declares the initiator as a Broadcast node and any other
// name as a Sink. Names that only appear as targets become implicit Sinks.
//
// Circuits can also be declared in CUE, see LoadCUE.
package wiring

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/roach88/pulsenet/internal/circuit"
)

// ErrCodeMalformed identifies wiring that does not match the grammar.
const ErrCodeMalformed = "MALFORMED_WIRING"

// ParseError reports a wiring line that cannot be read.
type ParseError struct {
	Code    string
	Line    int // 1-based; 0 when not tied to a line
	Text    string
	Message string
	Err     error // underlying builder error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s (%q)", e.Code, e.Line, e.Message, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying builder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func malformed(line int, text, format string, args ...any) *ParseError {
	return &ParseError{
		Code:    ErrCodeMalformed,
		Line:    line,
		Text:    text,
		Message: fmt.Sprintf(format, args...),
	}
}

type options struct {
	initiator string
}

// Option configures parsing.
type Option func(*options)

// WithInitiator names the node the button feeds.
// Default: circuit.DefaultInitiator ("broadcaster").
func WithInitiator(name string) Option {
	return func(o *options) {
		o.initiator = name
	}
}

func buildOptions(opts []Option) options {
	o := options{initiator: circuit.DefaultInitiator}
	for _, opt := range opts {
		opt(&o)
	}
	if o.initiator == "" {
		o.initiator = circuit.DefaultInitiator
	}
	return o
}

var validName = regexp.MustCompile(`^\w+$`)

// Parse reads wiring lines from r and builds the circuit.
// Blank lines are skipped.
func Parse(r io.Reader, opts ...Option) (*circuit.Circuit, error) {
	o := buildOptions(opts)
	b := circuit.NewBuilder(o.initiator)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		name, kind, outputs, err := parseLine(lineNo, text, o.initiator)
		if err != nil {
			return nil, err
		}
		if err := b.Declare(name, kind, outputs...); err != nil {
			pe := malformed(lineNo, text, "%v", err)
			pe.Err = err
			return nil, pe
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wiring: %w", err)
	}

	c, err := b.Build()
	if err != nil {
		return nil, &ParseError{Code: ErrCodeMalformed, Message: err.Error(), Err: err}
	}
	return c, nil
}

// ParseString parses wiring held in a string.
func ParseString(s string, opts ...Option) (*circuit.Circuit, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile parses the wiring file at path.
func ParseFile(path string, opts ...Option) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wiring: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// parseLine splits one non-empty line into its declaration.
func parseLine(lineNo int, text, initiator string) (string, circuit.Kind, []string, error) {
	lhs, rhs, ok := strings.Cut(text, "->")
	if !ok {
		return "", 0, nil, malformed(lineNo, text, "missing \"->\"")
	}
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)

	kind := circuit.Sink
	switch {
	case strings.HasPrefix(lhs, "%"):
		kind, lhs = circuit.FlipFlop, lhs[1:]
	case strings.HasPrefix(lhs, "&"):
		kind, lhs = circuit.Conjunction, lhs[1:]
	}
	if !validName.MatchString(lhs) {
		return "", 0, nil, malformed(lineNo, text, "invalid node name %q", lhs)
	}
	if lhs == initiator {
		kind = circuit.Broadcast
	}

	if rhs == "" {
		return "", 0, nil, malformed(lineNo, text, "no targets")
	}
	parts := strings.Split(rhs, ",")
	outputs := make([]string, len(parts))
	for i, part := range parts {
		target := strings.TrimSpace(part)
		if !validName.MatchString(target) {
			return "", 0, nil, malformed(lineNo, text, "invalid target name %q", target)
		}
		outputs[i] = target
	}
	return lhs, kind, outputs, nil
}
