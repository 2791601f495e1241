package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/circuit"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/wiring"
)

// Harness runs scenarios.
type Harness struct {
	logger  *slog.Logger
	metrics *engine.Metrics
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger passed to the analyzer.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// WithMetrics records aggregate presses in m. The counters are safe to
// share between concurrently running scenarios.
func WithMetrics(m *engine.Metrics) Option {
	return func(h *Harness) {
		h.metrics = m
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(s *Scenario) (*Result, error) {
	return New().Run(s)
}

// Run executes a test scenario and returns the result.
//
// Each scenario builds a fresh circuit, so Run is safe to call from several
// goroutines at once. Malformed wiring and analysis failures are outcomes
// and land in the result; the returned error is reserved for scenarios that
// could not be run at all, such as an unreadable wiring file.
func (h *Harness) Run(s *Scenario) (*Result, error) {
	result := NewResult(s)

	c, err := loadCircuit(s)
	if err != nil {
		if !wiring.IsParseError(err) {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		result.ErrorCode = wiring.ErrCodeMalformed
		checkExpect(result, s.Expect)
		return result, nil
	}

	result.Fingerprint, err = c.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	switch s.Mode {
	case ModeAggregate:
		h.runAggregate(s, c, result)
	case ModeFirstLow:
		if err := h.runFirstLow(s, c, result); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	default:
		return nil, fmt.Errorf("scenario %s: unknown mode %q", s.Name, s.Mode)
	}

	checkExpect(result, s.Expect)
	return result, nil
}

func (h *Harness) runAggregate(s *Scenario, c *circuit.Circuit, result *Result) {
	presses := s.Presses
	if presses == 0 {
		presses = engine.DefaultPresses
	}

	var opts []engine.Option
	if h.metrics != nil {
		opts = append(opts, engine.WithMetrics(h.metrics))
	}
	low, high := engine.RunAggregate(c, presses, opts...)

	result.Presses = presses
	result.Low = low
	result.High = high
	result.Product = low * high
}

func (h *Harness) runFirstLow(s *Scenario, c *circuit.Circuit, result *Result) error {
	sink := s.Sink
	if sink == "" {
		sink = analysis.DefaultSink
	}

	opts := []analysis.Option{analysis.WithLogger(h.logger)}
	if s.Samples > 0 {
		opts = append(opts, analysis.WithSampleCount(s.Samples))
	}
	if s.MaxPresses > 0 {
		opts = append(opts, analysis.WithMaxPresses(s.MaxPresses))
	}

	res, err := analysis.FindFirstLowPress(c, sink, opts...)
	if err != nil {
		code := analysis.Code(err)
		if code == "" {
			return err
		}
		result.ErrorCode = string(code)
		return nil
	}

	result.Answer = res.Answer
	result.Periods = res.Periods
	result.Simulated = res.Simulated
	return nil
}

// loadCircuit builds the scenario's circuit from inline text, a wiring
// file, or a .cue file.
func loadCircuit(s *Scenario) (*circuit.Circuit, error) {
	opts := []wiring.Option{wiring.WithInitiator(s.Initiator)}
	switch {
	case s.Wiring != "":
		return wiring.ParseString(s.Wiring, opts...)
	case strings.EqualFold(filepath.Ext(s.WiringFile), ".cue"):
		return wiring.LoadCUE(s.WiringFile, opts...)
	default:
		return wiring.ParseFile(s.WiringFile, opts...)
	}
}
