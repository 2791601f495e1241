// Package analysis finds the press at which a sink first receives a low
// pulse without simulating up to it.
//
// The sink is expected to be fed by conjunctions whose own inputs (the
// monitors) each go high at exact multiples of a fixed period. The analyzer
// samples every monitor for a bounded number of presses, checks that each
// one is strictly periodic, and combines the periods with an LCM.
//
// The periodicity is a property of the circuit, not something this package
// can prove. Any deviation is reported as NON_PERIODIC_FEEDER and the
// analysis stops; falling back to brute force is the caller's decision.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/pulsenet/internal/circuit"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/intmath"
)

const (
	// DefaultSampleCount is how many firing presses are collected per monitor.
	DefaultSampleCount = 16

	// DefaultMaxPresses bounds the sampling simulation.
	DefaultMaxPresses = 1 << 20

	// DefaultSink is the conventional name of the analyzed sink.
	DefaultSink = "rx"
)

type options struct {
	samples    int
	maxPresses int64
	logger     *slog.Logger
}

// Option configures an analysis run.
type Option func(*options)

// WithSampleCount sets how many firing presses to collect per monitor.
// Default: DefaultSampleCount. Values below 2 cannot detect a deviation and
// are raised to 2.
func WithSampleCount(k int) Option {
	return func(o *options) {
		o.samples = k
	}
}

// WithMaxPresses bounds the number of presses sampling may simulate.
// Default: DefaultMaxPresses.
func WithMaxPresses(n int64) Option {
	return func(o *options) {
		o.maxPresses = n
	}
}

// WithLogger sets the logger for progress messages. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{
		samples:    DefaultSampleCount,
		maxPresses: DefaultMaxPresses,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.samples < 2 {
		o.samples = 2
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Series is the presses at which one monitor was the source of a high
// pulse, ascending and without repeats.
type Series struct {
	Node    string
	Presses []int64
}

// Period is a monitor's inferred firing period.
type Period struct {
	Node   string `json:"node"`
	Period uint64 `json:"period"`
}

// Result is the outcome of FindFirstLowPress.
type Result struct {
	Periods   []Period `json:"periods"`
	Answer    uint64   `json:"answer"`
	Simulated int64    `json:"simulated"`
}

// String renders the result as "p1,p2,...->answer".
func (r *Result) String() string {
	parts := make([]string, len(r.Periods))
	for i, p := range r.Periods {
		parts[i] = strconv.FormatUint(p.Period, 10)
	}
	return strings.Join(parts, ",") + "->" + strconv.FormatUint(r.Answer, 10)
}

// MonitorSet returns the inputs of the conjunctions that feed sink,
// de-duplicated, in edge order.
func MonitorSet(c *circuit.Circuit, sink string) ([]circuit.NodeID, error) {
	id, ok := c.Lookup(sink)
	if !ok {
		return nil, &Error{Code: ErrCodeUnreachable, Message: "sink not in circuit", Node: sink}
	}
	feeders := c.Inputs(id)
	if len(feeders) == 0 {
		return nil, &Error{Code: ErrCodeUnreachable, Message: "sink has no inputs", Node: sink}
	}

	var monitors []circuit.NodeID
	seen := make(map[circuit.NodeID]bool)
	for _, f := range feeders {
		if c.Kind(f) != circuit.Conjunction {
			return nil, &Error{
				Code:    ErrCodeUnreachable,
				Message: fmt.Sprintf("feeder %s is a %s, want conjunction", c.Name(f), c.Kind(f)),
				Node:    sink,
				Details: map[string]string{"feeder": c.Name(f)},
			}
		}
		for _, m := range c.Inputs(f) {
			if seen[m] {
				continue
			}
			seen[m] = true
			monitors = append(monitors, m)
		}
	}
	if len(monitors) == 0 {
		return nil, &Error{Code: ErrCodeUnreachable, Message: "feeders have no inputs", Node: sink}
	}
	return monitors, nil
}

// Sample resets c and presses until every monitor has been the source of a
// high pulse in the configured number of distinct presses. Several high
// pulses from one monitor in one press count once. It returns one series per
// monitor, trimmed to the sample count, and the number of presses simulated.
func Sample(c *circuit.Circuit, monitors []circuit.NodeID, opts ...Option) ([]Series, int64, error) {
	o := buildOptions(opts)

	index := make(map[circuit.NodeID]int, len(monitors))
	series := make([]Series, len(monitors))
	for i, m := range monitors {
		index[m] = i
		series[i] = Series{Node: c.Name(m), Presses: make([]int64, 0, o.samples)}
	}

	sched := engine.New(c, engine.WithObserver(func(press int64, p engine.Pulse) {
		if !p.High {
			return
		}
		i, ok := index[p.Src]
		if !ok {
			return
		}
		s := &series[i]
		if n := len(s.Presses); n > 0 && s.Presses[n-1] == press {
			return
		}
		s.Presses = append(s.Presses, press)
	}))
	sched.Reset()

	pending := len(series)
	for pending > 0 {
		if sched.Presses() >= o.maxPresses {
			return nil, sched.Presses(), pressLimit(series, o)
		}
		sched.Press()

		pending = 0
		for i := range series {
			if len(series[i].Presses) < o.samples {
				pending++
			}
		}
	}

	for i := range series {
		series[i].Presses = series[i].Presses[:o.samples]
	}
	return series, sched.Presses(), nil
}

func pressLimit(series []Series, o options) *Error {
	var short []string
	for _, s := range series {
		if len(s.Presses) < o.samples {
			short = append(short, fmt.Sprintf("%s=%d", s.Node, len(s.Presses)))
		}
	}
	return &Error{
		Code:    ErrCodePressLimit,
		Message: fmt.Sprintf("%d presses without %d samples per monitor", o.maxPresses, o.samples),
		Details: map[string]string{
			"max_presses": strconv.FormatInt(o.maxPresses, 10),
			"short":       strings.Join(short, ","),
		},
	}
}

// InferPeriods takes each series' first press as its period and checks that
// sample i is exactly period*(i+1). The first violation is returned as a
// NON_PERIODIC_FEEDER error.
func InferPeriods(series []Series) ([]Period, error) {
	periods := make([]Period, len(series))
	for i, s := range series {
		if len(s.Presses) == 0 || s.Presses[0] <= 0 {
			return nil, &Error{Code: ErrCodeNonPeriodic, Message: "no firing observed", Node: s.Node}
		}
		period := s.Presses[0]
		for k, press := range s.Presses {
			want := period * int64(k+1)
			if press != want {
				return nil, &Error{
					Code:    ErrCodeNonPeriodic,
					Message: fmt.Sprintf("sample %d at press %d, want %d", k+1, press, want),
					Node:    s.Node,
					Details: map[string]string{
						"period":   strconv.FormatInt(period, 10),
						"sample":   strconv.Itoa(k + 1),
						"observed": strconv.FormatInt(press, 10),
						"expected": strconv.FormatInt(want, 10),
					},
				}
			}
		}
		periods[i] = Period{Node: s.Node, Period: uint64(period)}
	}
	return periods, nil
}

// Combine returns the least common multiple of the periods.
func Combine(periods []Period) (uint64, error) {
	if len(periods) == 0 {
		return 0, &Error{Code: ErrCodeUnreachable, Message: "no periods to combine"}
	}
	values := make([]uint64, len(periods))
	for i, p := range periods {
		values[i] = p.Period
	}
	lcm, err := intmath.LCMAll(values...)
	if errors.Is(err, intmath.ErrOverflow) {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = strconv.FormatUint(v, 10)
		}
		return 0, &Error{
			Code:    ErrCodeOverflow,
			Message: "least common multiple exceeds 64 bits",
			Details: map[string]string{"periods": strings.Join(parts, ",")},
		}
	}
	if err != nil {
		return 0, err
	}
	return lcm, nil
}

// FindFirstLowPress returns the first press at which sink receives a low
// pulse, assuming every monitor of sink fires periodically.
//
// c is reset before sampling and left in the sampled state afterwards.
func FindFirstLowPress(c *circuit.Circuit, sink string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	monitors, err := MonitorSet(c, sink)
	if err != nil {
		return nil, err
	}
	series, simulated, err := Sample(c, monitors, opts...)
	if err != nil {
		return nil, err
	}
	periods, err := InferPeriods(series)
	if err != nil {
		return nil, err
	}
	answer, err := Combine(periods)
	if err != nil {
		return nil, err
	}

	o.logger.Info("first low press found",
		"sink", sink,
		"monitors", len(monitors),
		"simulated", simulated,
		"answer", answer,
	)
	return &Result{Periods: periods, Answer: answer, Simulated: simulated}, nil
}
