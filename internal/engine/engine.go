package engine

import (
	"log/slog"

	"github.com/roach88/pulsenet/internal/circuit"
)

// DefaultPresses is the press count of the aggregate run.
const DefaultPresses = 1000

// Counts tallies delivered pulses by level.
type Counts struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

// Add returns the sum of two tallies.
func (c Counts) Add(o Counts) Counts {
	return Counts{Low: c.Low + o.Low, High: c.High + o.High}
}

// Total returns the number of pulses in the tally.
func (c Counts) Total() int64 { return c.Low + c.High }

// Product returns Low * High, the aggregate answer.
func (c Counts) Product() int64 { return c.Low * c.High }

// Observer is called for every dequeued pulse, before it is delivered.
// press is the 1-based number of the press the pulse belongs to.
type Observer func(press int64, p Pulse)

// Scheduler drives presses through a circuit.
//
// CRITICAL: A Scheduler owns its circuit's state while it runs. Two
// schedulers must not share a circuit without a Reset between runs.
//
// INVARIANTS:
//   - The queue is empty between presses
//   - Pulses are delivered in the order they were emitted (FIFO)
//   - Presses() equals the number of completed presses since the last Reset
type Scheduler struct {
	circuit   *circuit.Circuit
	clock     *Clock
	queue     *pulseQueue
	observers []Observer
	metrics   *Metrics
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithObserver registers fn to see every pulse. Observers run in
// registration order.
func WithObserver(fn Observer) Option {
	return func(s *Scheduler) {
		s.observers = append(s.observers, fn)
	}
}

// WithMetrics records presses and pulses in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// New creates a scheduler over c. The circuit's current state is used as is;
// call Reset first for an independent run.
func New(c *circuit.Circuit, opts ...Option) *Scheduler {
	s := &Scheduler{
		circuit: c,
		clock:   NewClock(),
		queue:   newPulseQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Press delivers one button pulse and drains the resulting cascade.
// It returns the pulses delivered during this press, the button pulse
// included.
func (s *Scheduler) Press() Counts {
	press := s.clock.Next()
	seed := s.circuit.Initiator()
	s.queue.Enqueue(Pulse{Src: seed, Dst: seed, High: false})

	var counts Counts
	for {
		p, ok := s.queue.TryDequeue()
		if !ok {
			break
		}
		if p.High {
			counts.High++
		} else {
			counts.Low++
		}
		for _, obs := range s.observers {
			obs(press, p)
		}

		level, emit := s.circuit.Receive(p.Dst, p.Src, p.High)
		if !emit {
			continue
		}
		for _, out := range s.circuit.Outputs(p.Dst) {
			s.queue.Enqueue(Pulse{Src: p.Dst, Dst: out, High: level})
		}
	}

	if s.metrics != nil {
		s.metrics.observePress(counts)
	}
	return counts
}

// Run performs presses presses and returns the summed tally.
// A non-positive count performs no presses.
func (s *Scheduler) Run(presses int) Counts {
	var total Counts
	for i := 0; i < presses; i++ {
		total = total.Add(s.Press())
	}
	slog.Debug("presses complete",
		"presses", presses,
		"low", total.Low,
		"high", total.High,
	)
	return total
}

// Reset restores the circuit's initial state and rewinds the press clock.
func (s *Scheduler) Reset() {
	s.circuit.Reset()
	s.clock.Reset()
}

// Presses returns how many presses completed since creation or Reset.
func (s *Scheduler) Presses() int64 {
	return s.clock.Current()
}

// Circuit returns the circuit the scheduler drives.
func (s *Scheduler) Circuit() *circuit.Circuit {
	return s.circuit
}

// RunAggregate resets c, performs presses presses and returns the low and
// high pulse totals.
func RunAggregate(c *circuit.Circuit, presses int, opts ...Option) (low, high int64) {
	s := New(c, opts...)
	s.Reset()
	total := s.Run(presses)
	return total.Low, total.High
}
