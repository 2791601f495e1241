package engine

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/circuit"
	fixtures "github.com/roach88/pulsenet/internal/testutil"
)

// trace renders the pulses of the next press as "src -level-> dst".
func trace(s *Scheduler) []string {
	var out []string
	c := s.Circuit()
	obs := func(_ int64, p Pulse) {
		out = append(out, fmt.Sprintf("%s -%s-> %s", c.Name(p.Src), p.Level(), c.Name(p.Dst)))
	}
	s.observers = append(s.observers, obs)
	defer func() { s.observers = s.observers[:len(s.observers)-1] }()
	s.Press()
	return out
}

func TestScheduler_Press_RingCounts(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.RingWiring)
	s := New(c)

	counts := s.Press()
	assert.Equal(t, Counts{Low: 8, High: 4}, counts)
	assert.Equal(t, int64(1), s.Presses())
	assert.Equal(t, 0, s.queue.Len(), "queue must drain within a press")
}

func TestScheduler_Press_RingTrace(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.RingWiring)

	got := trace(New(c))
	want := []string{
		"broadcaster -low-> broadcaster",
		"broadcaster -low-> a",
		"broadcaster -low-> b",
		"broadcaster -low-> c",
		"a -high-> b",
		"b -high-> c",
		"c -high-> inv",
		"inv -low-> a",
		"a -low-> b",
		"b -low-> c",
		"c -low-> inv",
		"inv -high-> a",
	}
	assert.Equal(t, want, got)
}

func TestScheduler_Press_ChainTrace(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.ChainWiring)

	got := trace(New(c))
	want := []string{
		"broadcaster -low-> broadcaster",
		"broadcaster -low-> a",
		"a -high-> inv",
		"a -high-> con",
		"inv -low-> b",
		"con -high-> output",
		"b -high-> con",
		"con -low-> output",
	}
	assert.Equal(t, want, got)
}

// Press 3 of the chain depends on delivery order. Depth-first delivery would
// tally 4 low and 4 high, and no low pulse would reach output.
func TestScheduler_Press_BreadthFirstOrdering(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.ChainWiring)
	s := New(c)
	output := fixtures.MustLookup(t, c, "output")

	var lowsToOutput []int64
	s.observers = append(s.observers, func(press int64, p Pulse) {
		if p.Dst == output && !p.High {
			lowsToOutput = append(lowsToOutput, press)
		}
	})

	assert.Equal(t, Counts{Low: 4, High: 4}, s.Press())
	assert.Equal(t, Counts{Low: 4, High: 2}, s.Press())
	assert.Equal(t, Counts{Low: 5, High: 3}, s.Press())
	assert.Equal(t, []int64{1, 3}, lowsToOutput)
}

func TestRunAggregate(t *testing.T) {
	tests := []struct {
		name     string
		wiring   string
		presses  int
		wantLow  int64
		wantHigh int64
	}{
		{"ring one press", fixtures.RingWiring, 1, 8, 4},
		{"ring", fixtures.RingWiring, DefaultPresses, 8000, 4000},
		{"chain one press", fixtures.ChainWiring, 1, 4, 4},
		{"chain", fixtures.ChainWiring, DefaultPresses, 4250, 2750},
		{"zero presses", fixtures.ChainWiring, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixtures.MustParse(t, tt.wiring)
			low, high := RunAggregate(c, tt.presses)
			assert.Equal(t, tt.wantLow, low)
			assert.Equal(t, tt.wantHigh, high)
		})
	}
}

func TestCounts_Product(t *testing.T) {
	assert.Equal(t, int64(32000000), Counts{Low: 8000, High: 4000}.Product())
	assert.Equal(t, int64(11687500), Counts{Low: 4250, High: 2750}.Product())
	assert.Equal(t, Counts{Low: 3, High: 5}, Counts{Low: 1, High: 2}.Add(Counts{Low: 2, High: 3}))
	assert.Equal(t, int64(8), Counts{Low: 3, High: 5}.Total())
}

func TestScheduler_Deterministic(t *testing.T) {
	first := fixtures.MustParse(t, fixtures.ChainWiring)
	second := fixtures.MustParse(t, fixtures.ChainWiring)

	a := New(first)
	b := New(second)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Press(), b.Press(), "press %d diverged", i+1)
	}
	assert.Equal(t, first.FlipFlopStates(), second.FlipFlopStates())
}

func TestScheduler_Reset(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.ChainWiring)
	s := New(c)

	first := s.Run(7)
	s.Reset()
	assert.Equal(t, int64(0), s.Presses())
	for _, on := range c.FlipFlopStates() {
		assert.False(t, on, "flip-flops must be off after reset")
	}

	assert.Equal(t, first, s.Run(7), "run after reset must repeat the first run")
	assert.Equal(t, int64(7), s.Presses())
}

func TestScheduler_StateCarriesAcrossPresses(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.ChainWiring)
	s := New(c)

	s.Press()
	a, _ := c.Lookup("a")
	assert.True(t, c.On(a), "a toggles on in press 1")

	// Press 2 turns a back off and sends a low pulse on.
	assert.Equal(t, Counts{Low: 4, High: 2}, s.Press())
	assert.False(t, c.On(a))
}

func TestScheduler_ObserverPressNumbers(t *testing.T) {
	c := fixtures.MustParse(t, fixtures.RingWiring)

	perPress := map[int64]int{}
	var firsts []Pulse
	s := New(c, WithObserver(func(press int64, p Pulse) {
		if perPress[press] == 0 {
			firsts = append(firsts, p)
		}
		perPress[press]++
	}))
	s.Run(3)

	assert.Equal(t, map[int64]int{1: 12, 2: 12, 3: 12}, perPress)
	require.Len(t, firsts, 3)
	for _, p := range firsts {
		assert.Equal(t, c.Initiator(), p.Src, "each press starts at the button")
		assert.Equal(t, c.Initiator(), p.Dst)
		assert.False(t, p.High)
	}
}

func TestScheduler_ObserversRunInOrder(t *testing.T) {
	c := fixtures.MustParse(t, "broadcaster -> x")

	var calls []string
	s := New(c,
		WithObserver(func(int64, Pulse) { calls = append(calls, "first") }),
		WithObserver(func(int64, Pulse) { calls = append(calls, "second") }),
	)
	s.Press()

	assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
}

func TestScheduler_SinkOnlyInitiator(t *testing.T) {
	b := circuit.NewBuilder("")
	require.NoError(t, b.Declare("broadcaster", circuit.Broadcast, "out"))
	c, err := b.Build()
	require.NoError(t, err)

	low, high := RunAggregate(c, 10)
	assert.Equal(t, int64(20), low)
	assert.Equal(t, int64(0), high)
}

func TestMetrics_ObservePress(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := fixtures.MustParse(t, fixtures.RingWiring)

	RunAggregate(c, 3, WithMetrics(m))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.presses))
	assert.Equal(t, float64(24), testutil.ToFloat64(m.pulses.WithLabelValues("low")))
	assert.Equal(t, float64(12), testutil.ToFloat64(m.pulses.WithLabelValues("high")))

	n, err := testutil.GatherAndCount(reg, "pulsenet_pulses_total", "pulsenet_presses_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
