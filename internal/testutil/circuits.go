// Package testutil holds circuit fixtures shared by package tests.
package testutil

import (
	"fmt"
	"math/bits"
	"strings"
	"testing"

	"github.com/roach88/pulsenet/internal/circuit"
	"github.com/roach88/pulsenet/internal/wiring"
)

// RingWiring is a three-bit flip-flop ring closed by an inverter. One press
// delivers 8 low and 4 high pulses and leaves every node in its initial state.
const RingWiring = `broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a`

// ChainWiring feeds a conjunction from a flip-flop directly and through an
// inverter. One press delivers 4 low and 4 high pulses; 1000 presses deliver
// 4250 low and 2750 high.
const ChainWiring = `broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output`

// FreeRunningWiring is a three-bit counter that never resets. Its monitor
// inverter fires at presses 3, 7, 11, ... which is not a multiple pattern.
const FreeRunningWiring = `broadcaster -> b0
%b0 -> b1, c
%b1 -> b2, c
%b2 -> c2
&c -> inv
&inv -> hub
&hub -> rx`

// CounterWiring builds one self-resetting binary counter per period, each
// feeding an inverter into a shared hub conjunction that drives rx.
//
// Counter g for period p has flip-flops g<p>b0..b(k-1) chained low to high.
// Set bits of p feed the conjunction g<p>c, which pulses bit 0 and every
// unset bit once the count reaches p. That adds 2^k - p and wraps the counter
// to zero within the same press, so the inverter g<p>inv goes high exactly at
// multiples of p. Periods must be odd and at least 3.
func CounterWiring(periods ...int) string {
	var lines []string
	starts := make([]string, len(periods))
	for i, p := range periods {
		starts[i] = fmt.Sprintf("g%db0", p)
	}
	lines = append(lines, "broadcaster -> "+strings.Join(starts, ", "))

	for _, p := range periods {
		if p < 3 || p%2 == 0 {
			panic(fmt.Sprintf("testutil: counter period %d must be odd and >= 3", p))
		}
		g := fmt.Sprintf("g%d", p)
		width := bits.Len(uint(p))

		for i := 0; i < width; i++ {
			var outs []string
			if i < width-1 {
				outs = append(outs, fmt.Sprintf("%sb%d", g, i+1))
			}
			if p>>i&1 == 1 {
				outs = append(outs, g+"c")
			}
			lines = append(lines, fmt.Sprintf("%%%sb%d -> %s", g, i, strings.Join(outs, ", ")))
		}

		couts := []string{g + "b0"}
		for i := 0; i < width; i++ {
			if p>>i&1 == 0 {
				couts = append(couts, fmt.Sprintf("%sb%d", g, i))
			}
		}
		couts = append(couts, g+"inv")
		lines = append(lines, fmt.Sprintf("&%sc -> %s", g, strings.Join(couts, ", ")))
		lines = append(lines, fmt.Sprintf("&%sinv -> hub", g))
	}
	lines = append(lines, "&hub -> rx")
	return strings.Join(lines, "\n")
}

// MustParse parses wiring text or fails the test.
func MustParse(t testing.TB, text string, opts ...wiring.Option) *circuit.Circuit {
	t.Helper()
	c, err := wiring.ParseString(text, opts...)
	if err != nil {
		t.Fatalf("parse wiring: %v", err)
	}
	return c
}

// MustLookup resolves a node name or fails the test.
func MustLookup(t testing.TB, c *circuit.Circuit, name string) circuit.NodeID {
	t.Helper()
	id, ok := c.Lookup(name)
	if !ok {
		t.Fatalf("node %q not found", name)
	}
	return id
}
