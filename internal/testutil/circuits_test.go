package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterWiring_Shape(t *testing.T) {
	want := `broadcaster -> g3b0, g5b0
%g3b0 -> g3b1, g3c
%g3b1 -> g3c
&g3c -> g3b0, g3inv
&g3inv -> hub
%g5b0 -> g5b1, g5c
%g5b1 -> g5b2
%g5b2 -> g5c
&g5c -> g5b0, g5b1, g5inv
&g5inv -> hub
&hub -> rx`
	assert.Equal(t, want, CounterWiring(3, 5))
}

func TestCounterWiring_RejectsEvenPeriod(t *testing.T) {
	assert.Panics(t, func() { CounterWiring(4) })
	assert.Panics(t, func() { CounterWiring(1) })
}

func TestMustParse(t *testing.T) {
	c := MustParse(t, CounterWiring(3, 5, 7))
	hub := MustLookup(t, c, "hub")
	require.Len(t, c.Inputs(hub), 3)
	assert.Equal(t, "g3inv", c.Name(c.Inputs(hub)[0]))
}
