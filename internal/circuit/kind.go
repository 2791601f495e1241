package circuit

import "fmt"

// Kind selects a node's gate behavior.
type Kind int

const (
	// Broadcast forwards any received level to all outputs.
	Broadcast Kind = iota + 1
	// FlipFlop owns one on/off bit, toggled by low pulses.
	FlipFlop
	// Conjunction remembers the last level from each input.
	Conjunction
	// Sink absorbs pulses and never emits.
	Sink
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Broadcast:
		return "broadcast"
	case FlipFlop:
		return "flipflop"
	case Conjunction:
		return "conjunction"
	case Sink:
		return "sink"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Prefix returns the wiring-grammar prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case FlipFlop:
		return "%"
	case Conjunction:
		return "&"
	default:
		return ""
	}
}

// ParseKind maps a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Broadcast, FlipFlop, Conjunction, Sink} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}
