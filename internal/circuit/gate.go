package circuit

// Receive delivers one pulse from src to dst and applies dst's gate rule.
// It returns the level dst emits to every output, or ok=false when dst stays
// silent.
//
// A Conjunction records the incoming level before testing its memory, so the
// pulse that completes an all-high memory is the one that yields low.
func (c *Circuit) Receive(dst, src NodeID, high bool) (level bool, ok bool) {
	n := &c.nodes[dst]
	switch n.kind {
	case Broadcast:
		return high, true
	case FlipFlop:
		if high {
			return false, false
		}
		n.on = !n.on
		return n.on, true
	case Conjunction:
		prev, known := n.memory[src]
		if known && prev {
			n.highs--
		}
		if high {
			n.highs++
		}
		n.memory[src] = high
		return n.highs != len(n.memory), true
	default:
		return false, false
	}
}

// Reset restores the initial state: every FlipFlop off and every
// Conjunction input remembered as low.
func (c *Circuit) Reset() {
	for i := range c.nodes {
		n := &c.nodes[i]
		switch n.kind {
		case FlipFlop:
			n.on = false
		case Conjunction:
			for _, in := range n.inputs {
				n.memory[in] = false
			}
			n.highs = 0
		}
	}
}

// On reports whether a FlipFlop is currently on. Other kinds report false.
func (c *Circuit) On(id NodeID) bool {
	return c.nodes[id].kind == FlipFlop && c.nodes[id].on
}

// Memory returns a copy of a Conjunction's remembered levels keyed by input
// name. Other kinds return nil.
func (c *Circuit) Memory(id NodeID) map[string]bool {
	n := &c.nodes[id]
	if n.kind != Conjunction {
		return nil
	}
	out := make(map[string]bool, len(n.memory))
	for in, level := range n.memory {
		out[c.nodes[in].name] = level
	}
	return out
}

// FlipFlopStates returns the on/off bit of every FlipFlop keyed by name.
func (c *Circuit) FlipFlopStates() map[string]bool {
	out := make(map[string]bool)
	for i := range c.nodes {
		if c.nodes[i].kind == FlipFlop {
			out[c.nodes[i].name] = c.nodes[i].on
		}
	}
	return out
}
