// Package circuit holds the node graph the pulse scheduler runs on.
//
// A Circuit is a flat arena of nodes addressed by NodeID. Each node carries
// its outgoing edges in declared order and a reverse index of its distinct
// inputs, computed once by the Builder. Nodes never point at each other
// directly.
//
// Node behavior is a closed set of kinds dispatched by a switch:
//
//	Broadcast    forwards every level unchanged
//	FlipFlop     ignores high; toggles on low and emits the new state
//	Conjunction  remembers the last level per input; emits low iff all high
//	Sink         absorbs everything
//
// The graph is fixed after Build. Node state changes only through Receive
// and Reset, and the circuit is not safe for concurrent use: one simulation
// owns it at a time.
package circuit
