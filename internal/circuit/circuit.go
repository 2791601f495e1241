package circuit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/pulsenet/internal/canon"
)

// NodeID indexes a node within its Circuit. IDs follow declaration order,
// with implicit sinks after all declared nodes.
type NodeID int

// Sentinel errors returned by the Builder.
var (
	ErrNoInitiator   = errors.New("circuit: initiator not declared")
	ErrInitiatorKind = errors.New("circuit: initiator must be a broadcast node")
	ErrDuplicateNode = errors.New("circuit: node declared twice")
	ErrNoOutputs     = errors.New("circuit: node declared without outputs")
	ErrEmptyNodeName = errors.New("circuit: empty node name")
)

// node is one arena slot. Only the fields for its kind are used.
type node struct {
	name     string
	kind     Kind
	implicit bool // materialized from a dangling target
	outputs  []NodeID
	inputs   []NodeID

	on bool // FlipFlop

	memory map[NodeID]bool // Conjunction: last level per input
	highs  int             // Conjunction: count of true entries in memory
}

// Circuit owns every node of a wiring and the name index.
type Circuit struct {
	nodes     []node
	byName    map[string]NodeID
	initiator NodeID
}

// Len returns the number of nodes, implicit sinks included.
func (c *Circuit) Len() int { return len(c.nodes) }

// Initiator returns the node that receives the button pulse.
func (c *Circuit) Initiator() NodeID { return c.initiator }

// Lookup resolves a node name.
func (c *Circuit) Lookup(name string) (NodeID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Name returns the name of id.
func (c *Circuit) Name(id NodeID) string { return c.nodes[id].name }

// Kind returns the kind of id.
func (c *Circuit) Kind(id NodeID) Kind { return c.nodes[id].kind }

// Implicit reports whether id was created for an undeclared target.
func (c *Circuit) Implicit(id NodeID) bool { return c.nodes[id].implicit }

// Outputs returns the outgoing edges of id in declared order.
// The slice is owned by the circuit and must not be modified.
func (c *Circuit) Outputs(id NodeID) []NodeID { return c.nodes[id].outputs }

// Inputs returns the distinct nodes with an edge into id, in the order the
// edges were first declared. The slice must not be modified.
func (c *Circuit) Inputs(id NodeID) []NodeID { return c.nodes[id].inputs }

// String renders the declared nodes back into wiring text, one line per
// node in declaration order. Parsing the result yields an equal topology.
func (c *Circuit) String() string {
	var b strings.Builder
	for i := range c.nodes {
		n := &c.nodes[i]
		if n.implicit {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(n.kind.Prefix())
		b.WriteString(n.name)
		b.WriteString(" -> ")
		for j, out := range n.outputs {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.nodes[out].name)
		}
	}
	return b.String()
}

// Fingerprint identifies the topology: node names, kinds and edges. Node
// state does not contribute, so a circuit keeps its fingerprint across runs.
func (c *Circuit) Fingerprint() (string, error) {
	nodes := make([]any, len(c.nodes))
	for i := range c.nodes {
		n := &c.nodes[i]
		outs := make([]string, len(n.outputs))
		for j, out := range n.outputs {
			outs[j] = c.nodes[out].name
		}
		nodes[i] = map[string]any{
			"name":    n.name,
			"kind":    n.kind.String(),
			"outputs": outs,
		}
	}
	h, err := canon.Hash(canon.DomainCircuit, map[string]any{
		"initiator": c.nodes[c.initiator].name,
		"nodes":     nodes,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return h, nil
}

// CountByKind tallies nodes per kind.
func (c *Circuit) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, 4)
	for i := range c.nodes {
		counts[c.nodes[i].kind]++
	}
	return counts
}
