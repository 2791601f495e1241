package circuit

import "fmt"

// DefaultInitiator is the conventional name of the node the button feeds.
const DefaultInitiator = "broadcaster"

type declaration struct {
	name    string
	kind    Kind
	outputs []string
}

// Builder collects node declarations and seals them into a Circuit.
//
// Declarations may reference targets that are declared later or never;
// Build resolves them all at once.
type Builder struct {
	initiator string
	decls     []declaration
	seen      map[string]bool
}

// NewBuilder starts a circuit whose button feeds the named initiator.
// An empty name selects DefaultInitiator.
func NewBuilder(initiator string) *Builder {
	if initiator == "" {
		initiator = DefaultInitiator
	}
	return &Builder{
		initiator: initiator,
		seen:      make(map[string]bool),
	}
}

// Initiator returns the initiator name the builder was created with.
func (b *Builder) Initiator() string { return b.initiator }

// Declare adds a node with its outgoing edges in order.
func (b *Builder) Declare(name string, kind Kind, outputs ...string) error {
	if name == "" {
		return ErrEmptyNodeName
	}
	if b.seen[name] {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	if len(outputs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOutputs, name)
	}
	for _, out := range outputs {
		if out == "" {
			return fmt.Errorf("%w: output of %s", ErrEmptyNodeName, name)
		}
	}
	if name == b.initiator && kind != Broadcast {
		return fmt.Errorf("%w: %s declared as %s", ErrInitiatorKind, name, kind)
	}

	b.seen[name] = true
	b.decls = append(b.decls, declaration{
		name:    name,
		kind:    kind,
		outputs: append([]string(nil), outputs...),
	})
	return nil
}

// Build seals the declarations. Targets that were never declared become
// Sink nodes with no outputs. Conjunction memory is seeded low for every
// distinct input.
func (b *Builder) Build() (*Circuit, error) {
	if !b.seen[b.initiator] {
		return nil, fmt.Errorf("%w: %s", ErrNoInitiator, b.initiator)
	}

	c := &Circuit{
		nodes:  make([]node, 0, len(b.decls)),
		byName: make(map[string]NodeID, len(b.decls)),
	}
	for _, d := range b.decls {
		c.byName[d.name] = NodeID(len(c.nodes))
		c.nodes = append(c.nodes, node{name: d.name, kind: d.kind})
	}
	for _, d := range b.decls {
		for _, out := range d.outputs {
			if _, ok := c.byName[out]; ok {
				continue
			}
			c.byName[out] = NodeID(len(c.nodes))
			c.nodes = append(c.nodes, node{name: out, kind: Sink, implicit: true})
		}
	}

	for _, d := range b.decls {
		src := c.byName[d.name]
		outs := make([]NodeID, len(d.outputs))
		for i, out := range d.outputs {
			dst := c.byName[out]
			outs[i] = dst
			c.addInput(dst, src)
		}
		c.nodes[src].outputs = outs
	}

	for i := range c.nodes {
		if c.nodes[i].kind == Conjunction {
			c.nodes[i].memory = make(map[NodeID]bool, len(c.nodes[i].inputs))
		}
	}
	c.initiator = c.byName[b.initiator]
	c.Reset()
	return c, nil
}

// addInput records src as an input of dst once, however many edges connect
// them.
func (c *Circuit) addInput(dst, src NodeID) {
	for _, in := range c.nodes[dst].inputs {
		if in == src {
			return
		}
	}
	c.nodes[dst].inputs = append(c.nodes[dst].inputs, src)
}
