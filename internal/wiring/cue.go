package wiring

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/pulsenet/internal/circuit"
)

// cueNode is the shape of one entry under circuit:.
type cueNode struct {
	Kind    string   `json:"kind"`
	Outputs []string `json:"outputs"`
}

// LoadCUE builds a circuit from a CUE file of the form
//
//	initiator: "broadcaster" // optional
//	circuit: {
//		broadcaster: {kind: "broadcast", outputs: ["a"]}
//		a: {kind: "flipflop", outputs: ["b"]}
//		b: {kind: "conjunction", outputs: ["rx"]}
//	}
//
// Nodes are declared in field order. A top-level initiator field takes
// precedence over WithInitiator.
func LoadCUE(path string, opts ...Option) (*circuit.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wiring: %w", err)
	}
	return CompileCUE(path, data, opts...)
}

// CompileCUE is LoadCUE over source already in memory. filename is used in
// error positions only.
func CompileCUE(filename string, src []byte, opts ...Option) (*circuit.Circuit, error) {
	o := buildOptions(opts)

	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &ParseError{Code: ErrCodeMalformed, Message: fmt.Sprintf("compiling CUE: %v", err), Err: err}
	}

	if initVal := value.LookupPath(cue.ParsePath("initiator")); initVal.Exists() {
		name, err := initVal.String()
		if err != nil {
			return nil, cueError(initVal, "initiator must be a string: %v", err)
		}
		o.initiator = name
	}

	nodesVal := value.LookupPath(cue.ParsePath("circuit"))
	if !nodesVal.Exists() {
		return nil, &ParseError{Code: ErrCodeMalformed, Message: "missing circuit field"}
	}
	iter, err := nodesVal.Fields()
	if err != nil {
		return nil, cueError(nodesVal, "circuit must be a struct: %v", err)
	}

	b := circuit.NewBuilder(o.initiator)
	for iter.Next() {
		name := iter.Label()
		var n cueNode
		if err := iter.Value().Decode(&n); err != nil {
			return nil, cueError(iter.Value(), "node %s: %v", name, err)
		}
		kind, err := circuit.ParseKind(n.Kind)
		if err != nil {
			return nil, cueError(iter.Value(), "node %s: %v", name, err)
		}
		if err := b.Declare(name, kind, n.Outputs...); err != nil {
			pe := cueError(iter.Value(), "%v", err)
			pe.Err = err
			return nil, pe
		}
	}

	c, err := b.Build()
	if err != nil {
		return nil, &ParseError{Code: ErrCodeMalformed, Message: err.Error(), Err: err}
	}
	return c, nil
}

// cueError ties a ParseError to the source line of v.
func cueError(v cue.Value, format string, args ...any) *ParseError {
	pe := malformed(0, "", format, args...)
	if pos := v.Pos(); pos.IsValid() {
		pe.Line = pos.Line()
		pe.Text = pos.Filename()
	}
	return pe
}
