package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/circuit"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Initiator string
}

// ValidationResult summarizes a wiring file that parsed cleanly.
type ValidationResult struct {
	Valid       bool           `json:"valid"`
	Nodes       int            `json:"nodes"`
	Implicit    int            `json:"implicit"`
	Kinds       map[string]int `json:"kinds"`
	Fingerprint string         `json:"fingerprint"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <wiring>",
		Short: "Check a wiring file without simulating it",
		Long: `Parse a wiring file and report its nodes by kind.

Targets that are never declared are counted as implicit sinks. The
fingerprint identifies the topology in the run history.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Initiator, "initiator", "", "name of the node the button feeds (default broadcaster)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := loadCircuit(path, opts.Initiator)
	if err != nil {
		return reportError(formatter, err)
	}
	fingerprint, err := c.Fingerprint()
	if err != nil {
		return reportError(formatter, err)
	}

	result := ValidationResult{
		Valid:       true,
		Nodes:       c.Len(),
		Kinds:       map[string]int{},
		Fingerprint: fingerprint,
	}
	for kind, n := range c.CountByKind() {
		result.Kinds[kind.String()] = n
	}
	for id := 0; id < c.Len(); id++ {
		if c.Implicit(circuit.NodeID(id)) {
			result.Implicit++
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ %s: %d node(s)\n", path, result.Nodes)
	for _, kind := range []circuit.Kind{circuit.Broadcast, circuit.FlipFlop, circuit.Conjunction, circuit.Sink} {
		fmt.Fprintf(w, "  %-12s %d\n", kind, result.Kinds[kind.String()])
	}
	if result.Implicit > 0 {
		formatter.VerboseLog("%d sink(s) are implicit", result.Implicit)
	}
	fmt.Fprintf(w, "fingerprint: %s\n", result.Fingerprint)
	return nil
}
