package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/store"
)

// AggregateOptions holds flags for the aggregate command.
type AggregateOptions struct {
	*RootOptions
	Presses   int
	Initiator string
	Database  string
}

// AggregateOutput is the aggregate command's result.
type AggregateOutput struct {
	Presses     int    `json:"presses"`
	Low         int64  `json:"low"`
	High        int64  `json:"high"`
	Product     int64  `json:"product"`
	Fingerprint string `json:"fingerprint"`
	RunID       string `json:"run_id,omitempty"`
}

// NewAggregateCommand creates the aggregate command.
func NewAggregateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AggregateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "aggregate <wiring>",
		Short: "Count pulses over a fixed number of presses",
		Long: `Press the button a fixed number of times and count every pulse delivered,
the button pulse included. Prints the low and high totals and their product.

Example:
  pulsenet aggregate circuit.txt
  pulsenet aggregate circuit.cue --presses 10 --format json
  pulsenet aggregate circuit.txt --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Presses, "presses", engine.DefaultPresses, "number of button presses")
	cmd.Flags().StringVar(&opts.Initiator, "initiator", "", "name of the node the button feeds (default broadcaster)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runAggregate(opts *AggregateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Presses < 0 {
		return reportError(formatter, fmt.Errorf("presses must be non-negative, got %d", opts.Presses))
	}

	c, err := loadCircuit(path, opts.Initiator)
	if err != nil {
		return reportError(formatter, err)
	}
	fingerprint, err := c.Fingerprint()
	if err != nil {
		return reportError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d node(s) from %s", c.Len(), path)

	low, high := engine.RunAggregate(c, opts.Presses)
	out := AggregateOutput{
		Presses:     opts.Presses,
		Low:         low,
		High:        high,
		Product:     low * high,
		Fingerprint: fingerprint,
	}

	run, err := recordRun(cmd.Context(), opts.Database, store.Run{
		Fingerprint: fingerprint,
		Mode:        store.ModeAggregate,
		Presses:     int64(opts.Presses),
		Low:         low,
		High:        high,
		Answer:      uint64(out.Product),
	})
	if err != nil {
		return reportError(formatter, err)
	}
	out.RunID = run.ID

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "low:     %d\n", out.Low)
	fmt.Fprintf(w, "high:    %d\n", out.High)
	fmt.Fprintf(w, "product: %d\n", out.Product)
	if out.RunID != "" {
		fmt.Fprintf(w, "run:     %s\n", out.RunID)
	}
	return nil
}
