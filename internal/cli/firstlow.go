package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/store"
)

// FirstLowOptions holds flags for the first-low command.
type FirstLowOptions struct {
	*RootOptions
	Sink       string
	Initiator  string
	Samples    int
	MaxPresses int64
	Database   string
}

// FirstLowOutput is the first-low command's result.
type FirstLowOutput struct {
	Sink        string            `json:"sink"`
	Periods     []analysis.Period `json:"periods"`
	Answer      uint64            `json:"answer"`
	Simulated   int64             `json:"simulated"`
	Fingerprint string            `json:"fingerprint"`
	RunID       string            `json:"run_id,omitempty"`
}

// NewFirstLowCommand creates the first-low command.
func NewFirstLowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FirstLowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "first-low <wiring>",
		Short: "Find the first press at which a sink receives a low pulse",
		Long: `Infer the press at which the sink first receives a low pulse.

The sink must be fed by conjunctions. Each input of those conjunctions is
sampled until it has gone high in --samples distinct presses; every input
must fire at exact multiples of its first press. The answer is the least
common multiple of those periods.

Exit codes:
  0 - Answer found
  1 - Circuit is malformed or not periodic (NON_PERIODIC_FEEDER,
      UNREACHABLE_TARGET, PRESS_LIMIT_EXCEEDED, LCM_OVERFLOW)
  2 - Command error (missing file, database error)

Example:
  pulsenet first-low circuit.txt
  pulsenet first-low circuit.txt --sink rx --samples 32 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFirstLow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sink, "sink", analysis.DefaultSink, "node whose first low pulse is wanted")
	cmd.Flags().StringVar(&opts.Initiator, "initiator", "", "name of the node the button feeds (default broadcaster)")
	cmd.Flags().IntVar(&opts.Samples, "samples", analysis.DefaultSampleCount, "firing presses collected per monitor")
	cmd.Flags().Int64Var(&opts.MaxPresses, "max-presses", analysis.DefaultMaxPresses, "upper bound on simulated presses")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runFirstLow(opts *FirstLowOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := loadCircuit(path, opts.Initiator)
	if err != nil {
		return reportError(formatter, err)
	}
	fingerprint, err := c.Fingerprint()
	if err != nil {
		return reportError(formatter, err)
	}

	res, err := analysis.FindFirstLowPress(c, opts.Sink,
		analysis.WithSampleCount(opts.Samples),
		analysis.WithMaxPresses(opts.MaxPresses),
	)
	if err != nil {
		return reportError(formatter, err)
	}

	out := FirstLowOutput{
		Sink:        opts.Sink,
		Periods:     res.Periods,
		Answer:      res.Answer,
		Simulated:   res.Simulated,
		Fingerprint: fingerprint,
	}

	run, err := recordRun(cmd.Context(), opts.Database, store.Run{
		Fingerprint: fingerprint,
		Mode:        store.ModeFirstLow,
		Sink:        opts.Sink,
		Presses:     res.Simulated,
		Answer:      res.Answer,
		Periods:     res.Periods,
	})
	if err != nil {
		return reportError(formatter, err)
	}
	out.RunID = run.ID

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	for _, p := range out.Periods {
		fmt.Fprintf(w, "%s: every %d presses\n", p.Node, p.Period)
	}
	fmt.Fprintf(w, "answer: %d (%s)\n", out.Answer, res)
	formatter.VerboseLog("Simulated %d presses", out.Simulated)
	if out.RunID != "" {
		fmt.Fprintf(w, "run: %s\n", out.RunID)
	}
	return nil
}
