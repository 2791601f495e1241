package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database  string
	Initiator string
}

// HistoryOutput lists recorded runs.
type HistoryOutput struct {
	Fingerprint string      `json:"fingerprint,omitempty"`
	Runs        []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [wiring]",
		Short: "List recorded runs",
		Long: `List runs recorded with --db, oldest first.

With a wiring file, only runs of a circuit with the same topology are
listed.

Example:
  pulsenet history --db runs.db
  pulsenet history --db runs.db circuit.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runHistory(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database holding the run history")
	cmd.Flags().StringVar(&opts.Initiator, "initiator", "", "name of the node the button feeds (default broadcaster)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var out HistoryOutput
	if path != "" {
		c, err := loadCircuit(path, opts.Initiator)
		if err != nil {
			return reportError(formatter, err)
		}
		if out.Fingerprint, err = c.Fingerprint(); err != nil {
			return reportError(formatter, err)
		}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportError(formatter, &LoadError{
			Code:    ErrCodeStoreFailed,
			Message: fmt.Sprintf("failed to open database %s", opts.Database),
			Err:     err,
		})
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	out.Runs, err = st.ListRuns(cmd.Context(), out.Fingerprint)
	if err != nil {
		return reportError(formatter, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to list runs", Err: err})
	}
	formatter.VerboseLog("Found %d run(s) in %s", len(out.Runs), opts.Database)

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	if len(out.Runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tMODE\tPRESSES\tANSWER\tDETAIL\tCIRCUIT")
	for _, r := range out.Runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\n",
			r.Seq, r.Mode, r.Presses, r.Answer, runDetail(r), shortFingerprint(r.Fingerprint))
	}
	return tw.Flush()
}

// runDetail renders the mode-specific part of a run.
func runDetail(r store.Run) string {
	if r.Mode == store.ModeAggregate {
		return fmt.Sprintf("low=%d high=%d", r.Low, r.High)
	}
	parts := make([]string, len(r.Periods))
	for i, p := range r.Periods {
		parts[i] = fmt.Sprintf("%s=%d", p.Node, p.Period)
	}
	return fmt.Sprintf("%s: %s", r.Sink, strings.Join(parts, ","))
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
