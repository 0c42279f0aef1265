package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/structmatch/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string // run history database (required)
	Limit int    // number of runs to list
	RunID string // show one run in detail
}

// RunDetail is the JSON payload of history --run.
type RunDetail struct {
	Run      store.Run             `json:"run"`
	Cases    []store.CaseRecord    `json:"cases"`
	Failures []store.FailureRecord `json:"failures"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scenario runs",
		Long: `Show scenario runs recorded by "structmatch test --db".

Without --run, lists the most recent runs, newest first. With --run,
shows every case verdict and failure of one run.

Examples:
  structmatch history --db history.db
  structmatch history --db history.db --limit 5
  structmatch history --db history.db --run 0190163d-8694-739b-aea5-966c26f8ad91`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "run history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show failures of one run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	// Opening would create an empty database; a missing file is a usage error.
	if _, err := os.Stat(opts.DB); err != nil {
		return outputLoadError(formatter, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("database not found: %s", opts.DB),
			Err:     err,
		})
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	defer st.Close()

	if opts.RunID != "" {
		return showRun(formatter, st, cmd, opts.RunID)
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	return formatter.Success(runs, formatRuns(runs))
}

func showRun(formatter *OutputFormatter, st *store.Store, cmd *cobra.Command, runID string) error {
	ctx := commandContext(cmd)

	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return outputLoadError(formatter, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Err: err})
	}
	if err != nil {
		return outputStoreError(formatter, err)
	}
	cases, err := st.ReadCases(ctx, runID)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	failures, err := st.ReadFailures(ctx, runID)
	if err != nil {
		return outputStoreError(formatter, err)
	}

	detail := RunDetail{Run: run, Cases: cases, Failures: failures}
	return formatter.Success(detail, formatRunDetail(detail))
}

func formatRuns(runs []store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-36s %-6s %-7s %s\n", "SEQ", "RUN", "STATUS", "CASES", "SCENARIO")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-5d %-36s %-6s %-7s %s\n", r.Seq, r.ID, runStatus(r.Pass()), fmt.Sprintf("%d/%d", r.Passed, r.Total), r.Scenario)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRunDetail(d RunDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (seq %d): %s, %d/%d cases passed\n", d.Run.ID, d.Run.Seq, d.Run.Scenario, d.Run.Passed, d.Run.Total)

	byCase := make(map[string][]store.FailureRecord, len(d.Cases))
	for _, f := range d.Failures {
		byCase[f.Case] = append(byCase[f.Case], f)
	}

	for _, c := range d.Cases {
		mark := "✓"
		if !c.Pass {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s (expect %s, matched %t)\n", mark, c.Name, c.Expect, c.Matched)
		for _, f := range byCase[c.Name] {
			fmt.Fprintf(&b, "    %s [%s] %s: expected %s, received %s\n", displayKey(f.Key), f.Kind, f.Relation, f.Expected, f.Received)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func runStatus(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

func displayKey(key string) string {
	if key == "" {
		return "(root)"
	}
	return key
}

func outputStoreError(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(ErrCodeStoreFailed, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "history database error", err)
}
