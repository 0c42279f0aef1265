package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/structmatch/internal/harness"
	"github.com/roach88/structmatch/internal/store"
)

// goldenDirName is the directory, next to the scenario files, that holds
// golden snapshots.
const goldenDirName = "golden"

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
	DB     string // run history database (optional)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Cases  int      `json:"cases"`
	RunID  string   `json:"run_id,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run every scenario file (.yaml, .yml, .cue) under a directory.

Each case's verdict, and its failing keys when pinned, must match the
declared expectation. When golden/<scenario-file>.golden exists next to a
scenario, the canonical failure snapshot must also match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  structmatch test ./scenarios
  structmatch test ./scenarios --filter "user-*"
  structmatch test ./scenarios --update
  structmatch test ./scenarios --db history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record run history in this SQLite database")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	scenarioFiles, err := FindScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	var st *store.Store
	if opts.DB != "" {
		st, err = store.Open(opts.DB)
		if err != nil {
			if outErr := formatter.Error(ErrCodeStoreFailed, err.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer st.Close()
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}

	if len(scenarioFiles) == 0 {
		if formatter.IsJSON() {
			return formatter.Success(result, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	runner := &scenarioRunner{
		opts:    opts,
		harness: harness.New(harness.WithLogger(formatter.Logger())),
		store:   st,
		out:     io.Discard,
	}
	if !formatter.IsJSON() {
		runner.out = cmd.OutOrStdout()
	}

	for _, scenarioFile := range scenarioFiles {
		scenResult := runner.run(ctx, scenarioFile)
		result.Scenarios = append(result.Scenarios, scenResult)

		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	return outputTestResult(formatter, result)
}

// scenarioRunner executes one scenario file at a time.
type scenarioRunner struct {
	opts    *TestOptions
	harness *harness.Harness
	store   *store.Store
	out     io.Writer // progress lines; io.Discard in JSON mode
}

func (r *scenarioRunner) run(ctx context.Context, scenarioFile string) ScenarioResult {
	res := ScenarioResult{Name: filepath.Base(scenarioFile), File: scenarioFile}

	scenario, err := LoadScenarioFile(scenarioFile)
	if err != nil {
		return r.fail(res, fmt.Sprintf("failed to load scenario: %v", err))
	}
	res.Name = scenario.Name
	res.Cases = len(scenario.Cases)

	result, err := r.harness.Run(ctx, scenario)
	if err != nil {
		return r.fail(res, fmt.Sprintf("execution failed: %v", err))
	}

	if r.store != nil {
		run, err := r.store.WriteRun(ctx, result)
		if err != nil {
			return r.fail(res, fmt.Sprintf("failed to record run: %v", err))
		}
		res.RunID = run.ID
	}

	res.Errors = append(res.Errors, result.Errors...)

	goldenPath := goldenFilePath(scenarioFile)
	snapshot, err := harness.SnapshotJSON(result)
	if err != nil {
		return r.fail(res, fmt.Sprintf("failed to snapshot result: %v", err))
	}

	switch {
	case r.opts.Update:
		if err := writeGoldenFile(goldenPath, snapshot); err != nil {
			return r.fail(res, fmt.Sprintf("failed to update golden file: %v", err))
		}
		fmt.Fprintf(r.out, "✓ %s (golden updated)\n", scenario.Name)
	default:
		golden, err := os.ReadFile(goldenPath)
		switch {
		case os.IsNotExist(err):
			// No golden file - verdict-based validation only
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("golden comparison failed: %v", err))
		case !bytes.Equal(golden, snapshot):
			res.Errors = append(res.Errors, "snapshot does not match golden file (run with --update to regenerate)")
		}
	}

	if len(res.Errors) > 0 {
		return r.fail(res, "")
	}

	res.Pass = true
	if !r.opts.Update {
		fmt.Fprintf(r.out, "✓ %s (%d cases)\n", scenario.Name, res.Cases)
	}
	return res
}

// fail marks res failed, appends msg (if any) and prints the failure.
func (r *scenarioRunner) fail(res ScenarioResult, msg string) ScenarioResult {
	if msg != "" {
		res.Errors = append(res.Errors, msg)
	}
	res.Pass = false

	fmt.Fprintf(r.out, "✗ %s\n", res.Name)
	for _, e := range res.Errors {
		fmt.Fprintf(r.out, "  %s\n", strings.ReplaceAll(strings.TrimRight(e, "\n"), "\n", "\n  "))
	}
	return res
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, goldenDirName, name+".golden")
}

// writeGoldenFile writes a snapshot, creating the golden directory.
func writeGoldenFile(goldenPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// outputTestResult outputs the summary and maps failures to exit code 1.
func outputTestResult(formatter *OutputFormatter, result TestResult) error {
	summary := fmt.Sprintf("\nTest Summary: %d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		msg := fmt.Sprintf("%d scenario(s) failed", result.Failed)
		if err := formatter.Failure(ErrCodeTestsFailed, msg, result, summary); err != nil {
			return err
		}
		// Test failures = exit code 1
		return NewExitError(ExitFailure, msg)
	}

	return formatter.Success(result, summary+"\n✓ All scenarios passed")
}
