package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/structmatch/internal/report"
	"github.com/roach88/structmatch/pkg/match"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Matched  bool  `json:"matched"`
	Failures []any `json:"failures"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <structure-file> <received-file>",
		Short: "Check one received value against a structure",
		Long: `Check a received value against a structure.

The structure file is YAML, JSON or CUE using the structure directives
($regex, $some, $every, $repeat, $pred, $literal, $absent). The received
file is JSON, YAML or CUE.

Exit codes:
  0 - Value matches the structure
  1 - Value does not match
  2 - Command error (missing file, invalid structure, etc.)

Examples:
  structmatch check user.structure.yaml user.json
  structmatch check user.structure.yaml user.json --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, structurePath, receivedPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := formatter.Logger()

	structure, err := LoadStructureFile(structurePath)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	received, err := LoadValueFile(receivedPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	result := match.Evaluate(structure, received)
	logger.Debug("value evaluated",
		"structure", structurePath,
		"received", receivedPath,
		"matched", result.Matched,
		"failures", len(result.Failures),
	)

	data := CheckResult{Matched: result.Matched, Failures: report.Snapshot(result.Failures)}
	if result.Matched {
		return formatter.Success(data, "✓ value matches structure")
	}

	msg := fmt.Sprintf("%d mismatch(es)", len(result.Failures))
	if err := formatter.Failure(ErrCodeNoMatch, msg, data, report.Message("✗ value does not match structure", result.Failures)); err != nil {
		return err
	}
	return NewExitError(ExitFailure, msg)
}

// outputLoadError reports a load error and returns the matching exit error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(loadErrorCode(err), err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "load failed", err)
}
