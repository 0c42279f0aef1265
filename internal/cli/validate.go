package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationError describes one invalid scenario file.
type ValidationError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Scenarios int               `json:"scenarios"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files without evaluating any case.

Parses every scenario, checks required fields and expectations, and
decodes each structure (directives, predicate names, patterns). Every
invalid file is reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := formatter.Logger()

	files, err := FindScenarioFiles(scenariosDir, "")
	if err != nil {
		return outputLoadError(formatter, err)
	}
	if len(files) == 0 {
		return outputLoadError(formatter, &LoadError{
			Code:    ErrCodeNoFiles,
			Message: fmt.Sprintf("no scenario files found in %s", scenariosDir),
		})
	}

	logger.Debug("found scenario files", "count", len(files), "dir", scenariosDir)

	result := ValidationResult{Scenarios: len(files)}
	for _, file := range files {
		scenario, err := LoadScenarioFile(file)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				File:    file,
				Code:    loadErrorCode(err),
				Message: err.Error(),
			})
			continue
		}
		logger.Debug("scenario valid", "file", file, "scenario", scenario.Name, "cases", len(scenario.Cases))
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		var text strings.Builder
		fmt.Fprintf(&text, "✗ %d of %d scenario file(s) invalid\n", len(result.Errors), result.Scenarios)
		for _, e := range result.Errors {
			fmt.Fprintf(&text, "  [%s] %s\n", e.Code, e.Message)
		}
		msg := fmt.Sprintf("%d invalid scenario file(s)", len(result.Errors))
		if err := formatter.Failure(result.Errors[0].Code, msg, result, strings.TrimRight(text.String(), "\n")); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	return formatter.Success(result, fmt.Sprintf("✓ %d scenario file(s) valid", result.Scenarios))
}
