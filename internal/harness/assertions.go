package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/structmatch/internal/report"
	"github.com/roach88/structmatch/pkg/match"
)

// AssertionError is returned when a case's verdict differs from its
// expectation. It includes the failure report to help debug the case.
type AssertionError struct {
	Case     string // Case name
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Report   string // Rendered mismatches, empty when the value matched
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Case)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Report != "" {
		fmt.Fprintf(&buf, "\nFailures:\n%s\n", e.Report)
	}

	return buf.String()
}

// evaluateCase checks a case's evaluation result against its expectation.
func evaluateCase(c Case, result match.Result) CaseResult {
	cr := CaseResult{
		Name:     c.Name,
		Expect:   c.Expect,
		Matched:  result.Matched,
		Failures: result.Failures,
	}
	if !result.Matched {
		cr.Message = report.FormatFailures(result.Failures)
	}

	if err := assertVerdict(c, result, cr.Message); err != nil {
		cr.Errors = append(cr.Errors, err.Error())
	}
	cr.Pass = len(cr.Errors) == 0
	return cr
}

func assertVerdict(c Case, result match.Result, message string) error {
	switch c.Expect {
	case ExpectPass:
		if !result.Matched {
			return &AssertionError{
				Case:     c.Name,
				Expected: "value matches structure",
				Actual:   fmt.Sprintf("%d mismatch(es)", len(result.Failures)),
				Report:   message,
			}
		}
	case ExpectFail:
		if result.Matched {
			return &AssertionError{
				Case:     c.Name,
				Expected: "value does not match structure",
				Actual:   "value matched",
			}
		}
		if len(c.FailingKeys) > 0 {
			return assertFailingKeys(c, result, message)
		}
	default:
		return fmt.Errorf("unknown expectation %q", c.Expect)
	}
	return nil
}

// assertFailingKeys checks that the failing keys equal the declared set.
func assertFailingKeys(c Case, result match.Result, message string) error {
	want := slices.Clone(c.FailingKeys)
	sort.Strings(want)
	want = slices.Compact(want)

	got := result.Keys()
	if slices.Equal(want, got) {
		return nil
	}

	return &AssertionError{
		Case:     c.Name,
		Expected: fmt.Sprintf("failing keys %v", want),
		Actual:   fmt.Sprintf("failing keys %v", got),
		Report:   message,
	}
}
