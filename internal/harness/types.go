package harness

import "github.com/roach88/structmatch/pkg/match"

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string `json:"name"`
	Expect string `json:"expect"`

	// Pass is true when the verdict (and failing keys, if pinned) matched
	// the case's expectation.
	Pass bool `json:"pass"`

	// Matched is the raw verdict of the evaluation.
	Matched bool `json:"matched"`

	// Failures are the mismatches the evaluation produced.
	Failures []match.Mismatch `json:"failures,omitempty"`

	// Message is the rendered failure report, empty when Matched.
	Message string `json:"message,omitempty"`

	// Errors explains why Pass is false.
	Errors []string `json:"errors,omitempty"`
}

// Result contains the outcome of running a scenario.
type Result struct {
	Scenario string `json:"scenario"`

	// Pass indicates overall scenario success.
	// True only if every case passed.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors contains one summary line per failed case.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new Result with Pass=true.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddCase records a case outcome and updates Pass.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		for _, e := range c.Errors {
			r.AddError(c.Name + ": " + e)
		}
		if len(c.Errors) == 0 {
			r.AddError(c.Name + ": failed")
		}
	}
}

// AddError adds an error message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Counts returns the number of passed and failed cases.
func (r *Result) Counts() (passed, failed int) {
	for _, c := range r.Cases {
		if c.Pass {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
