package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/structmatch/internal/report"
)

// SnapshotJSON renders the result as canonical JSON for golden comparison.
// Each case contributes its verdict and its failures as rendered by
// report.Snapshot, so the bytes are stable across runs.
func SnapshotJSON(result *Result) ([]byte, error) {
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		entry := map[string]any{
			"name":    c.Name,
			"expect":  c.Expect,
			"matched": c.Matched,
			"pass":    c.Pass,
		}
		if len(c.Failures) > 0 {
			entry["failures"] = report.Snapshot(c.Failures)
		}
		cases[i] = entry
	}

	return report.MarshalCanonical(map[string]any{
		"scenario": result.Scenario,
		"pass":     result.Pass,
		"cases":    cases,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := SnapshotJSON(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
