package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/structmatch/internal/harness"
	"github.com/roach88/structmatch/internal/testutil"
	"github.com/roach88/structmatch/pkg/match"
)

// createTestStore creates a new file-backed store with predictable run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResult runs a small scenario with one passing case and one case
// that fails with two mismatches.
func createTestResult(t *testing.T, name string) *harness.Result {
	t.Helper()
	scenario := &harness.Scenario{
		Name:      name,
		Structure: map[string]any{"id": "number", "name": "string"},
		Cases: []harness.Case{
			{Name: "valid", Received: map[string]any{"id": 1, "name": "ada"}, Expect: harness.ExpectPass},
			{Name: "wrong types", Received: map[string]any{"id": "1", "name": 2}, Expect: harness.ExpectPass},
		},
	}
	result, err := harness.Run(scenario)
	if err != nil {
		t.Fatalf("harness.Run() failed: %v", err)
	}
	if len(result.Cases[1].Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(result.Cases[1].Failures))
	}
	if result.Cases[1].Failures[0].Kind != match.TypeMismatch {
		t.Fatalf("expected type mismatch, got %s", result.Cases[1].Failures[0].Kind)
	}
	return result
}
