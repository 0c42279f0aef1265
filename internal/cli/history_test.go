package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/structmatch/internal/store"
)

// recordRuns runs the scenarios in a fresh directory with --db and returns
// the database path.
func recordRuns(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenarios {
		writeFile(t, dir, name, content)
	}
	db := filepath.Join(t.TempDir(), "history.db")
	_, _, _ = execute(t, "test", dir, "--db", db)
	return db
}

func TestHistoryCommand_List(t *testing.T) {
	db := recordRuns(t, map[string]string{
		"broken.yaml": brokenScenarioYAML,
		"roles.yaml":  rolesScenarioYAML,
	})

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "SEQ")
	assert.Contains(t, out, "user_roles")
	assert.Contains(t, out, "broken_ids")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "0/1")
}

func TestHistoryCommand_ListJSON(t *testing.T) {
	db := recordRuns(t, map[string]string{
		"broken.yaml": brokenScenarioYAML,
		"roles.yaml":  rolesScenarioYAML,
	})

	out, _, err := execute(t, "--format", "json", "history", "--db", db, "--limit", "1")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)

	// Files run in lexical order, so roles.yaml is the newest run.
	assert.Equal(t, "user_roles", resp.Data[0].Scenario)
	assert.Equal(t, int64(2), resp.Data[0].Seq)
}

func TestHistoryCommand_Run(t *testing.T) {
	db := recordRuns(t, map[string]string{"roles.yaml": rolesScenarioYAML})

	out, _, err := execute(t, "--format", "json", "history", "--db", db)
	require.NoError(t, err)
	var list struct {
		Data []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Data, 1)
	runID := list.Data[0].ID

	out, _, err = execute(t, "history", "--db", db, "--run", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+runID+" (seq 1): user_roles, 2/2 cases passed")
	assert.Contains(t, out, "✓ valid (expect pass, matched true)")
	assert.Contains(t, out, "✓ bad role (expect fail, matched false)")
	assert.Contains(t, out, `role [combinator_mismatch] match at least one of the following: expected ["admin", "member"], received "guest"`)

	out, _, err = execute(t, "--format", "json", "history", "--db", db, "--run", runID)
	require.NoError(t, err)
	var detail struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, runID, detail.Data.Run.ID)
	assert.Len(t, detail.Data.Cases, 2)
	require.Len(t, detail.Data.Failures, 1)
	assert.Equal(t, "bad role", detail.Data.Failures[0].Case)
}

func TestHistoryCommand_UnknownRun(t *testing.T) {
	db := recordRuns(t, map[string]string{"roles.yaml": rolesScenarioYAML})

	out, _, err := execute(t, "history", "--db", db, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}

func TestHistoryCommand_MissingDatabase(t *testing.T) {
	out, _, err := execute(t, "history", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "database not found")
}

func TestHistoryCommand_RequiresDB(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestFormatRuns_Empty(t *testing.T) {
	assert.Equal(t, "No runs recorded.", formatRuns(nil))
}

func TestDisplayKey(t *testing.T) {
	assert.Equal(t, "(root)", displayKey(""))
	assert.Equal(t, "a.b", displayKey("a.b"))
}
