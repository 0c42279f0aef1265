package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const rolesScenarioYAML = `name: user_roles
description: Roles are drawn from a fixed set
structure:
  name: string
  role:
    $some: [admin, member]
cases:
  - name: valid
    received: {name: ada, role: admin}
    expect: pass
  - name: bad role
    received: {name: bob, role: guest}
    expect: fail
    failing_keys: [role]
`

// brokenScenarioYAML declares a pass for a value that does not match.
const brokenScenarioYAML = `name: broken_ids
structure:
  id: number
cases:
  - name: string id
    received: {id: "42"}
    expect: pass
`

// writeFile writes content to dir/name, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
