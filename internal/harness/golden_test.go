package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_UserRoles(t *testing.T) {
	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_UserRoles -update
	err := RunWithGolden(t, rolesScenario())
	require.NoError(t, err)
}

func TestAssertGolden_ExistingResult(t *testing.T) {
	result, err := Run(rolesScenario())
	require.NoError(t, err)

	require.NoError(t, AssertGolden(t, "user_roles", result))
}

func TestSnapshotJSON_Deterministic(t *testing.T) {
	first, err := Run(rolesScenario())
	require.NoError(t, err)
	second, err := Run(rolesScenario())
	require.NoError(t, err)

	a, err := SnapshotJSON(first)
	require.NoError(t, err)
	b, err := SnapshotJSON(second)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.Contains(t, string(a), `"scenario":"user_roles"`)
}
