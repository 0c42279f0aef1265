package harness

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rolesScenario() *Scenario {
	return &Scenario{
		Name:        "user_roles",
		Description: "Roles are drawn from a fixed set",
		Structure: map[string]any{
			"name": "string",
			"role": map[string]any{"$some": []any{"admin", "member"}},
		},
		Cases: []Case{
			{Name: "valid", Received: map[string]any{"name": "ada", "role": "admin"}, Expect: ExpectPass},
			{Name: "bad role", Received: map[string]any{"name": "bob", "role": "guest"}, Expect: ExpectFail, FailingKeys: []string{"role"}},
		},
	}
}

func TestRun_AllCasesPass(t *testing.T) {
	result, err := Run(rolesScenario())
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "user_roles", result.Scenario)
	require.Len(t, result.Cases, 2)

	assert.True(t, result.Cases[0].Matched)
	assert.Empty(t, result.Cases[0].Message)

	bad := result.Cases[1]
	assert.False(t, bad.Matched)
	assert.True(t, bad.Pass)
	require.Len(t, bad.Failures, 1)
	assert.Equal(t, "role", bad.Failures[0].Key)
	assert.Contains(t, bad.Message, `Expected value of key "role" to match at least one of the following`)

	passed, failed := result.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 0, failed)
}

func TestRun_UnexpectedVerdicts(t *testing.T) {
	s := rolesScenario()
	s.Cases = []Case{
		{Name: "should pass", Received: map[string]any{"name": 1, "role": "admin"}, Expect: ExpectPass},
		{Name: "should fail", Received: map[string]any{"name": "ada", "role": "member"}, Expect: ExpectFail},
		{Name: "wrong keys", Received: map[string]any{"name": 1, "role": "admin"}, Expect: ExpectFail, FailingKeys: []string{"role"}},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "should pass: Assertion failed: should pass")
	assert.Contains(t, result.Errors[0], `Expected value of key "name" to be of type`)
	assert.Contains(t, result.Errors[1], "value matched")
	assert.Contains(t, result.Errors[2], "failing keys [role]")
	assert.Contains(t, result.Errors[2], "Actual: failing keys [name]")

	passed, failed := result.Counts()
	assert.Equal(t, 0, passed)
	assert.Equal(t, 3, failed)
}

func TestRun_InvalidStructure(t *testing.T) {
	s := rolesScenario()
	s.Structure = map[string]any{"id": map[string]any{"$pred": "nope"}}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario user_roles")
}

func TestRun_MissingReceivedFile(t *testing.T) {
	s := rolesScenario()
	s.Dir = t.TempDir()
	s.Cases = []Case{{Name: "file", ReceivedFile: "missing.json", Expect: ExpectPass}}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case 0 (file)")
}

func TestHarness_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, rolesScenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHarness_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Run(context.Background(), rolesScenario())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "case evaluated")
	assert.Contains(t, out, "case=\"bad role\"")
	assert.Contains(t, out, "scenario completed")
	assert.Contains(t, out, "passed=2")
}

func TestHarness_ConcurrentRuns(t *testing.T) {
	h := New()
	s := rolesScenario()
	require.NoError(t, s.Compile())

	done := make(chan *Result, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			r, err := h.Run(context.Background(), s)
			assert.NoError(t, err)
			done <- r
		}()
	}
	for i := 0; i < cap(done); i++ {
		r := <-done
		require.NotNil(t, r)
		assert.True(t, r.Pass)
	}
}
