package structassert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roach88/structmatch/pkg/shape"
)

// recordingT captures failures instead of failing the enclosing test.
type recordingT struct {
	messages []string
	failed   bool
	stopped  bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.failed = true
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.stopped = true
}

func TestMatchStructure_Pass(t *testing.T) {
	rt := &recordingT{}
	ok := MatchStructure(rt, map[string]any{"a": "number"}, map[string]any{"a": 1})

	assert.True(t, ok)
	assert.False(t, rt.failed)
}

func TestMatchStructure_Fail(t *testing.T) {
	rt := &recordingT{}
	ok := MatchStructure(rt,
		map[string]any{"a": "number", "b": shape.Some("X", "Y")},
		map[string]any{"a": "one", "b": "Z"},
		"payload %d", 7,
	)

	assert.False(t, ok)
	require.Len(t, rt.messages, 1)
	msg := rt.messages[0]
	assert.Contains(t, msg, "MatchStructure")
	assert.Contains(t, msg, "Expected value of key \"a\" to be of type:")
	assert.Contains(t, msg, "Expected value of key \"b\" to match at least one of the following:")
	assert.Contains(t, msg, "payload 7")
}

func TestRequireStructure(t *testing.T) {
	rt := &recordingT{}
	RequireStructure(rt, "string", "ok")
	assert.False(t, rt.stopped)

	RequireStructure(rt, "string", 5)
	assert.True(t, rt.failed)
	assert.True(t, rt.stopped)
}

func TestNotMatchStructure(t *testing.T) {
	rt := &recordingT{}
	assert.True(t, NotMatchStructure(rt, "string", 5))
	assert.False(t, rt.failed)

	assert.False(t, NotMatchStructure(rt, "string", "x"))
	require.Len(t, rt.messages, 1)
	assert.Contains(t, rt.messages[0], "Expected value not to match structure:")
	assert.Contains(t, rt.messages[0], `"string"`)
}

func TestMessage(t *testing.T) {
	msg, ok := Message(map[string]any{"a": 1}, map[string]any{"a": 1})
	assert.True(t, ok)
	assert.Empty(t, msg)

	msg, ok = Message(map[string]any{"a": 1}, map[string]any{"a": 2})
	assert.False(t, ok)
	assert.Equal(t, "MatchStructure\n\nExpected value of key \"a\" to be:\n  1\nReceived:\n  2", msg)
}

type repository struct {
	mock.Mock
}

func (r *repository) Save(record any) error {
	args := r.Called(record)
	return args.Error(0)
}

func TestMatchedBy(t *testing.T) {
	repo := &repository{}
	repo.On("Save", MatchedBy(map[string]any{"id": "string", "tags": []any{shape.Repeat("string")}})).Return(nil)

	err := repo.Save(map[string]any{"id": "u1", "tags": []any{"a", "b"}})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.Panics(t, func() {
		_ = repo.Save(map[string]any{"id": 1, "tags": []any{}})
	})
}
