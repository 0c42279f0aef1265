// Package structassert integrates structural matching with testify.
//
//	func TestUser(t *testing.T) {
//		structassert.MatchStructure(t, map[string]any{
//			"id":   shape.Func("positive", func(v any) bool { n, _ := match.Number(v); return n > 0 }),
//			"name": "string",
//			"tags": []any{shape.Repeat("string")},
//		}, user)
//	}
//
// Failure messages open with the hint "MatchStructure" followed by one block
// per mismatch.
package structassert

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roach88/structmatch/internal/report"
	"github.com/roach88/structmatch/pkg/match"
)

// Hint is the first line of every failure message.
const Hint = "MatchStructure"

type tHelper interface {
	Helper()
}

// Message evaluates received against structure. It returns the failure
// message and false when they do not match, or "" and true when they do.
func Message(structure, received any) (string, bool) {
	result := match.Evaluate(structure, received)
	if result.Matched {
		return "", true
	}
	return report.Message(Hint, result.Failures), false
}

// MatchStructure asserts that received conforms to structure.
//
//	structassert.MatchStructure(t, map[string]any{"id": "number"}, resp)
func MatchStructure(t assert.TestingT, structure, received any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	msg, ok := Message(structure, received)
	if ok {
		return true
	}
	return assert.Fail(t, msg, msgAndArgs...)
}

// RequireStructure is like MatchStructure but stops the test on failure.
func RequireStructure(t require.TestingT, structure, received any, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if MatchStructure(t, structure, received, msgAndArgs...) {
		return
	}
	t.FailNow()
}

// NotMatchStructure asserts that received does not conform to structure.
func NotMatchStructure(t assert.TestingT, structure, received any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if _, ok := Message(structure, received); !ok {
		return true
	}
	return assert.Fail(t, "Expected value not to match structure:\n  "+report.Pretty(structure), msgAndArgs...)
}

// MatchedBy returns a testify mock argument matcher that accepts arguments
// conforming to structure.
//
//	m.On("Save", structassert.MatchedBy(map[string]any{"id": "string"})).Return(nil)
func MatchedBy(structure any) any {
	return mock.MatchedBy(func(arg any) bool {
		return match.Matches(structure, arg)
	})
}
