package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/structmatch/pkg/match"
	"github.com/roach88/structmatch/pkg/shape"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestFormatMismatch(t *testing.T) {
	tests := []struct {
		name     string
		mismatch match.Mismatch
		want     string
	}{
		{
			name: "literal",
			mismatch: match.Mismatch{
				Kind: match.LiteralMismatch, Key: "field", Expected: 456, Received: 123, Relation: match.RelationBe,
			},
			want: "Expected value of key \"field\" to be:\n  456\nReceived:\n  123",
		},
		{
			name: "absent",
			mismatch: match.Mismatch{
				Kind: match.AbsenceMismatch, Key: "field", Expected: nil, Received: "hello", Relation: match.RelationAbsent,
			},
			want: "Expected value of key \"field\" to be absent:\n  null\nReceived:\n  \"hello\"",
		},
		{
			name: "type",
			mismatch: match.Mismatch{
				Kind: match.TypeMismatch, Key: "field", Expected: shape.TypeString, Received: "number", Relation: match.RelationType,
			},
			want: "Expected value of key \"field\" to be of type:\n  \"string\"\nReceived:\n  \"number\"",
		},
		{
			name: "regex",
			mismatch: match.Mismatch{
				Kind: match.PatternMismatch, Key: "field", Expected: shape.MustRegex(`\d+`), Received: "hello", Relation: match.RelationRegex,
			},
			want: "Expected value of key \"field\" to match regex:\n  /\\d+/\nReceived:\n  \"hello\"",
		},
		{
			name: "some",
			mismatch: match.Mismatch{
				Kind: match.CombinatorMismatch, Key: "field", Expected: shape.Some("A", "B").Subs, Received: "hello", Relation: match.RelationSome,
			},
			want: "Expected value of key \"field\" to match at least one of the following:\n  [\"A\", \"B\"]\nReceived:\n  \"hello\"",
		},
		{
			name: "key mismatch",
			mismatch: match.Mismatch{
				Kind: match.KeyCardinality, Expected: []string{"field1", "field2"}, Received: []string{"field1", "field2", "field3"}, Relation: match.RelationMoreReceivedKeys,
			},
			want: "Received object has more keys than structure.\n\nExpected:\n  field1,field2\nReceived:\n  field1,field2,field3",
		},
		{
			name: "nested key mismatch",
			mismatch: match.Mismatch{
				Kind: match.KeyCardinality, Key: "a.b", Expected: []string{"x", "y"}, Received: []string{"x"}, Relation: match.RelationMoreStructureKeys,
			},
			want: "Structure has more keys than received object at key \"a.b\".\n\nExpected:\n  x,y\nReceived:\n  x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMismatch(tt.mismatch))
		})
	}
}

func TestMessage_NestedObjectGolden(t *testing.T) {
	received := map[string]any{
		"field1": map[string]any{
			"field2": map[string]any{"field3": "hello", "field4": true},
			"field5": 1,
		},
	}
	structure := map[string]any{
		"field1": map[string]any{
			"field2": map[string]any{"field3": "number", "field4": "string"},
			"field5": "boolean",
		},
	}

	result := match.Evaluate(structure, received)
	require.False(t, result.Matched)

	newGoldie(t).Assert(t, "nested_object", []byte(Message("MatchStructure", result.Failures)))
}

func TestMessage_KeyMismatchGolden(t *testing.T) {
	result := match.Evaluate(
		map[string]any{"field1": "string", "field2": "string"},
		map[string]any{"field1": "hello", "field2": "hi", "field3": "what?"},
	)
	require.Len(t, result.Failures, 1)

	newGoldie(t).Assert(t, "key_mismatch", []byte(Message("MatchStructure", result.Failures)))
}

func TestMessage_NoHint(t *testing.T) {
	failures := []match.Mismatch{
		{Kind: match.LiteralMismatch, Key: "a", Expected: 1, Received: 2, Relation: match.RelationBe},
		{Kind: match.LiteralMismatch, Key: "b", Expected: 1, Received: 3, Relation: match.RelationBe},
	}

	msg := Message("", failures)
	assert.Equal(t, FormatFailures(failures), msg)
	assert.Contains(t, msg, "\n\nExpected value of key \"b\"")
}
