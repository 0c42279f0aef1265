package match

import (
	"fmt"
	"sort"
)

// Kind categorizes a Mismatch.
type Kind int

const (
	// KeyCardinality reports differing field counts at one object level.
	// It suppresses field comparison for that object.
	KeyCardinality Kind = iota + 1
	TypeMismatch
	PatternMismatch
	PredicateMismatch
	AbsenceMismatch
	LiteralMismatch
	CombinatorMismatch
	SequenceCoverage
)

var kindNames = map[Kind]string{
	KeyCardinality:     "key_cardinality",
	TypeMismatch:       "type_mismatch",
	PatternMismatch:    "pattern_mismatch",
	PredicateMismatch:  "predicate_mismatch",
	AbsenceMismatch:    "absence_mismatch",
	LiteralMismatch:    "literal_mismatch",
	CombinatorMismatch: "combinator_mismatch",
	SequenceCoverage:   "sequence_coverage",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Required relations, rendered as "to <relation>:".
const (
	RelationBe        = "be"
	RelationAbsent    = "be absent"
	RelationPredicate = "pass function test"
	RelationRegex     = "match regex"
	RelationType      = "be of type"
	RelationEvery     = "match all of the following"
	RelationSome      = "match at least one of the following"
	RelationSequence  = "match array structure"

	RelationMoreReceivedKeys  = "Received object has more keys than structure"
	RelationMoreStructureKeys = "Structure has more keys than received object"
)

// Mismatch is one localized comparison failure.
type Mismatch struct {
	Kind Kind `json:"kind"`

	// Key is the dotted path of the failing field. Empty at the root.
	Key string `json:"key"`

	// Expected is the structure fragment, the combinator's sub-structures,
	// or the sorted structure field names for KeyCardinality.
	Expected any `json:"expected"`

	// Received is the offending value, its type name for TypeMismatch,
	// or the sorted received keys for KeyCardinality.
	Received any `json:"received"`

	Relation string `json:"relation"`
}

// IsKeyMismatch reports whether m is a whole-object cardinality failure.
func (m Mismatch) IsKeyMismatch() bool {
	return m.Kind == KeyCardinality
}

// Result is the outcome of Evaluate.
type Result struct {
	Matched  bool       `json:"matched"`
	Failures []Mismatch `json:"failures,omitempty"`
}

// Keys returns the distinct failing keys in sorted order.
func (r Result) Keys() []string {
	seen := make(map[string]bool, len(r.Failures))
	keys := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}

// KeyMismatch returns the first KeyCardinality failure, if any.
func (r Result) KeyMismatch() (Mismatch, bool) {
	for _, f := range r.Failures {
		if f.IsKeyMismatch() {
			return f, true
		}
	}
	return Mismatch{}, false
}
