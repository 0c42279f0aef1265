package match

import (
	"github.com/roach88/structmatch/pkg/shape"
)

// Evaluate compares received against structure and returns every failure.
//
// structure may be a shape.Structure or any value accepted by
// shape.Classify; it is usually a shape (map) at the root. The result is
// matched iff no failures were found.
func Evaluate(structure, received any) Result {
	failures := compare(shape.Classify(structure), received, "")
	return Result{
		Matched:  len(failures) == 0,
		Failures: failures,
	}
}

// Matches reports whether received satisfies structure with zero failures.
func Matches(structure, received any) bool {
	return matches(shape.Classify(structure), received)
}

func matches(s shape.Structure, received any) bool {
	return len(compare(s, received, "")) == 0
}

// compare dispatches on the structure variant. A nil Structure is Absent.
// It returns a fresh slice that callers may append to.
func compare(s shape.Structure, received any, path string) []Mismatch {
	var m *Mismatch

	switch st := s.(type) {
	case shape.Shape:
		return compareShape(st, received, path)
	case shape.Sequence:
		m = compareSequence(st, received)
	case shape.Combinator:
		m = compareCombinator(st, received)
	case shape.Absent, nil:
		m = testAbsent(received)
	case shape.Predicate:
		m = testPredicate(st, received)
	case shape.Pattern:
		m = testPattern(st, received)
	case shape.TypeName:
		m = testType(st, received)
	case shape.Literal:
		m = testLiteral(st, received)
	}

	if m == nil {
		return nil
	}
	m.Key = path
	return []Mismatch{*m}
}

// compareShape reconciles key sets and then compares every field.
//
// Only the number of keys is reconciled: two objects with the same number of
// differently named fields proceed to field comparison, where the missing
// side is nil.
func compareShape(s shape.Shape, received any, path string) []Mismatch {
	got := fields(received)
	structureKeys := s.Keys()
	receivedKeys := sortedKeys(got)

	if len(structureKeys) != len(receivedKeys) {
		relation := RelationMoreStructureKeys
		if len(receivedKeys) > len(structureKeys) {
			relation = RelationMoreReceivedKeys
		}
		return []Mismatch{{
			Kind:     KeyCardinality,
			Key:      path,
			Expected: structureKeys,
			Received: receivedKeys,
			Relation: relation,
		}}
	}

	var failures []Mismatch
	for _, key := range structureKeys {
		failures = append(failures, compare(s[key], got[key], JoinPath(path, key))...)
	}
	return failures
}
