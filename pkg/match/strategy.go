package match

import (
	"reflect"

	"github.com/roach88/structmatch/pkg/shape"
)

// Leaf strategies return nil on success or a draft mismatch whose Key is
// filled in by compare.

func testAbsent(received any) *Mismatch {
	if isNil(received) {
		return nil
	}
	return &Mismatch{
		Kind:     AbsenceMismatch,
		Expected: nil,
		Received: received,
		Relation: RelationAbsent,
	}
}

func testPredicate(p shape.Predicate, received any) *Mismatch {
	if p.Test(received) {
		return nil
	}
	return &Mismatch{
		Kind:     PredicateMismatch,
		Expected: p,
		Received: received,
		Relation: RelationPredicate,
	}
}

func testPattern(p shape.Pattern, received any) *Mismatch {
	if p.Re.MatchString(Text(received)) {
		return nil
	}
	return &Mismatch{
		Kind:     PatternMismatch,
		Expected: p,
		Received: received,
		Relation: RelationRegex,
	}
}

func testType(t shape.TypeName, received any) *Mismatch {
	actual := TypeOf(received)
	if actual == string(t) {
		return nil
	}
	return &Mismatch{
		Kind:     TypeMismatch,
		Expected: t,
		Received: actual,
		Relation: RelationType,
	}
}

func testLiteral(l shape.Literal, received any) *Mismatch {
	if Equal(l.Value, received) {
		return nil
	}
	return &Mismatch{
		Kind:     LiteralMismatch,
		Expected: l.Value,
		Received: received,
		Relation: RelationBe,
	}
}

// compareCombinator evaluates every sub-structure against received.
// Every([]) matches; Some([]) does not.
func compareCombinator(c shape.Combinator, received any) *Mismatch {
	if c.Op == shape.OpRepeat {
		return compareSequence(shape.Sequence{c}, received)
	}

	failed := 0
	for _, sub := range c.Subs {
		if !matches(sub, received) {
			failed++
		}
	}

	var relation string
	switch c.Op {
	case shape.OpEvery:
		if failed > 0 {
			relation = RelationEvery
		}
	case shape.OpSome:
		if failed == len(c.Subs) {
			relation = RelationSome
		}
	}
	if relation == "" {
		return nil
	}

	return &Mismatch{
		Kind:     CombinatorMismatch,
		Expected: c.Subs,
		Received: received,
		Relation: relation,
	}
}

// compareSequence applies the coverage tally described in the package
// documentation. A received value that is not a list always fails.
func compareSequence(seq shape.Sequence, received any) *Mismatch {
	elems, ok := elements(received)
	if ok && coverage(seq, elems) == len(elems) {
		return nil
	}
	return &Mismatch{
		Kind:     SequenceCoverage,
		Expected: seq,
		Received: received,
		Relation: RelationSequence,
	}
}

func coverage(seq shape.Sequence, elems []any) int {
	tally := 0
	for _, pattern := range seq {
		if shape.IsRepeat(pattern) {
			inner := pattern.(shape.Combinator).Inner()
			for _, e := range elems {
				if matches(inner, e) {
					tally++
				}
			}
			continue
		}

		for _, e := range elems {
			if matches(pattern, e) {
				tally++
				break
			}
		}
	}
	return tally
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
