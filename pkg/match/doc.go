// Package match compares a received value against a shape.Structure and
// reports every localized failure.
//
// # Algorithm
//
// Evaluate classifies the root structure and dispatches on its variant.
// A Shape first reconciles key sets: when the number of structure fields and
// received keys differ, a single KeyCardinality mismatch is reported for that
// object and none of its fields are visited. Otherwise every field is compared
// and all failures are collected; comparison never stops at the first error.
// Failing keys are dotted paths ("a.b.c").
//
// Leaf variants (Absent, Predicate, Pattern, TypeName, Literal) produce at
// most one mismatch each. Combinators and sequences produce a single aggregate
// mismatch for the field they sit on.
//
// # Sequences
//
// A Sequence is a multiset of element patterns. Each Repeat pattern adds the
// number of received elements matching its inner structure to a tally; every
// other pattern adds one when any received element matches it. The sequence
// matches when the tally equals the received length. Elements are not
// consumed, so one element may satisfy several patterns.
//
// # Concurrency
//
// Evaluate holds no state and may be called from parallel tests. Predicates
// run on the caller's goroutine; a panicking predicate propagates.
package match
