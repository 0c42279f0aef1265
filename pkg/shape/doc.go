// Package shape defines the expected-shape model used by structural matching.
//
// A Structure describes what a received value should look like. It is a
// sealed interface: only the variants declared in this package implement it.
//
//   - Absent: the received value must be nil
//   - Predicate: a function that must report true for the received value
//   - Pattern: a regular expression matched against the received value's text
//   - TypeName: one of "string", "boolean" or "number"
//   - Sequence: an ordered list of element patterns (see package match)
//   - Combinator: Some, Every or Repeat over sub-structures
//   - Shape: field name to Structure, compared field by field
//   - Literal: any other value, compared by equality
//
// Structures are usually written as plain Go values and converted with
// Classify:
//
//	s := shape.Classify(map[string]any{
//	    "id":    "number",
//	    "name":  regexp.MustCompile(`^\w+$`),
//	    "tags":  []any{shape.Repeat("string")},
//	    "role":  shape.Some("admin", "member"),
//	    "email": nil,
//	})
package shape
