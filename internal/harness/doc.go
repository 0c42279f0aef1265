// Package harness runs structural conformance scenarios.
//
// A scenario declares one structure and a list of received values (cases),
// each with the verdict it should produce. The harness evaluates every case
// with package match and reports cases whose verdict or failing keys differ
// from the declared expectation.
//
// # Scenario Format
//
// Scenarios are YAML (or CUE) files:
//
//	name: user_payload
//	description: "User records conform to the public shape"
//	structure:
//	  id: { $pred: uuid }
//	  name: string
//	  email: { $regex: "^[^@]+@[^@]+$" }
//	  tags: [ { $repeat: string } ]
//	  role: { $some: [admin, member] }
//	  deleted_at: null
//	cases:
//	  - name: valid
//	    received: { id: "…", name: ada, email: a@b.c, tags: [x], role: admin, deleted_at: null }
//	    expect: pass
//	  - name: unknown role
//	    received_file: testdata/unknown_role.json
//	    expect: fail
//	    failing_keys: [role]
//
// # Structure Directives
//
// Plain values are classified by shape.Classify: the strings "string",
// "boolean" and "number" are type names, null is absent, lists are sequences
// and maps are nested shapes. A map with exactly one "$"-prefixed key is a
// directive:
//
//   - $regex: pattern source
//   - $some / $every: list of sub-structures
//   - $repeat: element structure
//   - $pred: name of a built-in predicate (see PredicateNames)
//   - $literal: value compared literally (e.g. the string "number")
//   - $absent: true
//
// # Golden Files
//
// RunWithGolden snapshots the canonical JSON of every case's failures under
// testdata/golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
