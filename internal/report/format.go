package report

import (
	"fmt"
	"strings"

	"github.com/roach88/structmatch/pkg/match"
)

// FormatMismatch renders one failure as a message block.
//
// Field failures:
//
//	Expected value of key "a.b" to be of type:
//	  "number"
//	Received:
//	  "string"
//
// Key cardinality failures list both key sets, comma separated.
func FormatMismatch(m match.Mismatch) string {
	if m.IsKeyMismatch() {
		return formatKeyMismatch(m)
	}
	return fmt.Sprintf("Expected value of key \"%s\" to %s:\n  %s\nReceived:\n  %s",
		m.Key, m.Relation, Pretty(m.Expected), Pretty(m.Received))
}

func formatKeyMismatch(m match.Mismatch) string {
	var b strings.Builder
	b.WriteString(m.Relation)
	if m.Key != "" {
		fmt.Fprintf(&b, " at key \"%s\"", m.Key)
	}
	b.WriteString(".\n\nExpected:\n  ")
	b.WriteString(joinKeys(m.Expected))
	b.WriteString("\nReceived:\n  ")
	b.WriteString(joinKeys(m.Received))
	return b.String()
}

func joinKeys(v any) string {
	keys, ok := v.([]string)
	if !ok {
		return Pretty(v)
	}
	return strings.Join(keys, ",")
}

// FormatFailures renders every failure, one block per record, separated by a
// blank line.
func FormatFailures(failures []match.Mismatch) string {
	blocks := make([]string, len(failures))
	for i, f := range failures {
		blocks[i] = FormatMismatch(f)
	}
	return strings.Join(blocks, "\n\n")
}

// Message renders an assertion failure: the hint line, a blank line, then
// the failure blocks. An empty hint is omitted.
func Message(hint string, failures []match.Mismatch) string {
	body := FormatFailures(failures)
	if hint == "" {
		return body
	}
	return hint + "\n\n" + body
}
