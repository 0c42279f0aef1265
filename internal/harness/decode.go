package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/structmatch/pkg/shape"
)

// Structure directive keys.
const (
	DirectiveRegex   = "$regex"
	DirectiveSome    = "$some"
	DirectiveEvery   = "$every"
	DirectiveRepeat  = "$repeat"
	DirectivePred    = "$pred"
	DirectiveLiteral = "$literal"
	DirectiveAbsent  = "$absent"
)

// DecodeError reports an invalid structure document.
type DecodeError struct {
	Path    string // Location in the document ("" for the root)
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Path, e.Message)
}

// DecodeStructure converts a decoded YAML/JSON document into a structure.
//
// Plain scalars, lists and maps follow shape.Classify. Single-key maps whose
// key starts with "$" are directives (see package documentation).
func DecodeStructure(raw any) (shape.Structure, error) {
	return decodeAt(raw, "")
}

func decodeAt(raw any, path string) (shape.Structure, error) {
	switch v := raw.(type) {
	case nil:
		return shape.Absent{}, nil
	case []any:
		seq := make(shape.Sequence, len(v))
		for i, elem := range v {
			s, err := decodeAt(elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			seq[i] = s
		}
		return seq, nil
	case map[string]any:
		if directive, ok := directiveKey(v); ok {
			if len(v) != 1 {
				return nil, &DecodeError{Path: path, Message: fmt.Sprintf("directive %s must be the only key, got %s", directive, strings.Join(mapKeys(v), ", "))}
			}
			return decodeDirective(directive, v[directive], path)
		}
		out := make(shape.Shape, len(v))
		for key, field := range v {
			s, err := decodeAt(field, fieldPath(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = s
		}
		return out, nil
	case map[any]any:
		return nil, &DecodeError{Path: path, Message: "object keys must be strings"}
	default:
		return shape.Classify(v), nil
	}
}

func decodeDirective(directive string, arg any, path string) (shape.Structure, error) {
	at := fieldPath(path, directive)

	switch directive {
	case DirectiveRegex:
		expr, ok := arg.(string)
		if !ok {
			return nil, &DecodeError{Path: at, Message: fmt.Sprintf("expected pattern string, got %T", arg)}
		}
		p, err := shape.Regex(expr)
		if err != nil {
			return nil, &DecodeError{Path: at, Message: err.Error()}
		}
		return p, nil

	case DirectiveSome, DirectiveEvery:
		list, ok := arg.([]any)
		if !ok {
			return nil, &DecodeError{Path: at, Message: fmt.Sprintf("expected list of structures, got %T", arg)}
		}
		subs := make([]shape.Structure, len(list))
		for i, elem := range list {
			s, err := decodeAt(elem, indexPath(at, i))
			if err != nil {
				return nil, err
			}
			subs[i] = s
		}
		op := shape.OpSome
		if directive == DirectiveEvery {
			op = shape.OpEvery
		}
		return shape.Combinator{Op: op, Subs: subs}, nil

	case DirectiveRepeat:
		inner, err := decodeAt(arg, at)
		if err != nil {
			return nil, err
		}
		return shape.Combinator{Op: shape.OpRepeat, Subs: []shape.Structure{inner}}, nil

	case DirectivePred:
		name, ok := arg.(string)
		if !ok {
			return nil, &DecodeError{Path: at, Message: fmt.Sprintf("expected predicate name, got %T", arg)}
		}
		p, ok := Predicate(name)
		if !ok {
			return nil, &DecodeError{Path: at, Message: fmt.Sprintf("unknown predicate %q (known: %s)", name, strings.Join(PredicateNames(), ", "))}
		}
		return p, nil

	case DirectiveLiteral:
		return shape.Lit(arg), nil

	case DirectiveAbsent:
		if b, ok := arg.(bool); !ok || !b {
			return nil, &DecodeError{Path: at, Message: "expected true"}
		}
		return shape.Absent{}, nil

	default:
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unknown directive %s", directive)}
	}
}

// directiveKey returns the first "$"-prefixed key of m in sorted order.
func directiveKey(m map[string]any) (string, bool) {
	for _, k := range mapKeys(m) {
		if strings.HasPrefix(k, "$") {
			return k, true
		}
	}
	return "", false
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
