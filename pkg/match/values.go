package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Runtime type names reported by TypeOf.
const (
	TypeNull     = "null"
	TypeString   = "string"
	TypeBoolean  = "boolean"
	TypeNumber   = "number"
	TypeObject   = "object"
	TypeArray    = "array"
	TypeFunction = "function"
)

// JoinPath joins path segments with ".", skipping empty segments.
func JoinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// TypeOf returns the runtime type name of v.
// All integer and float kinds, and json.Number, are "number". A []byte is a
// scalar "string", as in its JSON encoding; it is never a list.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return TypeNull
	case json.Number:
		return TypeNumber
	case []byte:
		return TypeString
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Func:
		return TypeFunction
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return TypeNull
		}
		return TypeOf(rv.Elem().Interface())
	default:
		return TypeObject
	}
}

// Text returns the text form of v used for pattern matching.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	}
	if f, ok := Number(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}
	return fmt.Sprint(v)
}

// Equal reports literal equality. Numbers compare by value across Go numeric
// kinds; named string and bool types compare by their underlying value.
func Equal(expected, received any) bool {
	if expected == nil || received == nil {
		return expected == nil && received == nil
	}
	if a, ok := Number(expected); ok {
		b, ok := Number(received)
		return ok && a == b
	}
	// json.Number has a string kind; a non-numeric literal never equals it.
	if _, ok := Number(received); ok {
		return false
	}

	ev, rv := reflect.ValueOf(expected), reflect.ValueOf(received)
	switch {
	case ev.Kind() == reflect.String && rv.Kind() == reflect.String:
		return ev.String() == rv.String()
	case ev.Kind() == reflect.Bool && rv.Kind() == reflect.Bool:
		return ev.Bool() == rv.Bool()
	}
	return reflect.DeepEqual(expected, received)
}

// Number converts numeric values, including json.Number, to float64.
func Number(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// fields returns the keyed contents of an object-like value. Values that are
// not objects have no fields. Structs are read through their JSON encoding so
// json tags name the fields.
func fields(v any) map[string]any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return val
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	case reflect.Struct:
		return structFields(rv.Interface())
	}
	return nil
}

func structFields(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return out
}

// elements returns the items of a list-like value.
func elements(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case []any:
		return val, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
