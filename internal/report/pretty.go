package report

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/structmatch/pkg/shape"
)

// Pretty renders a structure fragment or received value on one line.
//
// Output is deterministic: map keys are sorted, numbers use the shortest
// representation, strings are double-quoted.
func Pretty(v any) string {
	var b strings.Builder
	writePretty(&b, v)
	return b.String()
}

func writePretty(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case shape.Absent:
		b.WriteString("null")
	case shape.TypeName:
		b.WriteString(strconv.Quote(string(val)))
	case shape.Literal:
		writePretty(b, val.Value)
	case shape.Pattern:
		writeRegexp(b, val.Re)
	case *regexp.Regexp:
		writeRegexp(b, val)
	case shape.Predicate:
		writeFunction(b, val.Name)
	case shape.Combinator:
		writeCombinator(b, val)
	case shape.Sequence:
		writeList(b, len(val), func(i int) any { return val[i] })
	case []shape.Structure:
		writeList(b, len(val), func(i int) any { return val[i] })
	case shape.Shape:
		keys := val.Keys()
		writeObject(b, keys, func(k string) any { return val[k] })
	case string:
		b.WriteString(strconv.Quote(val))
	case json.Number:
		b.WriteString(val.String())
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case []byte:
		fmt.Fprintf(b, "Bytes(%q)", val)
	default:
		writeReflect(b, reflect.ValueOf(v))
	}
}

func writeReflect(b *strings.Builder, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.String:
		b.WriteString(strconv.Quote(rv.String()))
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("null")
			return
		}
		writeList(b, rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.IsNil() {
			b.WriteString("null")
			return
		}
		keys := make([]string, 0, rv.Len())
		values := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = iter.Value().Interface()
		}
		sort.Strings(keys)
		writeObject(b, keys, func(k string) any { return values[k] })
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("null")
			return
		}
		writePretty(b, rv.Elem().Interface())
	case reflect.Func:
		writeFunction(b, "")
	case reflect.Struct:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			b.WriteString(s.String())
			return
		}
		fmt.Fprintf(b, "%+v", rv.Interface())
	default:
		fmt.Fprintf(b, "%v", rv.Interface())
	}
}

func writeRegexp(b *strings.Builder, re *regexp.Regexp) {
	b.WriteByte('/')
	b.WriteString(re.String())
	b.WriteByte('/')
}

func writeFunction(b *strings.Builder, name string) {
	if name == "" {
		b.WriteString("[Function anonymous]")
		return
	}
	b.WriteString("[Function ")
	b.WriteString(name)
	b.WriteByte(']')
}

func writeCombinator(b *strings.Builder, c shape.Combinator) {
	switch c.Op {
	case shape.OpRepeat:
		b.WriteString("Repeat(")
		writePretty(b, c.Inner())
		b.WriteByte(')')
		return
	case shape.OpEvery:
		b.WriteString("Every(")
	default:
		b.WriteString("Some(")
	}
	writeList(b, len(c.Subs), func(i int) any { return c.Subs[i] })
	b.WriteByte(')')
}

func writeList(b *strings.Builder, n int, at func(int) any) {
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writePretty(b, at(i))
	}
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, keys []string, at func(string) any) {
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		writePretty(b, at(k))
	}
	b.WriteByte('}')
}
