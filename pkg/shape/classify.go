package shape

import (
	"reflect"
	"regexp"
)

var (
	boolType  = reflect.TypeOf(true)
	bytesType = reflect.TypeOf([]byte(nil))
)

// Classify converts an arbitrary Go value into a Structure.
//
// Classification order (first match wins):
//  1. a value that already is a Structure is returned unchanged
//  2. nil, or a nil pointer/map/slice/func/interface → Absent
//  3. a single-argument function returning bool → Predicate
//  4. *regexp.Regexp → Pattern
//  5. the strings "string", "boolean", "number" → TypeName
//  6. a slice or array (other than []byte) → Sequence
//  7. a map with string keys → Shape
//  8. anything else → Literal
//
// A []byte is a scalar, so it is a Literal, never a Sequence. The matcher
// treats received bytes the same way: type "string", never a list.
//
// Classify never fails.
func Classify(v any) Structure {
	if s, ok := v.(Structure); ok {
		return s
	}
	if isNil(v) {
		return Absent{}
	}

	switch val := v.(type) {
	case func(any) bool:
		return Predicate{Name: funcName(reflect.ValueOf(val)), Fn: val}
	case *regexp.Regexp:
		return Pattern{Re: val}
	case string:
		if IsTypeName(val) {
			return TypeName(val)
		}
		return Literal{Value: val}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if p, ok := reflectPredicate(rv); ok {
			return p
		}
	case reflect.Slice, reflect.Array:
		if rv.Type() == bytesType {
			break
		}
		seq := make(Sequence, rv.Len())
		for i := range seq {
			seq[i] = Classify(rv.Index(i).Interface())
		}
		return seq
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		sh := make(Shape, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			sh[iter.Key().String()] = Classify(iter.Value().Interface())
		}
		return sh
	}

	return Literal{Value: v}
}

// KindOf reports the variant Classify would choose for v.
func KindOf(v any) Kind {
	return Classify(v).Kind()
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

// reflectPredicate adapts typed single-argument predicates such as
// func(string) bool. A received value that is not assignable to the
// parameter type fails the predicate without calling it.
func reflectPredicate(fn reflect.Value) (Predicate, bool) {
	t := fn.Type()
	if t.NumIn() != 1 || t.NumOut() != 1 || t.IsVariadic() || t.Out(0) != boolType {
		return Predicate{}, false
	}
	in := t.In(0)
	call := func(v any) bool {
		var arg reflect.Value
		if v == nil {
			switch in.Kind() {
			case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
				arg = reflect.Zero(in)
			default:
				return false
			}
		} else {
			arg = reflect.ValueOf(v)
			if !arg.Type().AssignableTo(in) {
				return false
			}
		}
		return fn.Call([]reflect.Value{arg})[0].Bool()
	}
	return Predicate{Name: funcName(fn), Fn: call}, true
}
