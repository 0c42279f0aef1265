package shape

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strings"
)

// Kind identifies a Structure variant.
type Kind int

const (
	KindAbsent Kind = iota
	KindPredicate
	KindPattern
	KindTypeName
	KindSequence
	KindCombinator
	KindShape
	KindLiteral
)

var kindNames = [...]string{
	KindAbsent:     "absent",
	KindPredicate:  "predicate",
	KindPattern:    "pattern",
	KindTypeName:   "type",
	KindSequence:   "sequence",
	KindCombinator: "combinator",
	KindShape:      "shape",
	KindLiteral:    "literal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Structure is a sealed interface over the expected-shape variants.
// Only the types in this package implement it.
type Structure interface {
	Kind() Kind
	structure() // Sealed
}

// Absent expects the received value to be nil.
type Absent struct{}

func (Absent) Kind() Kind { return KindAbsent }
func (Absent) structure() {}

// Predicate expects Fn to report true for the received value.
// Name is used only for diagnostics.
type Predicate struct {
	Name string
	Fn   func(any) bool
}

func (Predicate) Kind() Kind { return KindPredicate }
func (Predicate) structure() {}

// Test calls the predicate. A panic inside Fn is not recovered.
func (p Predicate) Test(v any) bool {
	return p.Fn(v)
}

// Pattern expects the text form of the received value to match Re.
type Pattern struct {
	Re *regexp.Regexp
}

func (Pattern) Kind() Kind { return KindPattern }
func (Pattern) structure() {}

// TypeName expects the received value to have the named runtime type.
type TypeName string

// The fixed set of type names.
const (
	TypeString  TypeName = "string"
	TypeBoolean TypeName = "boolean"
	TypeNumber  TypeName = "number"
)

func (TypeName) Kind() Kind { return KindTypeName }
func (TypeName) structure() {}

// IsTypeName reports whether s is one of "string", "boolean" or "number".
func IsTypeName(s string) bool {
	switch TypeName(s) {
	case TypeString, TypeBoolean, TypeNumber:
		return true
	}
	return false
}

// Sequence is a list of element patterns validated against a received list.
type Sequence []Structure

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) structure() {}

// Op is the operation of a Combinator.
type Op int

const (
	OpSome Op = iota
	OpEvery
	OpRepeat
)

func (o Op) String() string {
	switch o {
	case OpSome:
		return "some"
	case OpEvery:
		return "every"
	case OpRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Combinator combines sub-structures.
// Some and Every carry any number of subs; Repeat carries exactly one.
type Combinator struct {
	Op   Op
	Subs []Structure
}

func (Combinator) Kind() Kind { return KindCombinator }
func (Combinator) structure() {}

// Inner returns the repeated structure of a Repeat combinator.
// It returns Absent for an empty combinator.
func (c Combinator) Inner() Structure {
	if len(c.Subs) == 0 {
		return Absent{}
	}
	return c.Subs[0]
}

// IsRepeat reports whether s is a Repeat combinator.
func IsRepeat(s Structure) bool {
	c, ok := s.(Combinator)
	return ok && c.Op == OpRepeat
}

// Shape maps field names to the structure expected at that field.
type Shape map[string]Structure

func (Shape) Kind() Kind { return KindShape }
func (Shape) structure() {}

// Keys returns the field names in sorted order.
func (s Shape) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Literal expects the received value to equal Value.
type Literal struct {
	Value any
}

func (Literal) Kind() Kind { return KindLiteral }
func (Literal) structure() {}

// Some matches when at least one of subs matches.
// Each sub is converted with Classify.
func Some(subs ...any) Combinator {
	return Combinator{Op: OpSome, Subs: classifyAll(subs)}
}

// Every matches when all of subs match.
func Every(subs ...any) Combinator {
	return Combinator{Op: OpEvery, Subs: classifyAll(subs)}
}

// Repeat is an element pattern for sequences: it covers every received
// element that matches inner.
func Repeat(inner any) Combinator {
	return Combinator{Op: OpRepeat, Subs: []Structure{Classify(inner)}}
}

// Func builds a named Predicate.
func Func(name string, fn func(any) bool) Predicate {
	return Predicate{Name: name, Fn: fn}
}

// Regex compiles expr into a Pattern.
func Regex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return Pattern{Re: re}, nil
}

// MustRegex is like Regex but panics on an invalid expression.
func MustRegex(expr string) Pattern {
	p, err := Regex(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Lit forces v to be compared as a literal, bypassing classification.
// Use it for the strings "string", "boolean" and "number".
func Lit(v any) Literal {
	return Literal{Value: v}
}

func classifyAll(vals []any) []Structure {
	out := make([]Structure, len(vals))
	for i, v := range vals {
		out[i] = Classify(v)
	}
	return out
}

// funcName returns a short display name for a function value.
func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
