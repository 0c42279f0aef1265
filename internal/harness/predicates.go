package harness

import (
	"math"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/structmatch/pkg/match"
	"github.com/roach88/structmatch/pkg/shape"
)

// predicates are the named predicates available to the $pred directive.
var predicates = map[string]func(any) bool{
	"nonEmpty": func(v any) bool {
		switch x := v.(type) {
		case nil:
			return false
		case string:
			return x != ""
		case []any:
			return len(x) > 0
		case map[string]any:
			return len(x) > 0
		}
		return true
	},
	"positive": func(v any) bool {
		n, ok := match.Number(v)
		return ok && n > 0
	},
	"nonNegative": func(v any) bool {
		n, ok := match.Number(v)
		return ok && n >= 0
	},
	"integer": func(v any) bool {
		n, ok := match.Number(v)
		return ok && !math.IsInf(n, 0) && n == math.Trunc(n)
	},
	"uuid": func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	},
	"email": func(v any) bool {
		s, ok := v.(string)
		if !ok || strings.ContainsAny(s, "<> ") {
			return false
		}
		addr, err := mail.ParseAddress(s)
		return err == nil && addr.Address == s
	},
	"timestamp": func(v any) bool {
		switch x := v.(type) {
		case time.Time:
			return true
		case string:
			_, err := time.Parse(time.RFC3339, x)
			return err == nil
		}
		return false
	},
}

// Predicate returns the built-in predicate registered under name.
func Predicate(name string) (shape.Predicate, bool) {
	fn, ok := predicates[name]
	if !ok {
		return shape.Predicate{}, false
	}
	return shape.Func(name, fn), true
}

// PredicateNames lists the built-in predicate names in sorted order.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
