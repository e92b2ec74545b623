package engine

import "fmt"

// Predicate is a host predicate backing the lisp-value form: given the fully
// instantiated argument list of a call, it returns a boolean-like result. Per the
// external-interface contract in spec.md §6, predicates are pure and any error
// they return surfaces as fatal (wrapped in PredicateError).
type Predicate func(args []Term) (bool, error)

// Predicates is the narrow named-predicate registry that backs lisp-value. This is
// deliberately not "invoke arbitrary host code": a predicate can only be reached by
// the name it was registered under, and can only return a boolean.
type Predicates struct {
	table map[string]Predicate
}

// NewPredicates returns an empty registry.
func NewPredicates() *Predicates {
	return &Predicates{table: make(map[string]Predicate)}
}

// Register adds or replaces the predicate stored under name.
func (p *Predicates) Register(name string, fn Predicate) {
	p.table[name] = fn
}

// Invoke looks up call's functor in the registry and applies it to call's
// (already-instantiated) arguments.
func (p *Predicates) Invoke(call Term) (bool, error) {
	pr, ok := call.(*Pair)
	if !ok {
		return false, ErrInvalidQuery
	}
	name, ok := constSymbol(pr.Head)
	if !ok {
		return false, ErrInvalidQuery
	}
	fn, ok := p.table[name]
	if !ok {
		return false, &PredicateError{Predicate: name, Err: fmt.Errorf("no such predicate")}
	}
	args := ListToSlice(pr.Tail)
	ok2, err := fn(args)
	if err != nil {
		return false, &PredicateError{Predicate: name, Err: err}
	}
	return ok2, nil
}

// NewDefaultPredicates returns a registry populated with the small stdlib-only
// arithmetic, comparison, and type-check predicates named in SPEC_FULL.md §4.13: the
// comparisons Prolog gives special infix syntax, expressed here as ordinary named
// predicates since lisp-value has no notion of infix operators.
func NewDefaultPredicates() *Predicates {
	p := NewPredicates()
	p.Register("<", intCompare(func(a, b int64) bool { return a < b }))
	p.Register(">", intCompare(func(a, b int64) bool { return a > b }))
	p.Register("=<", intCompare(func(a, b int64) bool { return a <= b }))
	p.Register(">=", intCompare(func(a, b int64) bool { return a >= b }))
	p.Register("=:=", intCompare(func(a, b int64) bool { return a == b }))
	p.Register("=\\=", intCompare(func(a, b int64) bool { return a != b }))
	p.Register("atom", func(args []Term) (bool, error) {
		if err := arity("atom", args, 1); err != nil {
			return false, err
		}
		c, ok := args[0].(Constant)
		if !ok {
			return false, nil
		}
		_, isNum := c.IntValue()
		return !isNum, nil
	})
	p.Register("number", func(args []Term) (bool, error) {
		if err := arity("number", args, 1); err != nil {
			return false, err
		}
		c, ok := args[0].(Constant)
		if !ok {
			return false, nil
		}
		_, isNum := c.IntValue()
		return isNum, nil
	})
	p.Register("var", func(args []Term) (bool, error) {
		if err := arity("var", args, 1); err != nil {
			return false, err
		}
		return IsVar(args[0]), nil
	})
	p.Register("eq", func(args []Term) (bool, error) {
		if err := arity("eq", args, 2); err != nil {
			return false, err
		}
		return Equal(args[0], args[1]), nil
	})
	return p
}

func arity(name string, args []Term, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s/%d called with %d argument(s)", name, n, len(args))
	}
	return nil
}

func intCompare(cmp func(a, b int64) bool) Predicate {
	return func(args []Term) (bool, error) {
		if err := arity("compare", args, 2); err != nil {
			return false, err
		}
		a, ok := asInt(args[0])
		if !ok {
			return false, fmt.Errorf("%v is not a number", args[0])
		}
		b, ok := asInt(args[1])
		if !ok {
			return false, fmt.Errorf("%v is not a number", args[1])
		}
		return cmp(a, b), nil
	}
}

func asInt(t Term) (int64, bool) {
	c, ok := t.(Constant)
	if !ok {
		return 0, false
	}
	return c.IntValue()
}
