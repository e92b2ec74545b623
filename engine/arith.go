package engine

import "fmt"

// evalArith evaluates a fully-instantiated arithmetic expression term: a Num
// constant, or a Pair (op a b) with op one of + - * /. It is the implementation
// behind the arith-is form (SPEC_FULL.md §4.13's "is" predicate) — unlike an ordinary
// lisp-value predicate, arith-is produces a value rather than a boolean, so it
// cannot be expressed as an entry in the Predicates registry.
func evalArith(t Term) (Term, error) {
	if c, ok := t.(Constant); ok {
		if _, isNum := c.IntValue(); isNum {
			return c, nil
		}
		return nil, fmt.Errorf("%v is not an arithmetic value", t)
	}
	p, ok := t.(*Pair)
	if !ok {
		return nil, fmt.Errorf("%v is not an arithmetic expression", t)
	}
	op, ok := constSymbol(p.Head)
	if !ok {
		return nil, fmt.Errorf("%v is not an arithmetic operator", p.Head)
	}
	args := ListToSlice(p.Tail)
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 operands, got %d", op, len(args))
	}
	lhs, err := evalArith(args[0])
	if err != nil {
		return nil, err
	}
	rhs, err := evalArith(args[1])
	if err != nil {
		return nil, err
	}
	a, _ := lhs.(Constant).IntValue()
	b, _ := rhs.(Constant).IntValue()
	switch op {
	case "+":
		return Num(a + b), nil
	case "-":
		return Num(a - b), nil
	case "*":
		return Num(a * b), nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return Num(a / b), nil
	default:
		return nil, fmt.Errorf("unknown arithmetic operator %q", op)
	}
}
