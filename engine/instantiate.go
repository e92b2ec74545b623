package engine

// UnboundHandler is invoked by Instantiate when it reaches a variable with no
// binding in the frame. It either produces a display placeholder (for result
// printing — typically the variable itself, left unbound) or signals
// ErrUnboundInPredicate (for the lisp-value/arith-is use).
type UnboundHandler func(v Term, frame Frame) (Term, error)

// DisplayUnbound leaves an unbound variable as itself; callers printing results
// convert it back to surface syntax separately (see syntax.ContractQuestionMark).
func DisplayUnbound(v Term, _ Frame) (Term, error) { return v, nil }

// RejectUnbound signals ErrUnboundInPredicate; used when instantiating a host
// predicate call, where an unbound argument is a fatal error per spec.
func RejectUnbound(_ Term, _ Frame) (Term, error) { return nil, ErrUnboundInPredicate }

// Instantiate tree-walks expr, resolving every variable against frame (chasing
// binding chains recursively so a variable bound to another bound variable resolves
// all the way through) and calling handler wherever a variable has no binding.
func Instantiate(expr Term, frame Frame, handler UnboundHandler) (Term, error) {
	if IsVar(expr) {
		if bound, ok := frame.Lookup(expr); ok {
			return Instantiate(bound, frame, handler)
		}
		return handler(expr, frame)
	}
	p, ok := expr.(*Pair)
	if !ok {
		return expr, nil
	}
	head, err := Instantiate(p.Head, frame, handler)
	if err != nil {
		return nil, err
	}
	tail, err := Instantiate(p.Tail, frame, handler)
	if err != nil {
		return nil, err
	}
	return Cons(head, tail), nil
}
