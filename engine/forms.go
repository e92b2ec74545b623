package engine

// formHandler implements one compound query form. operands is the query's tail
// (everything after the form tag); frames is the incoming frame stream.
type formHandler func(ev *Evaluator, operands Term, frames FrameStream) FrameStream

func builtinForms() map[string]formHandler {
	return map[string]formHandler{
		"and":         evalAnd,
		"or":          evalOr,
		"not":         evalNot,
		"lisp-value":  evalLispValue,
		"always-true": evalAlwaysTrue,
		"arith-is":    evalArithIs,
	}
}

// evalAnd threads the frame stream through each conjunct in turn: qeval(rest,
// qeval(first, frames)). Frames surviving the first conjunct feed the next.
func evalAnd(ev *Evaluator, operands Term, frames FrameStream) FrameStream {
	return evalConjuncts(ev, ListToSlice(operands), frames)
}

func evalConjuncts(ev *Evaluator, conjuncts []Term, frames FrameStream) FrameStream {
	if len(conjuncts) == 0 {
		return frames
	}
	return evalConjuncts(ev, conjuncts[1:], ev.qevalUnsafe(conjuncts[0], frames))
}

// evalOr fairly interleaves the frame streams produced by each disjunct against
// the same incoming frames.
func evalOr(ev *Evaluator, operands Term, frames FrameStream) FrameStream {
	return evalDisjuncts(ev, ListToSlice(operands), frames)
}

func evalDisjuncts(ev *Evaluator, disjuncts []Term, frames FrameStream) FrameStream {
	if len(disjuncts) == 0 {
		return nil
	}
	first, rest := disjuncts[0], disjuncts[1:]
	return InterleaveDelayed(ev.qevalUnsafe(first, frames), func() FrameStream {
		return evalDisjuncts(ev, rest, frames)
	})
}

// evalNot is negation-as-failure relative to the current frame: for each incoming
// frame f, f passes through iff evaluating the operand against the singleton
// stream {f} yields nothing. It never binds a variable — it can only drop frames.
func evalNot(ev *Evaluator, operands Term, frames FrameStream) FrameStream {
	operand := ListToSlice(operands)[0]
	return FlatMap(func(f Frame) FrameStream {
		if IsEmpty(ev.qevalUnsafe(operand, StreamOf(f))) {
			return StreamOf(f)
		}
		return nil
	}, frames)
}

// evalAlwaysTrue is the identity handler: it passes every incoming frame through
// unchanged. It is also the default body substituted for a rule with no body.
func evalAlwaysTrue(_ *Evaluator, _ Term, frames FrameStream) FrameStream {
	return frames
}

// evalLispValue instantiates the call under each incoming frame — every pattern
// variable in it must already be bound, or evaluation is fatal — and passes the
// frame through iff the named host predicate returns true.
func evalLispValue(ev *Evaluator, operands Term, frames FrameStream) FrameStream {
	call := ListToSlice(operands)[0]
	return FlatMap(func(f Frame) FrameStream {
		instantiated, err := Instantiate(call, f, RejectUnbound)
		if err != nil {
			raise(err)
		}
		ok, err := ev.predicates.Invoke(instantiated)
		if err != nil {
			raise(err)
		}
		if ok {
			return StreamOf(f)
		}
		return nil
	}, frames)
}

// evalArithIs implements (arith-is TARGET EXPR): EXPR is instantiated and
// evaluated arithmetically, and the result is unified with TARGET. Unlike
// lisp-value this can produce a binding, which is why it is a dedicated form
// rather than an entry in the host predicate registry.
func evalArithIs(ev *Evaluator, operands Term, frames FrameStream) FrameStream {
	parts := ListToSlice(operands)
	target, expr := parts[0], parts[1]
	return FlatMap(func(f Frame) FrameStream {
		instantiated, err := Instantiate(expr, f, RejectUnbound)
		if err != nil {
			raise(err)
		}
		val, err := evalArith(instantiated)
		if err != nil {
			raise(&PredicateError{Predicate: "arith-is", Err: err})
		}
		result := Unify(target, val, f)
		if result.IsFailed() {
			return nil
		}
		return StreamOf(result)
	}, frames)
}
