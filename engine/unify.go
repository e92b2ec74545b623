package engine

// Unify is the symmetric counterpart of Match: both sides may contain variables.
// It enforces the occurs-check at binding time, rejecting equations with no finite
// solution (e.g. ?x = f(?x)), which is what keeps a frame from becoming cyclic.
func Unify(p1, p2 Term, frame Frame) Frame {
	if frame.IsFailed() {
		return frame
	}
	if Equal(p1, p2) {
		return frame
	}
	if IsVar(p1) {
		return extendIfPossible(p1, p2, frame)
	}
	if IsVar(p2) {
		return extendIfPossible(p2, p1, frame)
	}
	pp1, ok1 := p1.(*Pair)
	pp2, ok2 := p2.(*Pair)
	if ok1 && ok2 {
		return Unify(pp1.Tail, pp2.Tail, Unify(pp1.Head, pp2.Head, frame))
	}
	return FAILED
}

// extendIfPossible binds var to val, chasing existing bindings on either side and
// refusing (via the occurs-check) to create a binding whose value contains the key
// variable.
func extendIfPossible(v, val Term, frame Frame) Frame {
	if bound, ok := frame.Lookup(v); ok {
		return Unify(bound, val, frame)
	}
	if IsVar(val) {
		if boundVal, ok := frame.Lookup(val); ok {
			return Unify(v, boundVal, frame)
		}
	}
	if DependsOn(val, v, frame) {
		return FAILED
	}
	return frame.Extend(v, val)
}

// DependsOn walks expr, resolving bound variables through frame, and reports
// whether v occurs anywhere in the result. This is the occurs-check.
func DependsOn(expr, v Term, frame Frame) bool {
	if IsVar(expr) {
		if Equal(expr, v) {
			return true
		}
		if bound, ok := frame.Lookup(expr); ok {
			return DependsOn(bound, v, frame)
		}
		return false
	}
	if p, ok := expr.(*Pair); ok {
		return DependsOn(p.Head, v, frame) || DependsOn(p.Tail, v, frame)
	}
	return false
}
