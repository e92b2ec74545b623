package engine

// Match is the one-sided pattern matcher: pattern may contain variables, datum is
// treated as variable-free (it is an assertion pulled straight from the database).
// It returns the extended frame on success, or FAILED.
func Match(pattern, datum Term, frame Frame) Frame {
	if frame.IsFailed() {
		return frame
	}
	if Equal(pattern, datum) {
		return frame
	}
	if IsVar(pattern) {
		if bound, ok := frame.Lookup(pattern); ok {
			return Match(bound, datum, frame)
		}
		return frame.Extend(pattern, datum)
	}
	pp, ok1 := pattern.(*Pair)
	dp, ok2 := datum.(*Pair)
	if ok1 && ok2 {
		return Match(pp.Tail, dp.Tail, Match(pp.Head, dp.Head, frame))
	}
	return FAILED
}
