package engine

// Evaluator is the query evaluator bound to one database and one host predicate
// registry. Separate from Database itself so that evaluation state (the compound
// form table, the registry) can vary independently of what is stored.
type Evaluator struct {
	db         *Database
	predicates *Predicates
	forms      map[string]formHandler
}

// NewEvaluator builds an evaluator over db, answering lisp-value calls against
// predicates. A nil predicates is treated as an empty registry.
func NewEvaluator(db *Database, predicates *Predicates) *Evaluator {
	if predicates == nil {
		predicates = NewPredicates()
	}
	return &Evaluator{db: db, predicates: predicates, forms: builtinForms()}
}

// Database returns the evaluator's bound database.
func (ev *Evaluator) Database() *Database { return ev.db }

// Qeval is the public entry point: evaluate query against the single incoming
// frame, returning the stream of frames that satisfy it. Any fatal error raised
// deep in the lazy stream machinery (ErrInvalidQuery, ErrUnboundInPredicate, a
// PredicateError) is recovered here and returned as err instead of propagating as
// a panic, so a caller's read loop can report it and continue.
func (ev *Evaluator) Qeval(query Term, frame Frame) (result FrameStream, err error) {
	defer recoverFatal(&err)
	return ev.qevalUnsafe(query, StreamOf(frame)), nil
}

// qevalUnsafe is the recursive core: it may panic with a fatalErr, and every
// caller within the package other than Qeval and NextFrame must let that
// propagate rather than recovering it.
func (ev *Evaluator) qevalUnsafe(query Term, frames FrameStream) FrameStream {
	p, ok := query.(*Pair)
	if !ok {
		raise(ErrInvalidQuery)
	}
	if tag, isSym := constSymbol(p.Head); isSym {
		if handler, ok := ev.forms[tag]; ok {
			return handler(ev, p.Tail, frames)
		}
	}
	return ev.simpleQuery(query, frames)
}

// simpleQuery evaluates a plain (non-form) query pattern against frames: for each
// incoming frame, it is the append-delayed concatenation of every assertion
// match followed by every rule application that succeeds, and FlatMap's own
// InterleaveDelayed is what fairly interleaves that result across frames.
func (ev *Evaluator) simpleQuery(pattern Term, frames FrameStream) FrameStream {
	return FlatMap(func(f Frame) FrameStream {
		return AppendDelayed(
			ev.findAssertions(pattern, f),
			func() FrameStream { return ev.applyRules(pattern, f) },
		)
	}, frames)
}

// findAssertions matches pattern against every candidate assertion (the indexed
// bucket when pattern's head is a constant symbol, the full register otherwise),
// keeping only the ones that match.
func (ev *Evaluator) findAssertions(pattern Term, frame Frame) FrameStream {
	candidates := ev.db.FetchAssertions(pattern)
	return matchEach(pattern, candidates, frame)
}

func matchEach(pattern Term, candidates AssertionStream, frame Frame) FrameStream {
	if IsEmpty(candidates) {
		return nil
	}
	datum, rest := Head(candidates), Tail(candidates)
	result := Match(pattern, datum, frame)
	if result.IsFailed() {
		return matchEach(pattern, rest, frame)
	}
	return StreamCons(result, func() FrameStream { return matchEach(pattern, rest, frame) })
}

// applyRules interleaves the result of applying every candidate rule (the indexed
// bucket plus the wildcard bucket, or the full register) to pattern under frame.
func (ev *Evaluator) applyRules(pattern Term, frame Frame) FrameStream {
	return applyEach(ev, pattern, ev.db.FetchRules(pattern), frame)
}

func applyEach(ev *Evaluator, pattern Term, rules RuleStream, frame Frame) FrameStream {
	if IsEmpty(rules) {
		return nil
	}
	rule, rest := Head(rules), Tail(rules)
	return InterleaveDelayed(
		ev.applyRule(pattern, rule, frame),
		func() FrameStream { return applyEach(ev, pattern, rest, frame) },
	)
}

// applyRule alpha-renames rule to a fresh generation, unifies pattern against the
// renamed conclusion, and — only if that unification succeeds — evaluates the
// renamed body under the resulting frame.
func (ev *Evaluator) applyRule(pattern Term, rule *Rule, frame Frame) FrameStream {
	renamed := RenameRule(ev.db, rule)
	unified := Unify(pattern, renamed.Conclusion, frame)
	if unified.IsFailed() {
		return nil
	}
	return ev.qevalUnsafe(renamed.Body, StreamOf(unified))
}

// NextFrame pulls one element off frames, recovering any fatal error raised while
// forcing it. It returns ok=false with a nil error when frames is genuinely
// exhausted, letting a driver loop distinguish "no more answers" from "evaluation
// failed" while only ever touching the stream one answer at a time.
func NextFrame(frames FrameStream) (frame Frame, rest FrameStream, ok bool, err error) {
	defer recoverFatal(&err)
	if IsEmpty(frames) {
		return Frame{}, nil, false, nil
	}
	return Head(frames), Tail(frames), true, nil
}
