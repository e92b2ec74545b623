package engine

import "errors"

// The three fatal error kinds named in the spec. Match and unification failures are
// never errors — they are routine and signaled only by an empty frame stream.
var (
	// ErrInvalidQuery: a query term is not a pair, or a simple-query pattern
	// expected a pair and didn't get one.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnboundInPredicate: a lisp-value or arith-is call referenced a variable
	// the incoming frame left unbound.
	ErrUnboundInPredicate = errors.New("unbound variable in predicate filter")
)

// PredicateError wraps a failure raised by a host predicate itself (as opposed to a
// malformed call site).
type PredicateError struct {
	Predicate string
	Err       error
}

func (e *PredicateError) Error() string {
	return "predicate " + e.Predicate + ": " + e.Err.Error()
}

func (e *PredicateError) Unwrap() error { return e.Err }

// fatalErr is the panic payload used to carry a fatal error out of the lazy stream
// machinery (qeval's handlers run inside the closures that build stream tails, deep
// under ordinary function returns) up to the nearest recovery point in Qeval or
// NextFrame. It is never exposed outside the package.
type fatalErr struct{ err error }

func raise(err error) { panic(fatalErr{err}) }

// recoverFatal converts a fatalErr panic into an error return; any other panic
// value is re-raised, since it indicates a programming bug rather than a modeled
// failure.
func recoverFatal(errp *error) {
	if r := recover(); r != nil {
		if fe, ok := r.(fatalErr); ok {
			*errp = fe.err
			return
		}
		panic(r)
	}
}
