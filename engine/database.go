package engine

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// AssertionStream is a lazy stream of stored facts.
type AssertionStream = *Stream[Term]

// RuleStream is a lazy stream of stored rules.
type RuleStream = *Stream[*Rule]

// Rule is a Horn-clause-like implication: Conclusion holds whenever Body, a query
// term, succeeds. A fact asserted directly is not represented as a Rule; only
// items with the (rule CONCLUSION BODY?) shape, or items containing a variable
// (see the Open Question resolution below), become rules.
type Rule struct {
	Conclusion Term
	Body       Term
}

func (r *Rule) String() string {
	return "(rule " + r.Conclusion.String() + " " + r.Body.String() + ")"
}

const wildcardKey = "?"

// Database holds the two append-only registers (assertions, rules), the head-key
// index over both, and the rule-application counter, as an explicit value rather
// than process-wide global state — this is what lets a process hold more than one
// independent knowledge base at a time, and what lets the generation counter be
// scoped to a single Database instead of leaking across them.
//
// Database is not safe for concurrent use. Mutation (Add) and active query
// evaluation must not be interleaved from multiple goroutines; the core assumes a
// quiescent writer, matching the single-threaded contract this evaluator is built
// on. Add itself is safe to call from a single writer goroutine while readers hold
// stream values obtained before the call: those streams observe the database as of
// the point they were fetched, since adding never mutates an existing stream cell.
type Database struct {
	mu sync.Mutex // guards gen only; register/index fields assume a quiescent writer

	id ulid.ULID

	assertions AssertionStream
	rules      RuleStream

	assertionIndex map[string]AssertionStream
	ruleIndex      map[string]RuleStream

	gen int
}

// NewDatabase creates an empty knowledge base with a fresh identity.
func NewDatabase() *Database {
	return &Database{
		id:             ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader),
		assertionIndex: make(map[string]AssertionStream),
		ruleIndex:      make(map[string]RuleStream),
	}
}

// ID returns the database's stable identity, useful for log lines and error
// messages in a process that holds more than one Database.
func (db *Database) ID() string { return db.id.String() }

func (db *Database) nextGen() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gen++
	return db.gen
}

// Add stores item in the database. If item has the (rule CONCLUSION BODY?) shape
// it is stored as a rule (BODY defaulting to (always-true) when absent). Otherwise,
// if item contains a variable anywhere, it is stored as a rule with an
// always-true body and item itself as the conclusion — the Open Question
// resolution documented in DESIGN.md for "what does it mean to assert a
// pattern with variables as a fact". Anything else is stored as a ground
// assertion.
func (db *Database) Add(item Term) {
	if concl, body, ok := ruleShape(item); ok {
		db.addRule(&Rule{Conclusion: concl, Body: body})
		return
	}
	if containsVar(item) {
		db.addRule(&Rule{Conclusion: item, Body: AlwaysTrueTerm()})
		return
	}
	db.addAssertion(item)
}

// AlwaysTrueTerm builds the (always-true) query term used as a rule's default body.
func AlwaysTrueTerm() Term { return List(Sym("always-true")) }

// ruleShape recognizes (rule CONCLUSION BODY) and (rule CONCLUSION), the latter
// defaulting BODY to (always-true) per spec.
func ruleShape(item Term) (conclusion, body Term, ok bool) {
	p, isPair := item.(*Pair)
	if !isPair {
		return nil, nil, false
	}
	sym, isSym := constSymbol(p.Head)
	if !isSym || sym != "rule" {
		return nil, nil, false
	}
	parts := ListToSlice(p.Tail)
	switch len(parts) {
	case 1:
		return parts[0], AlwaysTrueTerm(), true
	case 2:
		return parts[0], parts[1], true
	default:
		return nil, nil, false
	}
}

// addAssertion conses item onto the master assertion register and, if item's head
// is a constant symbol, onto that key's bucket. The index is updated before the
// master register so that "present in master implies indexed" holds even if a
// reader observes the database mid-Add — in this single-threaded implementation
// that ordering is not observable, but it documents the invariant the design
// notes call for.
func (db *Database) addAssertion(item Term) {
	if key, ok := headSymbol(item); ok {
		old := db.assertionIndex[key]
		db.assertionIndex[key] = StreamCons(item, func() AssertionStream { return old })
	}
	old := db.assertions
	db.assertions = StreamCons(item, func() AssertionStream { return old })
}

// addRule conses r onto the master rule register and onto the bucket keyed by its
// conclusion's head — the wildcard bucket if the conclusion's head is itself a
// variable, since such a rule must be considered for every query.
func (db *Database) addRule(r *Rule) {
	key := IndexKeyOf(r.Conclusion)
	old := db.ruleIndex[key]
	db.ruleIndex[key] = StreamCons(r, func() RuleStream { return old })
	oldMaster := db.rules
	db.rules = StreamCons(r, func() RuleStream { return oldMaster })
}

// IndexKeyOf returns the pattern's head-key for the index: the constant symbol if
// the head is one, else the wildcard.
func IndexKeyOf(pat Term) string {
	if key, ok := headSymbol(pat); ok {
		return key
	}
	return wildcardKey
}

// UseIndex reports whether pat's head is a constant symbol, i.e. whether fetching
// can go straight to a bucket instead of scanning the full register.
func UseIndex(pat Term) bool {
	_, ok := headSymbol(pat)
	return ok
}

// FetchAssertions returns the candidate assertion stream for pattern: the bucket
// keyed by pattern's head if it has a constant-symbol one, else the full register.
func (db *Database) FetchAssertions(pattern Term) AssertionStream {
	if key, ok := headSymbol(pattern); ok {
		return db.assertionIndex[key]
	}
	return db.assertions
}

// FetchRules returns the candidate rule stream for pattern. When pattern's head is
// a constant symbol this is the specific bucket appended with the wildcard bucket
// (rules with variable-headed conclusions must always be considered); otherwise
// it is the full register.
func (db *Database) FetchRules(pattern Term) RuleStream {
	if key, ok := headSymbol(pattern); ok {
		specific, wildcard := db.ruleIndex[key], db.ruleIndex[wildcardKey]
		return AppendDelayed(specific, func() RuleStream { return wildcard })
	}
	return db.rules
}

// Assertions returns every stored assertion, most-recently-added first.
func (db *Database) Assertions() AssertionStream { return db.assertions }

// Rules returns every stored rule, most-recently-added first.
func (db *Database) Rules() RuleStream { return db.rules }
