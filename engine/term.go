// Package engine is the core of a deductive query engine: a Prolog-style logic
// database answered by pattern matching and unification over lazy, interleaved
// frame streams.
//
// The package is a pure library: no I/O, no logging, no global state. A Database
// value holds everything that would otherwise be process-wide (the assertion and
// rule registers, the index, the rule-application counter), which is what lets a
// process keep more than one independent knowledge base alive at once.
package engine

import (
	"fmt"
	"strings"
)

// Term is the tagged union at the center of the term model: a Constant, a Pair, or
// (by convention, see IsVar) a Pair headed by the reserved variable marker.
type Term interface {
	fmt.Stringer
	termTag() string
}

// Constant is a symbol or literal scalar. Equality is value equality on the
// wrapped Go value.
type Constant struct {
	val any
}

// Sym builds a symbol constant.
func Sym(name string) Constant { return Constant{val: name} }

// Num builds an integer constant.
func Num(n int64) Constant { return Constant{val: n} }

func (c Constant) String() string {
	switch v := c.val.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func (c Constant) termTag() string { return "constant" }

// SymbolName returns the wrapped string and true iff c is a symbol.
func (c Constant) SymbolName() (string, bool) {
	s, ok := c.val.(string)
	return s, ok
}

// IntValue returns the wrapped integer and true iff c is a number.
func (c Constant) IntValue() (int64, bool) {
	n, ok := c.val.(int64)
	return n, ok
}

// Empty is the empty-list constant that terminates every proper list of Pairs.
var Empty = Sym("()")

// qmark is the reserved head marker that identifies a Pair as a variable.
var qmark = Sym("?")

// Pair is an ordered cons cell. Compound terms are right-nested chains of Pairs
// ending in Empty.
type Pair struct {
	Head Term
	Tail Term
}

// Cons builds a Pair.
func Cons(head, tail Term) *Pair { return &Pair{Head: head, Tail: tail} }

func (p *Pair) String() string {
	var b strings.Builder
	if IsVar(p) {
		b.WriteString(displayVar(p))
		return b.String()
	}
	b.WriteByte('(')
	first := true
	cur := Term(p)
	for {
		pp, ok := cur.(*Pair)
		if !ok {
			if cur != Term(Empty) {
				b.WriteString(" . ")
				b.WriteString(cur.String())
			}
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(pp.Head.String())
		cur = pp.Tail
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Pair) termTag() string { return "pair" }

func displayVar(p *Pair) string {
	name := VarName(p)
	if gen, ok := VarGen(p); ok {
		return fmt.Sprintf("?%s-%d", name, gen)
	}
	return "?" + name
}

// List builds a proper right-nested list ending in Empty.
func List(items ...Term) Term {
	result := Term(Empty)
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(items[i], result)
	}
	return result
}

// ListToSlice flattens a proper list into a slice, stopping at the first non-Pair
// tail (Empty in the well-formed case).
func ListToSlice(t Term) []Term {
	var out []Term
	for {
		p, ok := t.(*Pair)
		if !ok {
			break
		}
		out = append(out, p.Head)
		t = p.Tail
	}
	return out
}

// MakeVar builds a user-entered variable, generation 0: (? name).
func MakeVar(name string) Term {
	return Cons(qmark, Cons(Sym(name), Empty))
}

// MakeGenVar builds a rule-application variable carrying a fresh generation id:
// (? gen name).
func MakeGenVar(gen int, name string) Term {
	return Cons(qmark, Cons(Num(int64(gen)), Cons(Sym(name), Empty)))
}

// varParts recognizes the shape of a variable term and extracts its components.
// A variable is (? name) — user-entered, generation 0 — or (? gen name) —
// rule-generated, carrying the generation id that keeps distinct rule applications
// from sharing variable identity.
func varParts(t Term) (name string, gen int, hasGen bool, ok bool) {
	p, isPair := t.(*Pair)
	if !isPair {
		return "", 0, false, false
	}
	head, isConst := p.Head.(Constant)
	if !isConst || head != qmark {
		return "", 0, false, false
	}
	rest, isPair := p.Tail.(*Pair)
	if !isPair {
		return "", 0, false, false
	}
	first, isConst := rest.Head.(Constant)
	if !isConst {
		return "", 0, false, false
	}
	if name, isSym := first.SymbolName(); isSym {
		if end, isConst := rest.Tail.(Constant); isConst && end == Empty {
			return name, 0, false, true
		}
		return "", 0, false, false
	}
	genVal, isNum := first.IntValue()
	if !isNum {
		return "", 0, false, false
	}
	tail2, isPair := rest.Tail.(*Pair)
	if !isPair {
		return "", 0, false, false
	}
	second, isConst := tail2.Head.(Constant)
	if !isConst {
		return "", 0, false, false
	}
	name, isSym := second.SymbolName()
	if !isSym {
		return "", 0, false, false
	}
	end, isConst := tail2.Tail.(Constant)
	if !isConst || end != Empty {
		return "", 0, false, false
	}
	return name, int(genVal), true, true
}

// IsVar reports whether t is a Pair recognized as a variable: headed by the
// reserved marker, with a two- or three-element tail of the right shape.
func IsVar(t Term) bool {
	_, _, _, ok := varParts(t)
	return ok
}

// VarName extracts the user-visible name of a variable term. Panics if t is not a
// variable; callers must check IsVar first.
func VarName(t Term) string {
	name, _, _, ok := varParts(t)
	if !ok {
		panic("VarName: not a variable")
	}
	return name
}

// VarGen returns the generation id and true if t is a rule-generated variable
// carrying one; ok is false for a user-entered (generation 0) variable.
func VarGen(t Term) (int, bool) {
	_, gen, hasGen, ok := varParts(t)
	if !ok {
		panic("VarGen: not a variable")
	}
	return gen, hasGen
}

// Equal is structural equality: value equality on constants, recursive structural
// equality on pairs. Because variables are represented as pairs carrying a name
// (and, for rule-generated variables, a generation id), Equal on two variable terms
// is exactly the "same variable" identity test the frame requires: two variables
// compare equal iff their names and generations both match.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Constant:
		bv, ok := b.(Constant)
		return ok && av == bv
	case *Pair:
		bv, ok := b.(*Pair)
		if !ok {
			return false
		}
		return Equal(av.Head, bv.Head) && Equal(av.Tail, bv.Tail)
	default:
		return false
	}
}

// containsVar reports whether t has a variable anywhere in it, used to decide
// whether an item handed to Database.Add is ground enough to store as a plain
// assertion (see the Open Question resolution in DESIGN.md).
func containsVar(t Term) bool {
	if IsVar(t) {
		return true
	}
	p, ok := t.(*Pair)
	if !ok {
		return false
	}
	return containsVar(p.Head) || containsVar(p.Tail)
}

// constSymbol returns the symbol name of t and true iff t is a symbol constant.
func constSymbol(t Term) (string, bool) {
	c, ok := t.(Constant)
	if !ok {
		return "", false
	}
	return c.SymbolName()
}

// headSymbol returns the functor symbol of a compound term (a Pair whose head is a
// symbol constant), used by the index to key assertions and rules.
func headSymbol(t Term) (string, bool) {
	p, ok := t.(*Pair)
	if !ok {
		return "", false
	}
	return constSymbol(p.Head)
}
