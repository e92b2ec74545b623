package syntax

import (
	"fmt"
	"strconv"

	"deductive/engine"
)

// parser ::= term
// term   ::= atom | number | "(" term* ")"
//
// There is no special syntax for variables at the tokenizer level: ?x is lexed
// as an ordinary atom, and Preprocess recognizes the leading "?" afterward. This
// keeps the grammar itself trivial and puts variable recognition in one place.
type parser struct {
	toks *tokenizer
	peek *token
}

func newParser(t *tokenizer) *parser {
	return &parser{toks: t}
}

func (p *parser) peekTok() token {
	if p.peek == nil {
		tok := p.toks.next()
		p.peek = &tok
	}
	return *p.peek
}

func (p *parser) getTok() token {
	tok := p.peekTok()
	p.peek = nil
	return tok
}

// parseTerm parses one term. ok is false (with a zero Term) at a clean EOF
// before any token of the term was consumed; any other malformed input panics
// with a *syntaxError, matching the tokenizer's own error convention.
func (p *parser) parseTerm() (term engine.Term, ok bool) {
	tok := p.getTok()
	switch tok.kind {
	case tokEOF:
		return nil, false
	case tokNumber:
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			p.toks.lineno = tok.lineno
			p.toks.fail("number out of range: %s", tok.text)
		}
		return engine.Num(n), true
	case tokAtom:
		return engine.Sym(tok.text), true
	case tokLParen:
		return p.parseList(), true
	case tokRParen:
		p.toks.lineno = tok.lineno
		p.toks.fail("unexpected )")
	}
	panic("unreachable")
}

func (p *parser) parseList() engine.Term {
	var items []engine.Term
	for {
		tok := p.peekTok()
		if tok.kind == tokRParen {
			p.getTok()
			return engine.List(items...)
		}
		if tok.kind == tokEOF {
			p.toks.lineno = tok.lineno
			p.toks.fail("unexpected end of input in list")
		}
		term, _ := p.parseTerm()
		items = append(items, term)
	}
}

// Read parses every top-level term in src and returns them as internal
// (post-Preprocess) terms, in order. A malformed term is reported as an error
// naming its line number; Read does not panic.
func Read(r reader) (terms []engine.Term, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if se, ok := rec.(*syntaxError); ok {
				err = se
				return
			}
			panic(rec)
		}
	}()
	p := newParser(newTokenizer(r))
	for {
		term, ok := p.parseTerm()
		if !ok {
			return terms, nil
		}
		terms = append(terms, Preprocess(term))
	}
}

// ReadOne parses exactly one top-level term and reports whether one was present
// before EOF.
func ReadOne(r reader) (term engine.Term, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if se, ok2 := rec.(*syntaxError); ok2 {
				err = se
				return
			}
			panic(rec)
		}
	}()
	p := newParser(newTokenizer(r))
	t, present := p.parseTerm()
	if !present {
		return nil, false, nil
	}
	return Preprocess(t), true, nil
}

// Preprocess walks a freshly-parsed term and rewrites every surface variable —
// a symbol spelled "?name" — into the engine's internal variable representation
// (? name). Everything else is returned unchanged (Constants and Pairs are
// immutable, so sharing structure with the input is safe).
func Preprocess(t engine.Term) engine.Term {
	if sym, ok := t.(engine.Constant); ok {
		if name, isSym := sym.SymbolName(); isSym && isSurfaceVar(name) {
			return engine.MakeVar(name[1:])
		}
		return t
	}
	p, ok := t.(*engine.Pair)
	if !ok {
		return t
	}
	return engine.Cons(Preprocess(p.Head), Preprocess(p.Tail))
}

func isSurfaceVar(name string) bool {
	return len(name) >= 2 && name[0] == '?'
}

// ContractQuestionMark is Preprocess's inverse for display: it rewrites every
// internal variable (? name) back to "?name", and every rule-generated
// variable (? gen name) back to "?name-gen" — the generation id is kept in
// the surface spelling precisely so that two distinct rule applications that
// both leave a variable named the same thing unbound in the same answer stay
// visibly distinguishable — leaving everything else unchanged.
func ContractQuestionMark(t engine.Term) engine.Term {
	if engine.IsVar(t) {
		name := engine.VarName(t)
		if gen, ok := engine.VarGen(t); ok && gen != 0 {
			return engine.Sym(fmt.Sprintf("?%s-%d", name, gen))
		}
		return engine.Sym(fmt.Sprintf("?%s", name))
	}
	p, ok := t.(*engine.Pair)
	if !ok {
		return t
	}
	return engine.Cons(ContractQuestionMark(p.Head), ContractQuestionMark(p.Tail))
}
