package engine

// RenameRule alpha-renames every variable in r, conclusion and body alike, to carry
// a single fresh generation id drawn from db's monotonic counter. Two occurrences
// of the same variable name (in the conclusion, in the body, or split across both)
// are rewritten to the same fresh variable; two separate calls to RenameRule —
// including nested recursive ones during evaluation of a recursive rule — never
// produce a variable that compares equal to one from the other call, which is what
// keeps rule applications hygienic.
func RenameRule(db *Database, r *Rule) *Rule {
	gen := db.nextGen()
	seen := make(map[string]Term)
	rename := func(t Term) Term { return renameTerm(t, gen, seen) }
	return &Rule{
		Conclusion: rename(r.Conclusion),
		Body:       rename(r.Body),
	}
}

func renameTerm(t Term, gen int, seen map[string]Term) Term {
	if IsVar(t) {
		name := VarName(t)
		if fresh, ok := seen[name]; ok {
			return fresh
		}
		fresh := MakeGenVar(gen, name)
		seen[name] = fresh
		return fresh
	}
	p, ok := t.(*Pair)
	if !ok {
		return t
	}
	return Cons(renameTerm(p.Head, gen, seen), renameTerm(p.Tail, gen, seen))
}
