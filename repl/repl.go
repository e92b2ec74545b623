// Package repl is the driver loop: it reads phrases from an input stream,
// dispatches each one to either the database (for assert!) or the evaluator
// (for a query), and prints the outcome — resuming the read loop after any
// error, per the external-interface contract in spec.md §6.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"deductive/engine"
	"deductive/syntax"
)

const prompt = "?- "

// Run reads phrases from in until EOF, writing results and errors to out. file
// is used only to decide whether in is a terminal (for prompting); pass nil
// when in isn't backed by an *os.File (e.g. a string source in a test).
func Run(db *engine.Database, predicates *engine.Predicates, in io.Reader, out io.Writer, file fileDescriptor) error {
	ev := engine.NewEvaluator(db, predicates)
	r := bufio.NewReader(in)
	interactive := file != nil && isatty.IsTerminal(file.Fd())

	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		term, ok, err := syntax.ReadOne(r)
		if err != nil {
			fmt.Fprintln(out, "syntax error:", err)
			continue
		}
		if !ok {
			return nil
		}
		dispatch(ev, term, out)
	}
}

// fileDescriptor is the narrow slice of *os.File that Run needs, kept as its
// own type so tests can drive Run from an io.Reader with no *os.File at all.
type fileDescriptor interface {
	Fd() uintptr
}

func dispatch(ev *engine.Evaluator, term engine.Term, out io.Writer) {
	if call, ok := asUnary(term, "assert!"); ok {
		ev.Database().Add(call)
		fmt.Fprintln(out, "ok.")
		return
	}
	if isNullary(term, ":stats") {
		printStats(ev.Database(), out)
		return
	}
	runQuery(ev, term, out)
}

func asUnary(term engine.Term, tag string) (engine.Term, bool) {
	p, ok := term.(*engine.Pair)
	if !ok {
		return nil, false
	}
	sym, isSym := p.Head.(engine.Constant)
	if !isSym {
		return nil, false
	}
	name, isSym := sym.SymbolName()
	if !isSym || name != tag {
		return nil, false
	}
	args := engine.ListToSlice(p.Tail)
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}

func isNullary(term engine.Term, tag string) bool {
	p, ok := term.(*engine.Pair)
	if !ok {
		return false
	}
	sym, isSym := p.Head.(engine.Constant)
	if !isSym {
		return false
	}
	name, isSym := sym.SymbolName()
	return isSym && name == tag && len(engine.ListToSlice(p.Tail)) == 0
}

func runQuery(ev *engine.Evaluator, term engine.Term, out io.Writer) {
	start := time.Now()
	frames, err := ev.Qeval(term, engine.EmptyFrame())
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	frame, _, ok, err := engine.NextFrame(frames)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	if !ok {
		fmt.Fprintln(out, "no.")
		return
	}
	printBindings(term, frame, out)
	fmt.Fprintf(out, "yes. (%s)\n", humanize.RelTime(start, time.Now(), "", ""))
}

// printBindings prints one line per variable occurring in the query term, in
// display syntax, with its binding under frame instantiated all the way
// through (DisplayUnbound leaves a variable that never got bound as itself,
// which ContractQuestionMark then renders back to its surface name).
func printBindings(query engine.Term, frame engine.Frame, out io.Writer) {
	seen := map[string]bool{}
	for _, v := range collectVars(query) {
		name := engine.VarName(v)
		if seen[name] {
			continue
		}
		seen[name] = true
		val, err := engine.Instantiate(v, frame, engine.DisplayUnbound)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", name, syntax.ContractQuestionMark(val).String())
	}
}

func collectVars(t engine.Term) []engine.Term {
	var out []engine.Term
	var walk func(engine.Term)
	walk = func(t engine.Term) {
		if engine.IsVar(t) {
			out = append(out, t)
			return
		}
		if p, ok := t.(*engine.Pair); ok {
			walk(p.Head)
			walk(p.Tail)
		}
	}
	walk(t)
	return out
}

func printStats(db *engine.Database, out io.Writer) {
	nFacts := engine.Count(db.Assertions())
	nRules := engine.Count(db.Rules())
	fmt.Fprintf(out, "database %s: %s fact(s), %s rule(s)\n",
		db.ID(), humanize.Comma(int64(nFacts)), humanize.Comma(int64(nRules)))
}
