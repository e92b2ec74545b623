package engine

import "testing"

func TestUnifySymmetric(t *testing.T) {
	x := MakeVar("x")
	y := MakeVar("y")
	p1 := List(Sym("pair"), x, Sym("a"))
	p2 := List(Sym("pair"), Sym("b"), y)

	f1 := Unify(p1, p2, EmptyFrame())
	f2 := Unify(p2, p1, EmptyFrame())
	if f1.IsFailed() || f2.IsFailed() {
		t.Fatal("expected both orderings to succeed")
	}
	xv, _ := f1.Lookup(x)
	yv, _ := f1.Lookup(y)
	if !Equal(xv, Sym("b")) || !Equal(yv, Sym("a")) {
		t.Fatalf("unexpected bindings: x=%v y=%v", xv, yv)
	}
}

func TestUnifyIdempotentOnGround(t *testing.T) {
	term := List(Sym("f"), Sym("a"), Num(1))
	result := Unify(term, term, EmptyFrame())
	if result.IsFailed() {
		t.Fatal("a ground term must unify with itself")
	}
	if len(result.Bindings()) != 0 {
		t.Fatal("unifying a ground term with itself must not add bindings")
	}
}

func TestUnifyChasesExistingBindings(t *testing.T) {
	x := MakeVar("x")
	frame := EmptyFrame().Extend(x, Sym("a"))
	result := Unify(x, Sym("a"), frame)
	if result.IsFailed() {
		t.Fatal("unifying a bound variable with its own value must succeed without rebinding")
	}
	if Unify(x, Sym("b"), frame).IsFailed() != true {
		t.Fatal("unifying a bound variable with a conflicting value must fail")
	}
}

func TestUnifyOccursCheckRejectsSelfReference(t *testing.T) {
	x := MakeVar("x")
	cyclic := List(Sym("f"), x)
	if !Unify(x, cyclic, EmptyFrame()).IsFailed() {
		t.Fatal("?x = (f ?x) has no finite solution and must be rejected by the occurs-check")
	}
}

func TestUnifyOccursCheckThroughExistingBinding(t *testing.T) {
	x := MakeVar("x")
	y := MakeVar("y")
	frame := EmptyFrame().Extend(y, x)
	cyclic := List(Sym("f"), y)
	if !Unify(x, cyclic, frame).IsFailed() {
		t.Fatal("the occurs-check must chase through an existing ?y = ?x binding")
	}
}

func TestUnifyTwoUnboundVariables(t *testing.T) {
	x := MakeVar("x")
	y := MakeVar("y")
	result := Unify(x, y, EmptyFrame())
	if result.IsFailed() {
		t.Fatal("two unbound variables must unify")
	}
}
