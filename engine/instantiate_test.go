package engine

import "testing"

func TestInstantiateResolvesChainedBindings(t *testing.T) {
	x, y := MakeVar("x"), MakeVar("y")
	frame := EmptyFrame().Extend(x, y).Extend(y, Sym("a"))
	result, err := Instantiate(x, frame, DisplayUnbound)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(result, Sym("a")) {
		t.Fatalf("expected ?x to resolve through ?y to a, got %v", result)
	}
}

func TestInstantiateDisplayUnboundLeavesVariable(t *testing.T) {
	x := MakeVar("x")
	result, err := Instantiate(x, EmptyFrame(), DisplayUnbound)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(result, x) {
		t.Fatal("expected an unbound variable to be left as itself under DisplayUnbound")
	}
}

func TestInstantiateRejectUnboundIsFatal(t *testing.T) {
	x := MakeVar("x")
	_, err := Instantiate(x, EmptyFrame(), RejectUnbound)
	if err != ErrUnboundInPredicate {
		t.Fatalf("expected ErrUnboundInPredicate, got %v", err)
	}
}

func TestInstantiateWalksCompoundTerms(t *testing.T) {
	x := MakeVar("x")
	frame := EmptyFrame().Extend(x, Num(42))
	result, err := Instantiate(List(Sym("f"), x, Sym("g")), frame, DisplayUnbound)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := List(Sym("f"), Num(42), Sym("g"))
	if !Equal(result, want) {
		t.Fatalf("expected %v, got %v", want, result)
	}
}
