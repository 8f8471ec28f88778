package prop

import (
	"testing"

	"logos/provenance"
)

func TestMintDoesNotAffectEquality(t *testing.T) {
	a := NewAtom("A")
	minted := Mint(a, provenance.StepRef(1), 0)
	if !minted.Equal(a) {
		t.Errorf("minting should not change logical shape")
	}
	if a.Proven() {
		t.Errorf("Mint should not mutate its argument")
	}
	if !minted.Proven() {
		t.Errorf("expected minted copy to be proven")
	}
}

func TestAsAssumptionSetsFlag(t *testing.T) {
	a := NewAtom("A")
	assumed := AsAssumption(a, provenance.StepRef(1), 2)
	if !assumed.Proven() || !assumed.IsAssumption() {
		t.Errorf("expected assumed proposition to be proven and flagged as an assumption")
	}
	if assumed.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", assumed.Frame())
	}
}

func TestInvalidateClearsProvenance(t *testing.T) {
	a := NewAtom("A")
	minted := Mint(a, provenance.StepRef(1), 0)
	invalid := Invalidate(minted)
	if invalid.Proven() || invalid.IsAssumption() {
		t.Errorf("expected Invalidate to clear proven/assumption bookkeeping")
	}
	if !invalid.Equal(a) {
		t.Errorf("Invalidate should preserve logical shape")
	}
}

func TestNotDoubleWrap(t *testing.T) {
	a := NewAtom("A")
	nn := NewNot(NewNot(a))
	n := nn
	inner, ok := n.Arg.(Not)
	if !ok {
		t.Fatalf("expected nested Not, got %T", n.Arg)
	}
	if !inner.Arg.Equal(a) {
		t.Errorf("expected innermost argument to equal A")
	}
}

func TestJunctionEqualityIgnoresArgumentOrder(t *testing.T) {
	a, b := NewAtom("A"), NewAtom("B")
	and1 := NewAnd(a, b)
	and2 := NewAnd(b, a)
	if !and1.Equal(and2) {
		t.Errorf("conjunctions with swapped argument order should still be structurally equal")
	}
	if !and1.Equal(NewAnd(a, b)) {
		t.Errorf("expected identical conjunctions to be equal")
	}
}

func TestJunctionEqualityRequiresMatchingMultiplicity(t *testing.T) {
	a, b := NewAtom("A"), NewAtom("B")
	if NewAnd(a, a).Equal(NewAnd(a, b)) {
		t.Errorf("A /\\ A should not equal A /\\ B: duplicated arguments need duplicated matches")
	}
	if !NewAnd(a, a).Equal(NewAnd(a, a)) {
		t.Errorf("expected A /\\ A to equal itself")
	}
}

func TestContradictionIsItsOwnShape(t *testing.T) {
	c1 := NewContradiction()
	c2 := NewContradiction()
	if !c1.Equal(c2) {
		t.Errorf("expected all Contradiction values to be structurally equal")
	}
	if c1.Equal(NewAtom("Contradiction")) {
		t.Errorf("Contradiction should not equal an atom of the same name")
	}
}
