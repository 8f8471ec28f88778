package rules

import (
	"errors"
	"testing"

	"logos/kernelerr"
	"logos/prop"
	"logos/propctx"
	"logos/term"
)

func provenAtom(stack *propctx.Stack, name string) prop.Proposition {
	a := prop.NewAtom(name)
	ref := stack.Log().Append("axiom", nil, a.String(), false)
	return prop.Mint(a, ref, int(stack.CurrentFrame()))
}

func TestModusPonens(t *testing.T) {
	stack := propctx.New()
	a := provenAtom(stack, "A")
	b := prop.NewAtom("B")
	impl := prop.Mint(prop.NewImplies(a, b), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := ModusPonens(stack, a, impl)
	if err != nil {
		t.Fatalf("ModusPonens: %v", err)
	}
	if !result.Equal(b) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, b)
	}
}

func TestModusPonensWrongAntecedent(t *testing.T) {
	stack := propctx.New()
	a := provenAtom(stack, "A")
	impl := prop.Mint(prop.NewImplies(prop.NewAtom("Other"), prop.NewAtom("B")), stack.Log().Append("axiom", nil, "", false), 0)

	_, err := ModusPonens(stack, a, impl)
	if !errors.Is(err, kernelerr.NotApplicable("", "")) {
		t.Fatalf("expected RuleNotApplicable, got %v", err)
	}
}

func TestModusTollens(t *testing.T) {
	stack := propctx.New()
	a := prop.NewAtom("A")
	b := prop.NewAtom("B")
	impl := prop.Mint(prop.NewImplies(a, b), stack.Log().Append("axiom", nil, "", false), 0)
	selfNotB := prop.Mint(prop.NewNot(b), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := ModusTollens(stack, selfNotB, impl)
	if err != nil {
		t.Fatalf("ModusTollens: %v", err)
	}
	want := prop.NewNot(a)
	if !result.Equal(want) {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestAndRequiresAllProven(t *testing.T) {
	stack := propctx.New()
	a := provenAtom(stack, "A")
	b := prop.NewAtom("B") // not proven
	if _, err := And(stack, a, b); err == nil {
		t.Fatalf("expected error, And should reject unproven conjunct")
	}
}

func TestByCases(t *testing.T) {
	stack := propctx.New()
	a, b := prop.NewAtom("A"), prop.NewAtom("B")
	c := prop.NewAtom("C")
	disj := prop.Mint(prop.NewOr(a, b), stack.Log().Append("axiom", nil, "", false), 0)
	implA := prop.Mint(prop.NewImplies(a, c), stack.Log().Append("axiom", nil, "", false), 0)
	implB := prop.Mint(prop.NewImplies(b, c), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := ByCases(stack, disj, implA, implB)
	if err != nil {
		t.Fatalf("ByCases: %v", err)
	}
	if !result.Equal(c) {
		t.Errorf("got %s, want %s", result, c)
	}
}

func TestResolve(t *testing.T) {
	stack := propctx.New()
	a, b, c := prop.NewAtom("A"), prop.NewAtom("B"), prop.NewAtom("C")
	ab := prop.Mint(prop.NewOr(a, b), stack.Log().Append("axiom", nil, "", false), 0)
	nac := prop.Mint(prop.NewOr(prop.NewNot(a), c), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := Resolve(stack, ab, nac)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := prop.NewOr(b, c)
	if !result.Equal(want) {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestDeMorganPushesNegationIn(t *testing.T) {
	stack := propctx.New()
	a, b := prop.NewAtom("A"), prop.NewAtom("B")
	p := prop.Mint(prop.NewNot(prop.NewAnd(a, b)), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := DeMorgan(stack, p)
	if err != nil {
		t.Fatalf("DeMorgan: %v", err)
	}
	want := prop.NewOr(prop.NewNot(a), prop.NewNot(b))
	if !result.Equal(want) {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestDoubleNegationElim(t *testing.T) {
	stack := propctx.New()
	a := prop.NewAtom("A")
	p := prop.Mint(prop.NewNot(prop.NewNot(a)), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := DoubleNegationElim(stack, p)
	if err != nil {
		t.Fatalf("DoubleNegationElim: %v", err)
	}
	if !result.Equal(a) {
		t.Errorf("got %s, want %s", result, a)
	}
}

func TestUniversalInstantiation(t *testing.T) {
	stack := propctx.New()
	v := term.NewVariable("x", term.Attributes{})
	body := prop.NewAtom("P", v)
	forall := prop.Mint(prop.NewForall(v, body), stack.Log().Append("axiom", nil, "", false), 0)

	c := term.NewConstant("c")
	result, err := UniversalInstantiation(stack, forall, c)
	if err != nil {
		t.Fatalf("UniversalInstantiation: %v", err)
	}
	want := prop.NewAtom("P", c)
	if !result.Equal(want) {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestExistentialIntroduction(t *testing.T) {
	stack := propctx.New()
	v := term.NewVariable("x", term.Attributes{})
	c := term.NewConstant("c")
	witness := prop.Mint(prop.NewAtom("P", c), stack.Log().Append("axiom", nil, "", false), 0)
	target := prop.NewExists(v, prop.NewAtom("P", v))

	result, err := ExistentialIntroduction(stack, witness, target)
	if err != nil {
		t.Fatalf("ExistentialIntroduction: %v", err)
	}
	if !result.Equal(target) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, target)
	}
}

func TestExistentialElimination(t *testing.T) {
	stack := propctx.New()
	v := term.NewVariable("x", term.Attributes{})
	ex := prop.Mint(prop.NewExists(v, prop.NewAtom("P", v)), stack.Log().Append("axiom", nil, "", false), 0)

	fresh, assumed, err := ExistentialElimination(stack, ex, "w")
	if err != nil {
		t.Fatalf("ExistentialElimination: %v", err)
	}
	want := prop.NewAtom("P", fresh)
	if !assumed.Equal(want) {
		t.Errorf("got %s, want %s", assumed, want)
	}
	if _, err := stack.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestSubstitute(t *testing.T) {
	stack := propctx.New()
	a, b := term.NewConstant("a"), term.NewConstant("b")
	self := prop.Mint(prop.NewAtom("P", a), stack.Log().Append("axiom", nil, "", false), 0)
	eq := prop.Mint(prop.NewEquals(a, b), stack.Log().Append("axiom", nil, "", false), 0)

	result, err := Substitute(stack, SideLeftToRight, self, eq)
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	want := prop.NewAtom("P", b)
	if !result.Equal(want) {
		t.Errorf("got %s, want %s", result, want)
	}
}

func TestContradictsAndExFalso(t *testing.T) {
	stack := propctx.New()
	a := prop.NewAtom("A")
	p := prop.Mint(a, stack.Log().Append("axiom", nil, "", false), 0)
	notp := prop.Mint(prop.NewNot(a), stack.Log().Append("axiom", nil, "", false), 0)

	contra, err := Contradicts(stack, p, notp)
	if err != nil {
		t.Fatalf("Contradicts: %v", err)
	}
	if _, ok := contra.(prop.Contradiction); !ok {
		t.Fatalf("expected Contradiction, got %s", contra)
	}

	target := prop.NewAtom("AnythingAtAll")
	result, err := ExFalso(stack, contra, target)
	if err != nil {
		t.Fatalf("ExFalso: %v", err)
	}
	if !result.Equal(target) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, target)
	}
}

// A proposition minted inside a frame but never Concluded before that
// frame closes must stop counting as proven: its owning frame is no
// longer live, and checkProven rejects it wherever it resurfaces.
func TestRuleRejectsPropositionFromClosedFrame(t *testing.T) {
	stack := propctx.New()
	stack.Open()

	a := prop.NewAtom("A")
	stray := prop.Mint(a, stack.Log().Append("axiom", nil, a.String(), false), int(stack.CurrentFrame()))
	// stray is never passed to Conclude, so Close never rewraps it --
	// but it is still Proven()==true on its own terms.

	if _, err := stack.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b := prop.NewAtom("B")
	impl := prop.Mint(prop.NewImplies(a, b), stack.Log().Append("axiom", nil, "", false), 0)

	if _, err := ModusPonens(stack, stray, impl); err == nil {
		t.Errorf("expected ModusPonens to reject a proposition minted in a closed frame")
	}
}
