package propctx

import (
	"testing"

	"logos/prop"
	"logos/term"
)

func TestOpenCloseDischargesAssumption(t *testing.T) {
	s := New()
	s.Open()

	a := prop.NewAtom("A")
	assumed, err := s.Assume(a)
	if err != nil {
		t.Fatalf("Assume: %v", err)
	}
	if !assumed.Proven() || !assumed.IsAssumption() {
		t.Fatalf("assumed proposition should be Proven and IsAssumption")
	}

	b := prop.NewAtom("B")
	concluded := prop.Mint(b, s.Log().Append("axiom", nil, b.String(), false), int(s.CurrentFrame()))
	s.Conclude(concluded)

	results, err := s.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 discharged conclusion, got %d", len(results))
	}
	want := prop.NewImplies(a, b)
	if !results[0].Equal(want) {
		t.Errorf("discharged conclusion = %s, want %s", results[0], want)
	}
	if !results[0].Proven() {
		t.Errorf("discharged conclusion should be Proven")
	}
}

func TestSessionIDIsUniquePerStack(t *testing.T) {
	a := New()
	b := New()
	if a.SessionID() == "" {
		t.Fatalf("expected a non-empty session id")
	}
	if a.SessionID() == b.SessionID() {
		t.Errorf("expected distinct stacks to get distinct session ids")
	}
}

func TestCloseWithoutOpenIsMisuse(t *testing.T) {
	s := New()
	if _, err := s.Close(); err == nil {
		t.Fatalf("expected error closing the root frame")
	}
}

func TestDeclareVariableWrapsForall(t *testing.T) {
	s := New()
	s.Open()
	v := s.DeclareVariable("x", term.Attributes{})

	body := prop.NewAtom("P", v)
	concluded := prop.Mint(body, s.Log().Append("axiom", nil, body.String(), false), int(s.CurrentFrame()))
	s.Conclude(concluded)

	results, err := s.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	want := prop.NewForall(v, body)
	if !results[0].Equal(want) {
		t.Errorf("discharged conclusion = %s, want %s", results[0], want)
	}
}

func TestConcludeIgnoresUnprovenProposition(t *testing.T) {
	s := New()
	s.Open()
	s.Conclude(prop.NewAtom("Unproven"))
	results, err := s.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no discharged conclusions, got %d", len(results))
	}
}

func TestNestedFramesDischargeInnermostFirst(t *testing.T) {
	s := New()
	s.Open()
	a := prop.NewAtom("A")
	sAssumed, _ := s.Assume(a)
	_ = sAssumed

	s.Open()
	b := prop.NewAtom("B")
	bAssumed, _ := s.Assume(b)

	c := prop.NewAtom("C")
	concluded := prop.Mint(c, s.Log().Append("axiom", nil, c.String(), false), int(s.CurrentFrame()))
	s.Conclude(concluded)

	innerResults, err := s.Close()
	if err != nil {
		t.Fatalf("inner Close: %v", err)
	}
	want := prop.NewImplies(b, c)
	if !innerResults[0].Equal(want) {
		t.Fatalf("inner discharge = %s, want %s", innerResults[0], want)
	}
	_ = bAssumed

	s.Conclude(innerResults[0])
	outerResults, err := s.Close()
	if err != nil {
		t.Fatalf("outer Close: %v", err)
	}
	wantOuter := prop.NewImplies(a, prop.NewImplies(b, c))
	if !outerResults[0].Equal(wantOuter) {
		t.Errorf("outer discharge = %s, want %s", outerResults[0], wantOuter)
	}
}
