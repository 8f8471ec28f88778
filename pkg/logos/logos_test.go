package logos

import (
	"context"
	"errors"
	"testing"

	"logos/kernelerr"
)

func TestScenario1TwoModusPonens(t *testing.T) {
	p := NewAtom("P")
	q := NewAtom("Q")
	r := NewAtom("R")
	s := NewAtom("S")
	premises := []Proposition{
		p,
		NewImplies(p, NewOr(q, r)),
		NewImplies(NewOr(q, r), NewNot(s)),
	}
	goal := NewNot(s)
	result, _, err := Prove(context.Background(), premises, goal, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestScenario2ByCasesWithExFalso(t *testing.T) {
	a := NewAtom("A")
	b := NewAtom("B")
	premises := []Proposition{NewOr(a, b), NewNot(b)}
	result, _, err := Prove(context.Background(), premises, a, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(a) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, a)
	}
}

func TestScenario3CaseAnalysisOverDisjunctiveGoal(t *testing.T) {
	b := NewAtom("B")
	c := NewAtom("C")
	f := NewAtom("F")
	g := NewAtom("G")
	premises := []Proposition{
		NewImplies(c, g),
		NewImplies(b, f),
		NewOr(b, c),
	}
	goal := NewOr(f, g)
	result, _, err := Prove(context.Background(), premises, goal, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestScenario4ConjunctionOfNegations(t *testing.T) {
	p := NewAtom("P")
	q := NewAtom("Q")
	r := NewAtom("R")
	s := NewAtom("S")
	tt := NewAtom("T")
	premises := []Proposition{
		NewAnd(NewImplies(p, q), NewImplies(r, s)),
		NewImplies(NewOr(q, s), tt),
		NewOr(p, r),
		NewNot(tt),
	}
	goal := NewAnd(NewNot(p), NewNot(r))
	result, _, err := Prove(context.Background(), premises, goal, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestScenario5NestedImplicationIntroduction(t *testing.T) {
	a := NewAtom("A")
	b := NewAtom("B")
	goal := NewImplies(b, NewImplies(NewNot(a), b))
	result, _, err := Prove(context.Background(), nil, goal, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestScenario6DeMorganClassicalVersusNonClassical(t *testing.T) {
	p := NewAtom("P")
	q := NewAtom("Q")
	r := NewAtom("R")
	s := NewAtom("S")
	premises := []Proposition{NewNot(NewAnd(p, NewOr(q, r, s)))}
	goal := NewOr(NewNot(p), NewAnd(NewNot(q), NewNot(r), NewNot(s)))

	classical := DefaultConfig()
	classical.UseClassicalLogic = true
	if _, _, err := Prove(context.Background(), premises, goal, classical); err != nil {
		t.Errorf("expected classical proof to succeed, got %v", err)
	}

	nonClassical := classical
	nonClassical.UseClassicalLogic = false
	_, _, err := Prove(context.Background(), premises, goal, nonClassical)
	if !errors.Is(err, kernelerr.NoRule("")) {
		t.Errorf("expected NoRuleApplies in non-classical mode, got %v", err)
	}
}

func TestScenario7DoubleNegationElimIsClassicalOnly(t *testing.T) {
	p := NewAtom("P")
	premises := []Proposition{NewNot(NewNot(p))}

	classical := DefaultConfig()
	classical.UseClassicalLogic = true
	result, _, err := Prove(context.Background(), premises, p, classical)
	if err != nil {
		t.Fatalf("expected classical proof to succeed, got %v", err)
	}
	if !result.Equal(p) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, p)
	}

	nonClassical := classical
	nonClassical.UseClassicalLogic = false
	_, _, err = Prove(context.Background(), premises, p, nonClassical)
	if !errors.Is(err, kernelerr.NoRule("")) {
		t.Errorf("expected NoRuleApplies in non-classical mode, got %v", err)
	}
}

func TestOracleBackedPrimeFeedsProver(t *testing.T) {
	goal := NewPrime(NewNumber(7))
	provenSeven, _, err := ByInspection(context.Background(), goal)
	if err != nil {
		t.Fatalf("ByInspection: %v", err)
	}

	result, _, err := Prove(context.Background(), []Proposition{provenSeven}, goal, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestRenderProofProducesNonEmptyTree(t *testing.T) {
	a := NewAtom("A")
	result, log, err := Prove(context.Background(), []Proposition{a}, a, DefaultConfig())
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	rendered := RenderProof(result, log)
	if rendered == "" {
		t.Errorf("expected a non-empty rendered proof")
	}
}
