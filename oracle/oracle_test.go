package oracle

import (
	"context"
	"errors"
	"testing"

	"logos/kernelerr"
	"logos/prop"
	"logos/term"
)

func TestByInspectionPrime(t *testing.T) {
	goal := prop.NewPrime(term.NewNumber(7))
	result, log, err := ByInspection(context.Background(), goal)
	if err != nil {
		t.Fatalf("ByInspection: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
	if log.Len() != 1 {
		t.Errorf("expected a single provenance step, got %d", log.Len())
	}
}

func TestByInspectionRefusesComposite(t *testing.T) {
	goal := prop.NewPrime(term.NewNumber(8))
	_, _, err := ByInspection(context.Background(), goal)
	if !errors.Is(err, kernelerr.Refused("", "")) {
		t.Errorf("expected OracleRefused, got %v", err)
	}
}

func TestByInspectionNegatedPrime(t *testing.T) {
	goal := prop.NewNot(prop.NewPrime(term.NewNumber(9)))
	result, _, err := ByInspection(context.Background(), goal)
	if err != nil {
		t.Fatalf("ByInspection: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestByInspectionDivides(t *testing.T) {
	goal := prop.NewDivides(term.NewNumber(3), term.NewNumber(9))
	result, _, err := ByInspection(context.Background(), goal)
	if err != nil {
		t.Fatalf("ByInspection: %v", err)
	}
	if !result.Equal(goal) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, goal)
	}
}

func TestByEvalExactArithmetic(t *testing.T) {
	lhs := term.NewExpr(term.Add, term.NewNumber(2), term.NewNumber(3))
	eq := prop.NewEquals(lhs, term.NewNumber(5))
	result, _, err := ByEval(context.Background(), eq)
	if err != nil {
		t.Fatalf("ByEval: %v", err)
	}
	if !result.Equal(eq) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, eq)
	}
}

func TestByEvalRefusesUnequalSides(t *testing.T) {
	eq := prop.NewEquals(term.NewNumber(2), term.NewNumber(3))
	_, _, err := ByEval(context.Background(), eq)
	if !errors.Is(err, kernelerr.Refused("", "")) {
		t.Errorf("expected OracleRefused, got %v", err)
	}
}

func TestBySimplificationHandlesSymbolicIdentity(t *testing.T) {
	x := term.NewVariable("x", term.Attributes{})
	lhs := term.NewExpr(term.Add, x, term.NewExpr(term.Neg, x))
	eq := prop.NewEquals(lhs, term.NewNumber(0))
	result, _, err := BySimplification(context.Background(), eq)
	if err != nil {
		t.Fatalf("BySimplification: %v", err)
	}
	if !result.Equal(eq) || !result.Proven() {
		t.Errorf("got %s, want proven %s", result, eq)
	}
}

func TestBySimplificationMultiplyByZero(t *testing.T) {
	x := term.NewVariable("x", term.Attributes{})
	lhs := term.NewExpr(term.Mul, x, term.NewNumber(0))
	eq := prop.NewEquals(lhs, term.NewNumber(0))
	result, _, err := BySimplification(context.Background(), eq)
	if err != nil {
		t.Fatalf("BySimplification: %v", err)
	}
	if !result.Proven() {
		t.Errorf("expected %s to be proven", eq)
	}
}
