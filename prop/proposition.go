package prop

import (
	"fmt"

	"logos/provenance"
)

// Proposition is the tagged sum of logical forms. isProposition is
// unexported so the set of implementations is closed to this package: the
// dozens of rule methods the distilled spec describes are implemented as
// free functions in package rules that exhaustively switch on the
// concrete type, not as methods with hidden dynamic dispatch (see
// DESIGN.md, "method-heavy fluent API").
type Proposition interface {
	isProposition()
	fmt.Stringer
	// Equal compares logical shape only; Proven/Inference/IsAssumption/
	// Frame are never part of identity.
	Equal(Proposition) bool
	Proven() bool
	Inference() provenance.StepRef
	IsAssumption() bool
	Frame() int

	// baseValue and setBase are the seam every concrete type implements so
	// that Mint/AsAssumption/Invalidate can be written once here instead
	// of once per rule in package rules.
	baseValue() base
	setBase(base) Proposition
}

// Mint returns a copy of p with Proven set to true, tagged with the given
// provenance StepRef and owning frame. It is the only way outside of
// Assume to produce a proven proposition, and is called by package rules,
// package prover, package oracle, and propctx.Stack.Close.
func Mint(p Proposition, ref provenance.StepRef, frame int) Proposition {
	return p.setBase(p.baseValue().withMint(ref, frame))
}

// AsAssumption returns a copy of p marked Proven with IsAssumption set,
// owned by the given frame and justified by the given provenance step.
// Used only by the assumption context stack.
func AsAssumption(p Proposition, ref provenance.StepRef, frame int) Proposition {
	return p.setBase(p.baseValue().withAssumption(ref, frame))
}

// Invalidate returns a copy of p with Proven, Inference, IsAssumption, and
// Frame all cleared. propctx.Stack.Close does not call it; a proposition
// from a closed frame is rejected by package rules' frame-liveness check
// instead.
func Invalidate(p Proposition) Proposition {
	return p.setBase(p.baseValue().invalidated())
}
