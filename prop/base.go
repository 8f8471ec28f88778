// Package prop implements the proposition AST: atoms and logical
// connectives, plus the proven/inference/is_assumption bookkeeping every
// kernel rule and the prover depend on.
package prop

import "logos/provenance"

// base carries the bookkeeping common to every Proposition variant.
// Proven, Inference, IsAssumption, and Frame are deliberately excluded
// from structural equality: two propositions are equal iff they have the
// same logical shape, regardless of how (or whether) either has been
// proven.
type base struct {
	proven       bool
	inference    provenance.StepRef
	isAssumption bool
	frame        int
}

func (b base) Proven() bool                    { return b.proven }
func (b base) Inference() provenance.StepRef    { return b.inference }
func (b base) IsAssumption() bool               { return b.isAssumption }
func (b base) Frame() int                       { return b.frame }
func (b base) withMint(ref provenance.StepRef, frame int) base {
	return base{proven: true, inference: ref, frame: frame}
}
func (b base) withAssumption(ref provenance.StepRef, frame int) base {
	return base{proven: true, isAssumption: true, inference: ref, frame: frame}
}
func (b base) invalidated() base {
	return base{}
}
