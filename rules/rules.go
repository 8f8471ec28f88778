// Package rules implements the checked inference-rule primitives of the
// proof kernel: free functions, not methods, each taking already-proven
// Propositions and a *propctx.Stack, each verifying its own structural
// preconditions before minting a result. No rule function mutates its
// inputs; every successful application appends one Step to the Stack's
// provenance log.
package rules

import (
	"logos/kernelerr"
	"logos/prop"
	"logos/propctx"
	"logos/provenance"
	"logos/subst"
	"logos/term"
)

func mint(stack *propctx.Stack, rule string, inputs []provenance.StepRef, result prop.Proposition) prop.Proposition {
	ref := stack.Log().Append(rule, inputs, result.String(), false)
	return prop.Mint(result, ref, int(stack.CurrentFrame()))
}

// checkProven rejects p unless it is both marked Proven and still owned
// by a frame that is live on stack: SPEC_FULL.md's invalidate-on-close
// invariant means a proposition minted inside a frame that has since
// closed must stop counting as proven everywhere, not just be rewrapped
// if its author happened to call Conclude before Close. Because
// Proposition is an immutable Go value, the kernel cannot reach into
// copies already held by callers and flip a bit on them; instead every
// rule re-checks frame liveness against the stack at the moment it is
// used, which has the identical observable effect (a stale proposition
// is rejected wherever it resurfaces) without requiring a live registry
// of every minted value.
func checkProven(stack *propctx.Stack, rule string, p prop.Proposition, label string) error {
	if !p.Proven() {
		return kernelerr.Unproven(rule, label+" is not proven")
	}
	if !stack.FrameLive(p.Frame()) {
		return kernelerr.Unproven(rule, label+" depends on a closed assumption frame")
	}
	return nil
}

// ModusPonens derives B from A and A -> B.
func ModusPonens(stack *propctx.Stack, self, impl prop.Proposition) (prop.Proposition, error) {
	const rule = "modus_ponens"
	if err := checkProven(stack, rule, self, "self"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, impl, "impl"); err != nil {
		return nil, err
	}
	i, ok := impl.(prop.Implies)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "impl is not an implication")
	}
	if !i.Antecedent.Equal(self) {
		return nil, kernelerr.NotApplicable(rule, "self does not match antecedent")
	}
	return mint(stack, rule, []provenance.StepRef{self.Inference(), impl.Inference()}, i.Consequent), nil
}

// ModusTollens derives !A from !B and A -> B.
func ModusTollens(stack *propctx.Stack, self, impl prop.Proposition) (prop.Proposition, error) {
	const rule = "modus_tollens"
	if err := checkProven(stack, rule, self, "self"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, impl, "impl"); err != nil {
		return nil, err
	}
	notB, ok := self.(prop.Not)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "self is not a negation")
	}
	i, ok := impl.(prop.Implies)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "impl is not an implication")
	}
	if !i.Consequent.Equal(notB.Arg) {
		return nil, kernelerr.NotApplicable(rule, "self does not negate the consequent")
	}
	result := prop.NewNot(i.Antecedent)
	return mint(stack, rule, []provenance.StepRef{self.Inference(), impl.Inference()}, result), nil
}

// And derives p1 /\ p2 /\ ... from each conjunct.
func And(stack *propctx.Stack, conjuncts ...prop.Proposition) (prop.Proposition, error) {
	const rule = "and"
	if len(conjuncts) < 2 {
		return nil, kernelerr.NotApplicable(rule, "need at least two conjuncts")
	}
	inputs := make([]provenance.StepRef, len(conjuncts))
	for i, c := range conjuncts {
		if err := checkProven(stack, rule, c, "conjunct"); err != nil {
			return nil, err
		}
		inputs[i] = c.Inference()
	}
	return mint(stack, rule, inputs, prop.NewAnd(conjuncts...)), nil
}

// Or introduces self \/ d1 \/ ... from a proven self.
func Or(stack *propctx.Stack, self prop.Proposition, disjuncts ...prop.Proposition) (prop.Proposition, error) {
	const rule = "or"
	if err := checkProven(stack, rule, self, "self"); err != nil {
		return nil, err
	}
	if len(disjuncts) == 0 {
		return nil, kernelerr.NotApplicable(rule, "need at least one additional disjunct")
	}
	args := append([]prop.Proposition{self}, disjuncts...)
	return mint(stack, rule, []provenance.StepRef{self.Inference()}, prop.NewOr(args...)), nil
}

// ByCases derives C from disj = A1 \/ ... \/ An and each Ai -> C.
func ByCases(stack *propctx.Stack, disj prop.Proposition, impls ...prop.Proposition) (prop.Proposition, error) {
	const rule = "by_cases"
	if err := checkProven(stack, rule, disj, "disj"); err != nil {
		return nil, err
	}
	j, ok := disj.(prop.Junction)
	if !ok || j.Kind != prop.KindOr {
		return nil, kernelerr.NotApplicable(rule, "disj is not a disjunction")
	}
	if len(impls) != len(j.Args) {
		return nil, kernelerr.NotApplicable(rule, "need exactly one implication per disjunct")
	}
	var conclusion prop.Proposition
	inputs := []provenance.StepRef{disj.Inference()}
	for i, impl := range impls {
		if err := checkProven(stack, rule, impl, "impl"); err != nil {
			return nil, err
		}
		ip, ok := impl.(prop.Implies)
		if !ok {
			return nil, kernelerr.NotApplicable(rule, "impl is not an implication")
		}
		if !ip.Antecedent.Equal(j.Args[i]) {
			return nil, kernelerr.NotApplicable(rule, "implication antecedent does not match disjunct")
		}
		if conclusion == nil {
			conclusion = ip.Consequent
		} else if !conclusion.Equal(ip.Consequent) {
			return nil, kernelerr.NotApplicable(rule, "implications do not share a conclusion")
		}
		inputs = append(inputs, impl.Inference())
	}
	return mint(stack, rule, inputs, conclusion), nil
}

// HypotheticalSyllogism derives A -> C from A -> B and B -> C.
func HypotheticalSyllogism(stack *propctx.Stack, ab, bc prop.Proposition) (prop.Proposition, error) {
	const rule = "hypothetical_syllogism"
	if err := checkProven(stack, rule, ab, "ab"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, bc, "bc"); err != nil {
		return nil, err
	}
	i1, ok := ab.(prop.Implies)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "ab is not an implication")
	}
	i2, ok := bc.(prop.Implies)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "bc is not an implication")
	}
	if !i1.Consequent.Equal(i2.Antecedent) {
		return nil, kernelerr.NotApplicable(rule, "middle terms do not match")
	}
	result := prop.NewImplies(i1.Antecedent, i2.Consequent)
	return mint(stack, rule, []provenance.StepRef{ab.Inference(), bc.Inference()}, result), nil
}

// Contrapositive derives !B -> !A from A -> B.
func Contrapositive(stack *propctx.Stack, impl prop.Proposition) (prop.Proposition, error) {
	const rule = "contrapositive"
	if err := checkProven(stack, rule, impl, "impl"); err != nil {
		return nil, err
	}
	i, ok := impl.(prop.Implies)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "impl is not an implication")
	}
	result := prop.NewImplies(prop.NewNot(i.Consequent), prop.NewNot(i.Antecedent))
	return mint(stack, rule, []provenance.StepRef{impl.Inference()}, result), nil
}

// IffForward derives A -> B from A <-> B.
func IffForward(stack *propctx.Stack, iff prop.Proposition) (prop.Proposition, error) {
	const rule = "iff_forward"
	if err := checkProven(stack, rule, iff, "iff"); err != nil {
		return nil, err
	}
	f, ok := iff.(prop.Iff)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "iff is not a biconditional")
	}
	result := prop.NewImplies(f.Left, f.Right)
	return mint(stack, rule, []provenance.StepRef{iff.Inference()}, result), nil
}

// IffBackward derives B -> A from A <-> B.
func IffBackward(stack *propctx.Stack, iff prop.Proposition) (prop.Proposition, error) {
	const rule = "iff_backward"
	if err := checkProven(stack, rule, iff, "iff"); err != nil {
		return nil, err
	}
	f, ok := iff.(prop.Iff)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "iff is not a biconditional")
	}
	result := prop.NewImplies(f.Right, f.Left)
	return mint(stack, rule, []provenance.StepRef{iff.Inference()}, result), nil
}

// Resolve derives B \/ C from A \/ B and !A \/ C.
func Resolve(stack *propctx.Stack, ab, nac prop.Proposition) (prop.Proposition, error) {
	const rule = "resolve"
	if err := checkProven(stack, rule, ab, "ab"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, nac, "nac"); err != nil {
		return nil, err
	}
	j1, ok := ab.(prop.Junction)
	if !ok || j1.Kind != prop.KindOr || len(j1.Args) != 2 {
		return nil, kernelerr.NotApplicable(rule, "ab is not a binary disjunction")
	}
	j2, ok := nac.(prop.Junction)
	if !ok || j2.Kind != prop.KindOr || len(j2.Args) != 2 {
		return nil, kernelerr.NotApplicable(rule, "nac is not a binary disjunction")
	}
	for i := 0; i < 2; i++ {
		for k := 0; k < 2; k++ {
			neg, ok := j2.Args[k].(prop.Not)
			if !ok || !neg.Arg.Equal(j1.Args[i]) {
				continue
			}
			b := j1.Args[1-i]
			c := j2.Args[1-k]
			result := prop.NewOr(b, c)
			return mint(stack, rule, []provenance.StepRef{ab.Inference(), nac.Inference()}, result), nil
		}
	}
	return nil, kernelerr.NotApplicable(rule, "no complementary literal found")
}

// UnitResolve derives B from A \/ B and !A.
func UnitResolve(stack *propctx.Stack, ab, na prop.Proposition) (prop.Proposition, error) {
	const rule = "unit_resolve"
	if err := checkProven(stack, rule, ab, "ab"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, na, "na"); err != nil {
		return nil, err
	}
	j, ok := ab.(prop.Junction)
	if !ok || j.Kind != prop.KindOr || len(j.Args) != 2 {
		return nil, kernelerr.NotApplicable(rule, "ab is not a binary disjunction")
	}
	neg, ok := na.(prop.Not)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "na is not a negation")
	}
	var result prop.Proposition
	switch {
	case j.Args[0].Equal(neg.Arg):
		result = j.Args[1]
	case j.Args[1].Equal(neg.Arg):
		result = j.Args[0]
	default:
		return nil, kernelerr.NotApplicable(rule, "na does not negate either disjunct")
	}
	return mint(stack, rule, []provenance.StepRef{ab.Inference(), na.Inference()}, result), nil
}

// DeMorgan pushes a negation through a junction, or pulls a negated
// junction of negations back out, returning the dual form. It never
// performs double-negation elimination; see DoubleNegationElim.
func DeMorgan(stack *propctx.Stack, p prop.Proposition) (prop.Proposition, error) {
	const rule = "de_morgan"
	if err := checkProven(stack, rule, p, "p"); err != nil {
		return nil, err
	}
	if n, ok := p.(prop.Not); ok {
		if j, ok := n.Arg.(prop.Junction); ok && (j.Kind == prop.KindAnd || j.Kind == prop.KindOr) {
			dual := prop.KindOr
			if j.Kind == prop.KindOr {
				dual = prop.KindAnd
			}
			args := make([]prop.Proposition, len(j.Args))
			for i, a := range j.Args {
				args[i] = prop.NewNot(a)
			}
			result := prop.Junction{Kind: dual, Args: args}
			return mint(stack, rule, []provenance.StepRef{p.Inference()}, result), nil
		}
	}
	if j, ok := p.(prop.Junction); ok && (j.Kind == prop.KindAnd || j.Kind == prop.KindOr) {
		negs := make([]prop.Proposition, len(j.Args))
		allNegated := len(j.Args) > 0
		for i, a := range j.Args {
			n, ok := a.(prop.Not)
			if !ok {
				allNegated = false
				break
			}
			negs[i] = n.Arg
		}
		if allNegated {
			dual := prop.KindOr
			if j.Kind == prop.KindOr {
				dual = prop.KindAnd
			}
			result := prop.NewNot(prop.Junction{Kind: dual, Args: negs})
			return mint(stack, rule, []provenance.StepRef{p.Inference()}, result), nil
		}
	}
	return nil, kernelerr.NotApplicable(rule, "p is not a junction or a negated junction")
}

// DoubleNegationElim derives A from !!A. It is classically valid but not
// intuitionistically valid; the prover, not this function, decides
// whether to call it (gated on Config.UseClassicalLogic).
func DoubleNegationElim(stack *propctx.Stack, p prop.Proposition) (prop.Proposition, error) {
	const rule = "double_negation_elim"
	if err := checkProven(stack, rule, p, "p"); err != nil {
		return nil, err
	}
	outer, ok := p.(prop.Not)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "p is not a negation")
	}
	inner, ok := outer.Arg.(prop.Not)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "p is not a double negation")
	}
	return mint(stack, rule, []provenance.StepRef{p.Inference()}, inner.Arg), nil
}

// UniversalInstantiation derives P(t) from Forall v. P(v) and a term t.
func UniversalInstantiation(stack *propctx.Stack, forall prop.Proposition, t term.Term) (prop.Proposition, error) {
	const rule = "universal_instantiation"
	if err := checkProven(stack, rule, forall, "forall"); err != nil {
		return nil, err
	}
	q, ok := forall.(prop.Quantifier)
	if !ok || q.Kind != prop.KindForall {
		return nil, kernelerr.NotApplicable(rule, "forall is not a universal quantifier")
	}
	result, err := subst.Instantiate(q, t)
	if err != nil {
		return nil, err
	}
	return mint(stack, rule, []provenance.StepRef{forall.Inference()}, result), nil
}

// ExistentialIntroduction derives target (Exists v. P(v)) from a proven
// witness P(t), recovering t by matching witness against target's body.
func ExistentialIntroduction(stack *propctx.Stack, witness, target prop.Proposition) (prop.Proposition, error) {
	const rule = "existential_introduction"
	if err := checkProven(stack, rule, witness, "witness"); err != nil {
		return nil, err
	}
	q, ok := target.(prop.Quantifier)
	if !ok || q.Kind != prop.KindExists {
		return nil, kernelerr.NotApplicable(rule, "target is not an existential quantifier")
	}
	t, ok := subst.Match(q.Var.Name, q.Body, witness)
	if !ok {
		return nil, kernelerr.NotApplicable(rule, "witness does not match target's body")
	}
	expected, err := subst.Instantiate(q, t)
	if err != nil {
		return nil, err
	}
	if !expected.Equal(witness) {
		return nil, kernelerr.NotApplicable(rule, "witness does not match target's body")
	}
	return mint(stack, rule, []provenance.StepRef{witness.Inference()}, target), nil
}

// ExistentialElimination opens a new frame on stack, declares a fresh
// variable, and assumes P(fresh) as the frame's live assumption, returning
// the fresh variable and the assumed body. The caller is responsible for
// eventually closing the frame.
func ExistentialElimination(stack *propctx.Stack, ex prop.Proposition, freshName string) (term.Variable, prop.Proposition, error) {
	const rule = "existential_elimination"
	if err := checkProven(stack, rule, ex, "ex"); err != nil {
		return term.Variable{}, nil, err
	}
	q, ok := ex.(prop.Quantifier)
	if !ok || q.Kind != prop.KindExists {
		return term.Variable{}, nil, kernelerr.NotApplicable(rule, "ex is not an existential quantifier")
	}
	stack.Open()
	fresh := stack.DeclareVariable(freshName, q.Var.Attrs)
	body, err := subst.Instantiate(q, fresh)
	if err != nil {
		return term.Variable{}, nil, err
	}
	assumed, err := stack.Assume(body)
	if err != nil {
		return term.Variable{}, nil, err
	}
	return fresh, assumed, nil
}

// Side selects which side of a proven equality rules.Substitute rewrites
// from.
type Side int

const (
	// SideLeftToRight replaces occurrences of eq.Left with eq.Right.
	SideLeftToRight Side = iota
	// SideRightToLeft replaces occurrences of eq.Right with eq.Left.
	SideRightToLeft
)

// Substitute rewrites self by replacing one side of a proven equality with
// the other.
func Substitute(stack *propctx.Stack, side Side, self, eq prop.Proposition) (prop.Proposition, error) {
	const rule = "substitute"
	if err := checkProven(stack, rule, self, "self"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, eq, "eq"); err != nil {
		return nil, err
	}
	r, ok := eq.(prop.Relation)
	if !ok || r.Kind != prop.KindEquals {
		return nil, kernelerr.NotApplicable(rule, "eq is not an equality")
	}
	from, to := r.Left, r.Right
	if side == SideRightToLeft {
		from, to = r.Right, r.Left
	}
	result, err := subst.ReplaceInProposition(self, from, to)
	if err != nil {
		return nil, err
	}
	return mint(stack, rule, []provenance.StepRef{self.Inference(), eq.Inference()}, result), nil
}

// Contradicts derives Contradiction from p and !p.
func Contradicts(stack *propctx.Stack, p, notp prop.Proposition) (prop.Proposition, error) {
	const rule = "contradicts"
	if err := checkProven(stack, rule, p, "p"); err != nil {
		return nil, err
	}
	if err := checkProven(stack, rule, notp, "notp"); err != nil {
		return nil, err
	}
	n, ok := notp.(prop.Not)
	if !ok || !n.Arg.Equal(p) {
		return nil, kernelerr.NotApplicable(rule, "notp does not negate p")
	}
	return mint(stack, rule, []provenance.StepRef{p.Inference(), notp.Inference()}, prop.NewContradiction()), nil
}

// ExFalso derives any target from a proven Contradiction.
func ExFalso(stack *propctx.Stack, contra prop.Proposition, target prop.Proposition) (prop.Proposition, error) {
	const rule = "ex_falso"
	if err := checkProven(stack, rule, contra, "contra"); err != nil {
		return nil, err
	}
	if _, ok := contra.(prop.Contradiction); !ok {
		return nil, kernelerr.NotApplicable(rule, "contra is not Contradiction")
	}
	return mint(stack, rule, []provenance.StepRef{contra.Inference()}, target), nil
}
