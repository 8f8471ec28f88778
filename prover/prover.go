// Package prover implements the backward, goal-directed, depth-first
// proof search over the propositional (plus quantifier) fragment: given a
// set of proven premises and a goal, it attempts to return a proposition
// structurally equal to the goal, proven, plus the provenance log
// recording how.
package prover

import (
	"context"

	"go.uber.org/zap"

	"logos/config"
	"logos/kernelerr"
	"logos/logging"
	"logos/prop"
	"logos/propctx"
	"logos/provenance"
	"logos/rules"
	"logos/subst"
)

// visitKey identifies a (goal shape, search depth) pair on the current
// search path, per SPEC_FULL.md §4.4. An entry is removed when the search
// call that added it returns, so a goal that failed under one premise set
// can still be searched again under another.
type visitKey struct {
	goal  string
	depth int
}

type searcher struct {
	stack         *propctx.Stack
	cfg           config.Config
	logger        *zap.Logger
	maxDepth      int
	visited       map[visitKey]bool
	noRecurseOn   map[string]bool
	demorganTried map[string]bool
}

// Prove attempts to derive goal from premises under cfg, returning the
// proven result (structurally, not necessarily referentially, equal to
// goal), the provenance log recording every step taken, and an error —
// typically *kernelerr.Error with Kind NoRuleApplies — if the search rule
// table was exhausted.
func Prove(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, cfg config.Config) (prop.Proposition, *provenance.Log, error) {
	return ProveWithLogger(ctx, premises, goal, cfg, nil)
}

// ProveWithLogger is Prove with an optional diagnostic *zap.Logger; nil
// behaves exactly like Prove.
func ProveWithLogger(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, cfg config.Config, logger *zap.Logger) (prop.Proposition, *provenance.Log, error) {
	stack := propctx.New()
	seeded := make([]prop.Proposition, len(premises))
	for i, p := range premises {
		ref := stack.Log().Append("premise", nil, p.String(), false)
		seeded[i] = prop.Mint(p, ref, int(stack.CurrentFrame()))
	}

	maxDepth := cfg.Prover.DefaultMaxDepth
	if maxDepth <= 0 {
		maxDepth = 4*len(premises) + 8
	}

	s := &searcher{
		stack:         stack,
		cfg:           cfg,
		logger:        logging.OrNop(logger),
		maxDepth:      maxDepth,
		visited:       map[visitKey]bool{},
		noRecurseOn:   map[string]bool{},
		demorganTried: map[string]bool{},
	}

	if cfg.Prover.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Prover.Timeout)
		defer cancel()
	}

	result, err := s.search(ctx, seeded, goal, 0)
	if err != nil {
		return nil, stack.Log(), err
	}
	return result, stack.Log(), nil
}

func (s *searcher) search(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, depth int) (prop.Proposition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > s.maxDepth {
		return nil, kernelerr.NoRule(goal.String())
	}
	key := visitKey{goal: goal.String(), depth: depth}
	if s.visited[key] {
		return nil, kernelerr.NoRule(goal.String())
	}
	s.visited[key] = true
	defer delete(s.visited, key)
	s.logger.Debug("search", zap.String("session", s.stack.SessionID()), zap.String("goal", goal.String()), zap.Int("depth", depth))

	premises = s.expandConjunctions(premises)

	// Rule 1: identity.
	for _, p := range premises {
		if p.Proven() && p.Equal(goal) {
			return p, nil
		}
	}

	// Contradiction is reached whenever two live premises are direct
	// negations of one another; this is the degenerate case of identity
	// for the one goal shape ("Contradiction") that is never itself a
	// premise's literal syntactic form.
	if _, ok := goal.(prop.Contradiction); ok {
		if result, ok := s.findDirectContradiction(premises); ok {
			return result, nil
		}
	}

	// Rule 2: conjunction introduction.
	if j, ok := goal.(prop.Junction); ok && j.Kind == prop.KindAnd {
		if result, err := s.introduceConjunction(ctx, premises, j, depth); err == nil {
			return result, nil
		}
	}

	// Rule 3: disjunction introduction.
	if j, ok := goal.(prop.Junction); ok && j.Kind == prop.KindOr {
		if result, err := s.introduceDisjunction(ctx, premises, j, depth); err == nil {
			return result, nil
		}
	}

	// Rule 4: implication introduction.
	if impl, ok := goal.(prop.Implies); ok {
		if result, err := s.introduceImplication(ctx, premises, impl, depth); err == nil {
			return result, nil
		}
	}

	// Rule 5: universal introduction.
	if q, ok := goal.(prop.Quantifier); ok && q.Kind == prop.KindForall {
		if result, err := s.introduceUniversal(ctx, premises, q, depth); err == nil {
			return result, nil
		}
	}

	// Rule 6: modus ponens elimination on a premise A -> goal.
	if result, err := s.eliminateByModusPonens(ctx, premises, goal, depth); err == nil {
		return result, nil
	}

	// Rule 7: case analysis on a disjunctive premise.
	if result, err := s.eliminateByCases(ctx, premises, goal, depth); err == nil {
		return result, nil
	}

	// Rule 8: proof by contradiction, classical mode only.
	if s.cfg.UseClassicalLogic {
		if result, err := s.proveByContradiction(ctx, premises, goal, depth); err == nil {
			return result, nil
		}
	}

	// Rule 9: De Morgan normalization, tried once per goal shape.
	goalKey := goal.String()
	if !s.demorganTried[goalKey] {
		s.demorganTried[goalKey] = true
		if result, err := s.tryDeMorganNormalization(ctx, premises, goal, depth); err == nil {
			return result, nil
		}
	}

	return nil, kernelerr.NoRule(goal.String())
}

// expandConjunctions augments premises with the conjuncts of any proven
// top-level And premise, via a direct "and_elimination" provenance step.
// Conjunction elimination has no entry in the rules table (only
// introduction does), but without it a compound premise like
// "(P -> Q) /\ (R -> S)" could never contribute P -> Q to a modus
// ponens search, which would make conjoined premises nearly useless.
func (s *searcher) expandConjunctions(premises []prop.Proposition) []prop.Proposition {
	out := append([]prop.Proposition(nil), premises...)
	for _, p := range premises {
		j, ok := p.(prop.Junction)
		if !ok || j.Kind != prop.KindAnd || !p.Proven() {
			continue
		}
		for _, conjunct := range j.Args {
			ref := s.stack.Log().Append("and_elimination", []provenance.StepRef{p.Inference()}, conjunct.String(), false)
			out = append(out, prop.Mint(conjunct, ref, int(s.stack.CurrentFrame())))
		}
	}
	return out
}

func (s *searcher) findDirectContradiction(premises []prop.Proposition) (prop.Proposition, bool) {
	for _, p := range premises {
		for _, q := range premises {
			n, ok := q.(prop.Not)
			if !ok || !n.Arg.Equal(p) {
				continue
			}
			if result, err := rules.Contradicts(s.stack, p, q); err == nil {
				return result, true
			}
		}
	}
	return nil, false
}

func (s *searcher) introduceConjunction(ctx context.Context, premises []prop.Proposition, goal prop.Junction, depth int) (prop.Proposition, error) {
	results := make([]prop.Proposition, len(goal.Args))
	for i, c := range goal.Args {
		r, err := s.search(ctx, premises, c, depth+1)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return rules.And(s.stack, results...)
}

func (s *searcher) introduceDisjunction(ctx context.Context, premises []prop.Proposition, goal prop.Junction, depth int) (prop.Proposition, error) {
	for _, d := range goal.Args {
		r, err := s.search(ctx, premises, d, depth+1)
		if err != nil {
			continue
		}
		ref := s.stack.Log().Append("or_introduction", []provenance.StepRef{r.Inference()}, goal.String(), false)
		return prop.Mint(goal, ref, int(s.stack.CurrentFrame())), nil
	}
	return nil, kernelerr.NoRule(goal.String())
}

func (s *searcher) introduceImplication(ctx context.Context, premises []prop.Proposition, goal prop.Implies, depth int) (prop.Proposition, error) {
	s.stack.Open()
	assumed, err := s.stack.Assume(goal.Antecedent)
	if err != nil {
		s.stack.Close()
		return nil, err
	}
	inner := append(append([]prop.Proposition(nil), premises...), assumed)
	result, searchErr := s.search(ctx, inner, goal.Consequent, depth+1)
	if searchErr != nil {
		s.stack.Close()
		return nil, searchErr
	}
	s.stack.Conclude(result)
	discharged, err := s.stack.Close()
	if err != nil {
		return nil, err
	}
	if len(discharged) == 0 {
		return nil, kernelerr.NoRule(goal.String())
	}
	return discharged[0], nil
}

func (s *searcher) introduceUniversal(ctx context.Context, premises []prop.Proposition, goal prop.Quantifier, depth int) (prop.Proposition, error) {
	for _, p := range premises {
		if prop.Contains(prop.FreeVars(p), goal.Var.Name) {
			return nil, kernelerr.NotApplicable("universal_introduction", "variable occurs free in a premise")
		}
	}
	s.stack.Open()
	fresh := s.stack.DeclareVariable(goal.Var.Name, goal.Var.Attrs)
	body, err := subst.Instantiate(goal, fresh)
	if err != nil {
		s.stack.Close()
		return nil, err
	}
	result, searchErr := s.search(ctx, premises, body, depth+1)
	if searchErr != nil {
		s.stack.Close()
		return nil, searchErr
	}
	s.stack.Conclude(result)
	discharged, err := s.stack.Close()
	if err != nil {
		return nil, err
	}
	if len(discharged) == 0 {
		return nil, kernelerr.NoRule(goal.String())
	}
	return discharged[0], nil
}

func (s *searcher) eliminateByModusPonens(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, depth int) (prop.Proposition, error) {
	for _, p := range premises {
		impl, ok := p.(prop.Implies)
		if !ok || !impl.Consequent.Equal(goal) {
			continue
		}
		key := p.String()
		if s.noRecurseOn[key] {
			continue
		}
		s.noRecurseOn[key] = true
		a, err := s.search(ctx, premises, impl.Antecedent, depth+1)
		delete(s.noRecurseOn, key)
		if err != nil {
			continue
		}
		result, err := rules.ModusPonens(s.stack, a, p)
		if err != nil {
			continue
		}
		return result, nil
	}
	return nil, kernelerr.NoRule(goal.String())
}

func (s *searcher) eliminateByCases(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, depth int) (prop.Proposition, error) {
	for _, p := range premises {
		j, ok := p.(prop.Junction)
		if !ok || j.Kind != prop.KindOr {
			continue
		}
		key := p.String()
		if s.noRecurseOn[key] {
			continue
		}
		s.noRecurseOn[key] = true
		result, ok := s.tryCaseAnalysis(ctx, premises, p, j, goal, depth)
		delete(s.noRecurseOn, key)
		if ok {
			return result, nil
		}
	}
	return nil, kernelerr.NoRule(goal.String())
}

func (s *searcher) tryCaseAnalysis(ctx context.Context, premises []prop.Proposition, disj prop.Proposition, j prop.Junction, goal prop.Proposition, depth int) (prop.Proposition, bool) {
	impls := make([]prop.Proposition, 0, len(j.Args))
	for _, branch := range j.Args {
		s.stack.Open()
		assumed, err := s.stack.Assume(branch)
		if err != nil {
			s.stack.Close()
			return nil, false
		}
		inner := append(append([]prop.Proposition(nil), premises...), assumed)
		result, searchErr := s.search(ctx, inner, goal, depth+1)
		if searchErr != nil {
			s.stack.Close()
			return nil, false
		}
		s.stack.Conclude(result)
		discharged, closeErr := s.stack.Close()
		if closeErr != nil || len(discharged) == 0 {
			return nil, false
		}
		impls = append(impls, discharged[0])
	}
	result, err := rules.ByCases(s.stack, disj, impls...)
	if err != nil {
		return nil, false
	}
	return result, true
}

func (s *searcher) proveByContradiction(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, depth int) (prop.Proposition, error) {
	outerFrame := s.stack.CurrentFrame()
	s.stack.Open()
	notGoal := prop.NewNot(goal)
	assumed, err := s.stack.Assume(notGoal)
	if err != nil {
		s.stack.Close()
		return nil, err
	}
	inner := append(append([]prop.Proposition(nil), premises...), assumed)
	contra, searchErr := s.search(ctx, inner, prop.NewContradiction(), depth+1)
	if searchErr != nil {
		s.stack.Close()
		return nil, searchErr
	}
	if _, err := s.stack.Close(); err != nil {
		return nil, err
	}
	ref := s.stack.Log().Append("proof_by_contradiction", []provenance.StepRef{assumed.Inference(), contra.Inference()}, goal.String(), false)
	return prop.Mint(goal, ref, int(outerFrame)), nil
}

func (s *searcher) tryDeMorganNormalization(ctx context.Context, premises []prop.Proposition, goal prop.Proposition, depth int) (prop.Proposition, error) {
	if s.cfg.UseClassicalLogic {
		for _, p := range premises {
			n, ok := p.(prop.Not)
			if !ok {
				continue
			}
			nn, ok := n.Arg.(prop.Not)
			if !ok || !nn.Arg.Equal(goal) {
				continue
			}
			if result, err := rules.DoubleNegationElim(s.stack, p); err == nil {
				return result, nil
			}
		}
	}

	// Premises are De Morgan-augmented unconditionally: Rule 9 applies to
	// both goal and premises, and a goal that isn't itself a negated
	// junction (an atomic goal, Contradiction inside proveByContradiction,
	// ...) must still get the benefit of its premises' duals.
	augmented := append([]prop.Proposition(nil), premises...)
	augmentedAny := false
	for _, p := range premises {
		if d, err := rules.DeMorgan(s.stack, p); err == nil {
			augmented = append(augmented, d)
			augmentedAny = true
		}
	}

	if dual, ok := deMorganDual(goal); ok {
		if proven, err := s.search(ctx, augmented, dual, depth+1); err == nil {
			return rules.DeMorgan(s.stack, proven)
		}
	}

	if !augmentedAny {
		return nil, kernelerr.NoRule(goal.String())
	}
	// The goal itself isn't dualizable, but the search.demorganTried guard
	// on goal's shape prevents this from re-entering Rule 9 for the same
	// goal, so retrying with the augmented premise set only re-tries
	// Rules 1-8 against the newly available duals.
	return s.search(ctx, augmented, goal, depth+1)
}

// deMorganDual computes the same push-in/pull-out transform as
// rules.DeMorgan but over a possibly-unproven proposition, since the
// prover needs the dual of an unproven goal before it can attempt to
// prove that dual instead.
func deMorganDual(p prop.Proposition) (prop.Proposition, bool) {
	if n, ok := p.(prop.Not); ok {
		if j, ok := n.Arg.(prop.Junction); ok && (j.Kind == prop.KindAnd || j.Kind == prop.KindOr) {
			dualKind := prop.KindOr
			if j.Kind == prop.KindOr {
				dualKind = prop.KindAnd
			}
			args := make([]prop.Proposition, len(j.Args))
			for i, a := range j.Args {
				args[i] = prop.NewNot(a)
			}
			return prop.Junction{Kind: dualKind, Args: args}, true
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
			dualKind := prop.KindOr
			if j.Kind == prop.KindOr {
				dualKind = prop.KindAnd
			}
			return prop.NewNot(prop.Junction{Kind: dualKind, Args: negs}), true
		}
	}
	return nil, false
}
