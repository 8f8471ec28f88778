// Package subst implements capture-avoiding substitution of terms into
// propositions, and the first-order matching built on top of it that
// existential introduction uses (universal instantiation takes its term
// explicitly and only needs substitution).
package subst

import (
	"fmt"

	"logos/kernelerr"
	"logos/prop"
	"logos/term"
)

var freshCounter int

func freshName(base string) string {
	freshCounter++
	return fmt.Sprintf("%s#%d", base, freshCounter)
}

// ReplaceTerm returns a copy of t with every free occurrence of a
// Variable named `name` replaced by replacement. Bound variables (those
// with Bound == true) are never substituted, matching capture-avoidance
// at the term level.
func ReplaceTerm(t term.Term, name string, replacement term.Term) term.Term {
	switch v := t.(type) {
	case term.Variable:
		if !v.Bound && v.Name == name {
			return replacement
		}
		return v
	case term.Expr:
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = ReplaceTerm(a, name, replacement)
		}
		return term.Expr{Op: v.Op, Args: args}
	default:
		return t
	}
}

// replacementFreeVars returns the free variable names occurring in t, for
// the capture check in Replace.
func replacementFreeVars(t term.Term) []string {
	var out []string
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch v := t.(type) {
		case term.Variable:
			if !v.Bound {
				out = append(out, v.Name)
			}
		case term.Expr:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// Replace performs capture-avoiding substitution of every free occurrence
// of the term variable named `name` by `replacement`, throughout p. When
// the walk would descend under a quantifier that binds a variable free in
// `replacement`, that bound variable is renamed to a fresh name first, so
// the substituted replacement's free variables can never be captured.
func Replace(p prop.Proposition, name string, replacement term.Term) (prop.Proposition, error) {
	replFree := replacementFreeVars(replacement)

	var walk func(p prop.Proposition) (prop.Proposition, error)
	walk = func(p prop.Proposition) (prop.Proposition, error) {
		switch n := p.(type) {
		case prop.Atom:
			args := make([]term.Term, len(n.Args))
			for i, a := range n.Args {
				args[i] = ReplaceTerm(a, name, replacement)
			}
			return prop.Atom{Name: n.Name, Args: args}, nil
		case prop.Not:
			arg, err := walk(n.Arg)
			if err != nil {
				return nil, err
			}
			return prop.NewNot(arg), nil
		case prop.Junction:
			args := make([]prop.Proposition, len(n.Args))
			for i, a := range n.Args {
				r, err := walk(a)
				if err != nil {
					return nil, err
				}
				args[i] = r
			}
			return prop.Junction{Kind: n.Kind, Args: args}, nil
		case prop.Implies:
			a, err := walk(n.Antecedent)
			if err != nil {
				return nil, err
			}
			c, err := walk(n.Consequent)
			if err != nil {
				return nil, err
			}
			return prop.NewImplies(a, c), nil
		case prop.Iff:
			l, err := walk(n.Left)
			if err != nil {
				return nil, err
			}
			r, err := walk(n.Right)
			if err != nil {
				return nil, err
			}
			return prop.NewIff(l, r), nil
		case prop.Quantifier:
			return walkQuantifier(n, name, replacement, replFree, walk)
		case prop.Relation:
			return prop.Relation{
				Kind:  n.Kind,
				Left:  ReplaceTerm(n.Left, name, replacement),
				Right: ReplaceTerm(n.Right, name, replacement),
			}, nil
		case prop.Prime:
			return prop.NewPrime(ReplaceTerm(n.Arg, name, replacement)), nil
		case prop.Contradiction:
			return n, nil
		default:
			return nil, kernelerr.New(kernelerr.CaptureViolation, "substitute", "unknown proposition shape")
		}
	}
	return walk(p)
}

func walkQuantifier(n prop.Quantifier, name string, replacement term.Term, replFree []string, walk func(prop.Proposition) (prop.Proposition, error)) (prop.Proposition, error) {
	if n.Var.Name == name {
		// The substituted name is shadowed by this binder; nothing under
		// it can be a free occurrence of `name`, so the quantifier is
		// returned unchanged.
		return n, nil
	}

	boundName := n.Var.Name
	captured := false
	for _, fv := range replFree {
		if fv == boundName {
			captured = true
			break
		}
	}

	body := n.Body
	v := n.Var
	set := n.Set
	if captured {
		fresh := freshName(boundName)
		renamed, err := Replace(body, boundName, term.NewVariable(fresh, n.Var.Attrs).WithBound(true))
		if err != nil {
			return nil, err
		}
		body = renamed
		v = term.NewVariable(fresh, n.Var.Attrs).WithBound(true)
		if set != nil {
			set = ReplaceTerm(set, boundName, term.NewVariable(fresh, n.Var.Attrs).WithBound(true))
		}
	}

	newBody, err := walk(body)
	if err != nil {
		return nil, err
	}
	if set != nil {
		set = ReplaceTerm(set, name, replacement)
	}
	return prop.Quantifier{Kind: n.Kind, Var: v, Set: set, Body: newBody}, nil
}

// Instantiate strips one layer of quantifier q and substitutes t for its
// bound variable, returning the resulting (now fully free in that
// variable) proposition. Used by rules.UniversalInstantiation and by the
// matching check in rules.ExistentialIntroduction.
func Instantiate(q prop.Quantifier, t term.Term) (prop.Proposition, error) {
	return Replace(q.Body, q.Var.Name, t)
}

// ReplaceTermTerm returns a copy of t with every subterm structurally
// equal to from replaced by to. Unlike ReplaceTerm, this is not scoped to
// a single variable name: it is the term-rewriting primitive rules.
// Substitute uses to apply an equality a = b across a proposition.
func ReplaceTermTerm(t term.Term, from, to term.Term) term.Term {
	if t.Equal(from) {
		return to
	}
	if e, ok := t.(term.Expr); ok {
		args := make([]term.Term, len(e.Args))
		for i, a := range e.Args {
			args[i] = ReplaceTermTerm(a, from, to)
		}
		return term.Expr{Op: e.Op, Args: args}
	}
	return t
}

// ReplaceInProposition returns a copy of p with every subterm structurally
// equal to from replaced by to, throughout every term position (Atom
// arguments, Relation/Prime operands, quantifier set bounds). It does not
// rename bound variables: from/to are ground terms supplied by a proven
// equality, never binders, so no capture can occur.
func ReplaceInProposition(p prop.Proposition, from, to term.Term) (prop.Proposition, error) {
	switch n := p.(type) {
	case prop.Atom:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = ReplaceTermTerm(a, from, to)
		}
		return prop.Atom{Name: n.Name, Args: args}, nil
	case prop.Not:
		arg, err := ReplaceInProposition(n.Arg, from, to)
		if err != nil {
			return nil, err
		}
		return prop.NewNot(arg), nil
	case prop.Junction:
		args := make([]prop.Proposition, len(n.Args))
		for i, a := range n.Args {
			r, err := ReplaceInProposition(a, from, to)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return prop.Junction{Kind: n.Kind, Args: args}, nil
	case prop.Implies:
		a, err := ReplaceInProposition(n.Antecedent, from, to)
		if err != nil {
			return nil, err
		}
		c, err := ReplaceInProposition(n.Consequent, from, to)
		if err != nil {
			return nil, err
		}
		return prop.NewImplies(a, c), nil
	case prop.Iff:
		l, err := ReplaceInProposition(n.Left, from, to)
		if err != nil {
			return nil, err
		}
		r, err := ReplaceInProposition(n.Right, from, to)
		if err != nil {
			return nil, err
		}
		return prop.NewIff(l, r), nil
	case prop.Quantifier:
		body, err := ReplaceInProposition(n.Body, from, to)
		if err != nil {
			return nil, err
		}
		set := n.Set
		if set != nil {
			set = ReplaceTermTerm(set, from, to)
		}
		return prop.Quantifier{Kind: n.Kind, Var: n.Var, Set: set, Body: body}, nil
	case prop.Relation:
		return prop.Relation{
			Kind:  n.Kind,
			Left:  ReplaceTermTerm(n.Left, from, to),
			Right: ReplaceTermTerm(n.Right, from, to),
		}, nil
	case prop.Prime:
		return prop.NewPrime(ReplaceTermTerm(n.Arg, from, to)), nil
	case prop.Contradiction:
		return n, nil
	default:
		return nil, kernelerr.New(kernelerr.CaptureViolation, "substitute", "unknown proposition shape")
	}
}

// Match attempts to find the unique term bound to the quantifier variable
// varName such that replacing it throughout pattern reproduces instance
// exactly. It implements the first-order matching SPEC_FULL.md §4.3
// describes for existential introduction: free symbols of pattern must
// match instance identically, and every occurrence of varName must bind
// the same term. Matching is linear in the size of pattern. It returns
// ok == false if no consistent binding exists, or if varName never occurs
// in pattern (nothing to recover a witness from).
func Match(varName string, pattern prop.Proposition, instance prop.Proposition) (term.Term, bool) {
	var binding term.Term
	if !matchProposition(varName, pattern, instance, &binding) {
		return nil, false
	}
	if binding == nil {
		return nil, false
	}
	return binding, true
}

func matchTerm(varName string, pattern, instance term.Term, binding *term.Term) bool {
	if v, ok := pattern.(term.Variable); ok && v.Name == varName {
		if *binding == nil {
			*binding = instance
			return true
		}
		return (*binding).Equal(instance)
	}
	if pe, ok := pattern.(term.Expr); ok {
		ie, ok := instance.(term.Expr)
		if !ok || ie.Op != pe.Op || len(ie.Args) != len(pe.Args) {
			return false
		}
		for i := range pe.Args {
			if !matchTerm(varName, pe.Args[i], ie.Args[i], binding) {
				return false
			}
		}
		return true
	}
	return pattern.Equal(instance)
}

func matchProposition(varName string, pattern, instance prop.Proposition, binding *term.Term) bool {
	switch pn := pattern.(type) {
	case prop.Atom:
		in, ok := instance.(prop.Atom)
		if !ok || in.Name != pn.Name || len(in.Args) != len(pn.Args) {
			return false
		}
		for i := range pn.Args {
			if !matchTerm(varName, pn.Args[i], in.Args[i], binding) {
				return false
			}
		}
		return true
	case prop.Not:
		in, ok := instance.(prop.Not)
		return ok && matchProposition(varName, pn.Arg, in.Arg, binding)
	case prop.Junction:
		in, ok := instance.(prop.Junction)
		if !ok || in.Kind != pn.Kind || len(in.Args) != len(pn.Args) {
			return false
		}
		for i := range pn.Args {
			if !matchProposition(varName, pn.Args[i], in.Args[i], binding) {
				return false
			}
		}
		return true
	case prop.Implies:
		in, ok := instance.(prop.Implies)
		return ok && matchProposition(varName, pn.Antecedent, in.Antecedent, binding) &&
			matchProposition(varName, pn.Consequent, in.Consequent, binding)
	case prop.Iff:
		in, ok := instance.(prop.Iff)
		return ok && matchProposition(varName, pn.Left, in.Left, binding) &&
			matchProposition(varName, pn.Right, in.Right, binding)
	case prop.Quantifier:
		in, ok := instance.(prop.Quantifier)
		return ok && in.Kind == pn.Kind && pn.Var.Equal(in.Var) &&
			matchProposition(varName, pn.Body, in.Body, binding)
	case prop.Relation:
		in, ok := instance.(prop.Relation)
		return ok && in.Kind == pn.Kind &&
			matchTerm(varName, pn.Left, in.Left, binding) &&
			matchTerm(varName, pn.Right, in.Right, binding)
	case prop.Prime:
		in, ok := instance.(prop.Prime)
		return ok && matchTerm(varName, pn.Arg, in.Arg, binding)
	case prop.Contradiction:
		_, ok := instance.(prop.Contradiction)
		return ok
	default:
		return false
	}
}
