package prop

import "logos/term"

// FreeVars collects the names of variables occurring free in p, i.e. not
// bound by an enclosing quantifier. Order is first-occurrence, duplicates
// removed.
func FreeVars(p Proposition) []string {
	seen := map[string]bool{}
	var out []string
	// bound counts, per name, how many enclosing quantifiers on the
	// current walk bind that name: a Quantifier's own Var is marked
	// Bound on its own copy (see quantifier.go's newQuantifier), but
	// occurrences of the same name inside Body are not, so Body's
	// occurrences must be excluded by name here instead.
	bound := map[string]int{}
	var walk func(p Proposition)
	var walkTerm func(t term.Term)

	walkTerm = func(t term.Term) {
		switch v := t.(type) {
		case term.Variable:
			if !v.Bound && bound[v.Name] == 0 && !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
		case term.Expr:
			for _, a := range v.Args {
				walkTerm(a)
			}
		case term.SetSymbol:
			// opaque set symbols contribute no free term variables beyond
			// their own name; predicate-defined sets are walked via their
			// embedded proposition by callers that know its concrete type.
		}
	}

	walk = func(p Proposition) {
		switch n := p.(type) {
		case Atom:
			for _, a := range n.Args {
				walkTerm(a)
			}
		case Not:
			walk(n.Arg)
		case Junction:
			for _, a := range n.Args {
				walk(a)
			}
		case Implies:
			walk(n.Antecedent)
			walk(n.Consequent)
		case Iff:
			walk(n.Left)
			walk(n.Right)
		case Quantifier:
			if n.Set != nil {
				walkTerm(n.Set)
			}
			bound[n.Var.Name]++
			walk(n.Body)
			bound[n.Var.Name]--
		case Relation:
			walkTerm(n.Left)
			walkTerm(n.Right)
		case Prime:
			walkTerm(n.Arg)
		case Contradiction:
		}
	}

	walk(p)
	return out
}

// Contains reports whether name appears in vars.
func Contains(vars []string, name string) bool {
	for _, v := range vars {
		if v == name {
			return true
		}
	}
	return false
}
