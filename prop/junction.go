package prop

import "strings"

// JunctionKind distinguishes the three n-ary junctions that share the
// Junction shape.
type JunctionKind int

const (
	KindAnd JunctionKind = iota
	KindOr
	// KindExOr means "exactly one argument is true" -- not "an odd number
	// of arguments is true". This distinction is deliberate: see
	// SPEC_FULL.md §9.
	KindExOr
)

func (k JunctionKind) String() string {
	switch k {
	case KindAnd:
		return "/\\"
	case KindOr:
		return "\\/"
	case KindExOr:
		return "xor"
	default:
		return "?"
	}
}

// Junction is the shared shape for And, Or, and ExOr: an n-ary connective
// over an ordered argument list. Ordering is significant for display and
// for tie-breaking in the prover, but not for Equal.
type Junction struct {
	base
	Kind JunctionKind
	Args []Proposition
}

func (Junction) isProposition()               {}
func (j Junction) baseValue() base            { return j.base }
func (j Junction) setBase(b base) Proposition { j.base = b; return j }

func NewAnd(args ...Proposition) Junction {
	return Junction{Kind: KindAnd, Args: append([]Proposition(nil), args...)}
}

func NewOr(args ...Proposition) Junction {
	return Junction{Kind: KindOr, Args: append([]Proposition(nil), args...)}
}

// NewExOr builds the "exactly one of these is true" connective.
func NewExOr(args ...Proposition) Junction {
	return Junction{Kind: KindExOr, Args: append([]Proposition(nil), args...)}
}

func (j Junction) String() string {
	parts := make([]string, len(j.Args))
	for i, a := range j.Args {
		parts[i] = a.String()
	}
	sep := " " + j.Kind.String() + " "
	return "(" + strings.Join(parts, sep) + ")"
}

// Equal compares Junctions as multisets of arguments, not as ordered
// tuples: A \/ B and B \/ A are the same proposition. Each argument of j
// is matched against a distinct, not-yet-matched argument of o, so
// duplicated arguments still require duplicated matches (A /\ A is not
// equal to A /\ B).
func (j Junction) Equal(p Proposition) bool {
	o, ok := p.(Junction)
	if !ok || o.Kind != j.Kind || len(o.Args) != len(j.Args) {
		return false
	}
	used := make([]bool, len(o.Args))
	for _, a := range j.Args {
		matched := false
		for i, b := range o.Args {
			if used[i] {
				continue
			}
			if a.Equal(b) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
