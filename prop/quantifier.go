package prop

import (
	"fmt"

	"logos/term"
)

// QuantifierKind distinguishes the five quantified forms that share the
// Quantifier shape. Each binds exactly one variable.
type QuantifierKind int

const (
	KindForall QuantifierKind = iota
	KindExists
	KindExistsUnique
	KindForallInSet
	KindExistsInSet
)

func (k QuantifierKind) symbol() string {
	switch k {
	case KindForall, KindForallInSet:
		return "forall"
	case KindExistsUnique:
		return "exists!"
	default:
		return "exists"
	}
}

// Quantifier is the shared shape for Forall, Exists, ExistsUnique,
// ForallInSet, and ExistsInSet. Set is nil unless Kind is one of the
// InSet variants, in which case it restricts Var's range.
type Quantifier struct {
	base
	Kind QuantifierKind
	Var  term.Variable
	Set  term.Term // nil unless Kind is KindForallInSet/KindExistsInSet
	Body Proposition
}

func (Quantifier) isProposition()               {}
func (q Quantifier) baseValue() base            { return q.base }
func (q Quantifier) setBase(b base) Proposition { q.base = b; return q }

func newQuantifier(kind QuantifierKind, v term.Variable, set term.Term, body Proposition) Quantifier {
	return Quantifier{Kind: kind, Var: v.WithBound(true), Set: set, Body: body}
}

func NewForall(v term.Variable, body Proposition) Quantifier {
	return newQuantifier(KindForall, v, nil, body)
}

func NewExists(v term.Variable, body Proposition) Quantifier {
	return newQuantifier(KindExists, v, nil, body)
}

func NewExistsUnique(v term.Variable, body Proposition) Quantifier {
	return newQuantifier(KindExistsUnique, v, nil, body)
}

func NewForallInSet(v term.Variable, set term.Term, body Proposition) Quantifier {
	return newQuantifier(KindForallInSet, v, set, body)
}

func NewExistsInSet(v term.Variable, set term.Term, body Proposition) Quantifier {
	return newQuantifier(KindExistsInSet, v, set, body)
}

func (q Quantifier) String() string {
	if q.Set != nil {
		return fmt.Sprintf("%s %s in %s. %s", q.Kind.symbol(), q.Var.Name, q.Set, q.Body)
	}
	return fmt.Sprintf("%s %s. %s", q.Kind.symbol(), q.Var.Name, q.Body)
}

func (q Quantifier) Equal(p Proposition) bool {
	o, ok := p.(Quantifier)
	if !ok || o.Kind != q.Kind || !q.Var.Equal(o.Var) {
		return false
	}
	if (q.Set == nil) != (o.Set == nil) {
		return false
	}
	if q.Set != nil && !q.Set.Equal(o.Set) {
		return false
	}
	return q.Body.Equal(o.Body)
}
