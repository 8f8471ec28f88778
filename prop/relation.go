package prop

import (
	"fmt"

	"logos/term"
)

// RelationKind enumerates the built-in binary relations over terms.
type RelationKind int

const (
	KindEquals RelationKind = iota
	KindLessThan
	KindGreaterThan
	KindLessOrEqual
	KindGreaterOrEqual
	KindIsContainedIn
	KindIsSubsetOf
	KindDivides
)

func (k RelationKind) symbol() string {
	switch k {
	case KindEquals:
		return "="
	case KindLessThan:
		return "<"
	case KindGreaterThan:
		return ">"
	case KindLessOrEqual:
		return "<="
	case KindGreaterOrEqual:
		return ">="
	case KindIsContainedIn:
		return "in"
	case KindIsSubsetOf:
		return "subset-of"
	case KindDivides:
		return "|"
	default:
		return "?"
	}
}

// Relation is the shared shape for every built-in binary relation:
// Equals, LessThan, GreaterThan, LessOrEqual, GreaterOrEqual,
// IsContainedIn, IsSubsetOf, and Divides.
type Relation struct {
	base
	Kind  RelationKind
	Left  term.Term
	Right term.Term
}

func (Relation) isProposition()               {}
func (r Relation) baseValue() base            { return r.base }
func (r Relation) setBase(b base) Proposition { r.base = b; return r }

func newRelation(kind RelationKind, left, right term.Term) Relation {
	return Relation{Kind: kind, Left: left, Right: right}
}

func NewEquals(l, r term.Term) Relation           { return newRelation(KindEquals, l, r) }
func NewLessThan(l, r term.Term) Relation         { return newRelation(KindLessThan, l, r) }
func NewGreaterThan(l, r term.Term) Relation      { return newRelation(KindGreaterThan, l, r) }
func NewLessOrEqual(l, r term.Term) Relation      { return newRelation(KindLessOrEqual, l, r) }
func NewGreaterOrEqual(l, r term.Term) Relation   { return newRelation(KindGreaterOrEqual, l, r) }
func NewIsContainedIn(elem, set term.Term) Relation { return newRelation(KindIsContainedIn, elem, set) }
func NewIsSubsetOf(sub, super term.Term) Relation { return newRelation(KindIsSubsetOf, sub, super) }
func NewDivides(d, n term.Term) Relation          { return newRelation(KindDivides, d, n) }

func (r Relation) String() string {
	if r.Kind == KindDivides {
		return fmt.Sprintf("(%s | %s)", r.Left, r.Right)
	}
	return fmt.Sprintf("(%s %s %s)", r.Left, r.Kind.symbol(), r.Right)
}

func (r Relation) Equal(p Proposition) bool {
	o, ok := p.(Relation)
	return ok && o.Kind == r.Kind && r.Left.Equal(o.Left) && r.Right.Equal(o.Right)
}

// Prime asserts that a single term is a prime number.
type Prime struct {
	base
	Arg term.Term
}

func (Prime) isProposition()               {}
func (p Prime) baseValue() base            { return p.base }
func (p Prime) setBase(b base) Proposition { p.base = b; return p }

func NewPrime(t term.Term) Prime { return Prime{Arg: t} }

func (p Prime) String() string { return fmt.Sprintf("prime(%s)", p.Arg) }

func (p Prime) Equal(o Proposition) bool {
	op, ok := o.(Prime)
	return ok && p.Arg.Equal(op.Arg)
}

// Contradiction is the nullary proposition "false" produced by
// Contradicts and consumed by ExFalso.
type Contradiction struct {
	base
}

func (Contradiction) isProposition()               {}
func (c Contradiction) baseValue() base            { return c.base }
func (c Contradiction) setBase(b base) Proposition { c.base = b; return c }

func NewContradiction() Contradiction { return Contradiction{} }

func (Contradiction) String() string { return "Contradiction" }

func (c Contradiction) Equal(o Proposition) bool {
	_, ok := o.(Contradiction)
	return ok
}
