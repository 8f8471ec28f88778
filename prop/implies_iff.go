package prop

import "fmt"

// Implies is A -> B.
type Implies struct {
	base
	Antecedent Proposition
	Consequent Proposition
}

func (Implies) isProposition()               {}
func (i Implies) baseValue() base            { return i.base }
func (i Implies) setBase(b base) Proposition { i.base = b; return i }

func NewImplies(antecedent, consequent Proposition) Implies {
	return Implies{Antecedent: antecedent, Consequent: consequent}
}

func (i Implies) String() string {
	return fmt.Sprintf("(%s -> %s)", i.Antecedent, i.Consequent)
}

func (i Implies) Equal(p Proposition) bool {
	o, ok := p.(Implies)
	return ok && i.Antecedent.Equal(o.Antecedent) && i.Consequent.Equal(o.Consequent)
}

// Iff is A <-> B.
type Iff struct {
	base
	Left  Proposition
	Right Proposition
}

func (Iff) isProposition()               {}
func (f Iff) baseValue() base            { return f.base }
func (f Iff) setBase(b base) Proposition { f.base = b; return f }

func NewIff(left, right Proposition) Iff {
	return Iff{Left: left, Right: right}
}

func (f Iff) String() string {
	return fmt.Sprintf("(%s <-> %s)", f.Left, f.Right)
}

func (f Iff) Equal(p Proposition) bool {
	o, ok := p.(Iff)
	return ok && f.Left.Equal(o.Left) && f.Right.Equal(o.Right)
}
