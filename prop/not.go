package prop

import "fmt"

// Not is logical negation.
type Not struct {
	base
	Arg Proposition
}

func (Not) isProposition()               {}
func (n Not) baseValue() base            { return n.base }
func (n Not) setBase(b base) Proposition { n.base = b; return n }

func NewNot(p Proposition) Not {
	return Not{Arg: p}
}

func (n Not) String() string { return fmt.Sprintf("!%s", n.Arg) }

func (n Not) Equal(p Proposition) bool {
	o, ok := p.(Not)
	return ok && n.Arg.Equal(o.Arg)
}
