package prop

import (
	"fmt"
	"strings"

	"logos/term"
)

// Atom is a named relation over an ordered argument list of terms, e.g.
// reachable(a, b).
type Atom struct {
	base
	Name string
	Args []term.Term
}

func (Atom) isProposition()            {}
func (a Atom) baseValue() base         { return a.base }
func (a Atom) setBase(b base) Proposition { a.base = b; return a }

// NewAtom constructs an unproven Atom.
func NewAtom(name string, args ...term.Term) Atom {
	return Atom{Name: name, Args: append([]term.Term(nil), args...)}
}

func (a Atom) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(parts, ", "))
}

func (a Atom) Equal(p Proposition) bool {
	o, ok := p.(Atom)
	if !ok || o.Name != a.Name || len(o.Args) != len(a.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
