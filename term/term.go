// Package term implements the non-propositional term language: variables,
// constants, sets, sequences, and algebraic expressions. Terms are
// immutable once created and compare by structural equality; Expr nodes
// are never normalized except by an explicit oracle evaluation.
package term

import (
	"fmt"
	"math/big"
	"strings"
)

// Term is the tagged sum of the term language. isTerm is unexported so the
// set of implementations is closed to this package, matching the
// exhaustive-switch idiom favored over dynamic dispatch.
type Term interface {
	isTerm()
	fmt.Stringer
	Equal(Term) bool
}

// Predicate is the minimal surface a membership predicate needs to expose
// to be embedded in a SetSymbol, without term importing the proposition
// package (which itself depends on term). A Proposition satisfies this
// trivially since every Proposition implements String.
type Predicate interface {
	fmt.Stringer
}

// Variable is a free symbol. Deps lists the names of variables whose scope
// this one depends on, for capture-safe substitution; Bound toggles when
// the variable is captured by a quantifier.
type Variable struct {
	Name  string
	Deps  []string
	Bound bool
	Attrs Attributes
}

func (Variable) isTerm() {}

func NewVariable(name string, attrs Attributes, deps ...string) Variable {
	return Variable{Name: name, Deps: append([]string(nil), deps...), Attrs: attrs}
}

func (v Variable) String() string { return v.Name }

func (v Variable) Equal(t Term) bool {
	o, ok := t.(Variable)
	return ok && o.Name == v.Name
}

// WithBound returns a copy of v with Bound set, used by quantifiers to
// mark their bound occurrence without mutating the caller's value.
func (v Variable) WithBound(b bool) Variable {
	v.Bound = b
	return v
}

// Constant is a named term that may carry an exact rational value.
type Constant struct {
	Name  string
	Value *big.Rat // nil if this constant is purely symbolic
	Attrs Attributes
}

func (Constant) isTerm() {}

func NewConstant(name string) Constant {
	return Constant{Name: name}
}

// NewNumber builds a Constant carrying an exact integer value.
func NewNumber(n int64) Constant {
	v := big.NewRat(n, 1)
	return Constant{Name: v.RatString(), Value: v, Attrs: Attributes{
		Real: True, Integer: True,
		Natural:  FromBool(n >= 0),
		Positive: FromBool(n > 0),
		Negative: FromBool(n < 0),
		Even:     FromBool(n%2 == 0),
		Odd:      FromBool(n%2 != 0),
	}}
}

// NewRat builds a Constant carrying an exact rational value.
func NewRat(r *big.Rat) Constant {
	attrs := Attributes{Real: True, Integer: FromBool(r.IsInt())}
	return Constant{Name: r.RatString(), Value: r, Attrs: attrs}
}

func (c Constant) String() string { return c.Name }

func (c Constant) Equal(t Term) bool {
	o, ok := t.(Constant)
	if !ok || o.Name != c.Name {
		return false
	}
	if (c.Value == nil) != (o.Value == nil) {
		return false
	}
	if c.Value == nil {
		return true
	}
	return c.Value.Cmp(o.Value) == 0
}

// SetSymbol denotes a set, either opaquely by name or by a membership
// predicate over a bound element variable.
type SetSymbol struct {
	Name      string
	Element   Variable  // bound variable used by Predicate, zero value if unused
	Predicate Predicate // nil for an opaque named set
}

func (SetSymbol) isTerm() {}

func NewSetSymbol(name string) SetSymbol {
	return SetSymbol{Name: name}
}

func NewSetByPredicate(name string, element Variable, predicate Predicate) SetSymbol {
	return SetSymbol{Name: name, Element: element, Predicate: predicate}
}

func (s SetSymbol) String() string {
	if s.Predicate == nil {
		return s.Name
	}
	return fmt.Sprintf("{%s : %s}", s.Element.Name, s.Predicate.String())
}

func (s SetSymbol) Equal(t Term) bool {
	o, ok := t.(SetSymbol)
	if !ok {
		return false
	}
	if s.Predicate == nil && o.Predicate == nil {
		return s.Name == o.Name
	}
	if (s.Predicate == nil) != (o.Predicate == nil) {
		return false
	}
	return s.Element.Equal(o.Element) && s.Predicate.String() == o.Predicate.String()
}

// Sequence is an indexed family of terms. NthTerm optionally supplies a
// closed form; indexing a Sequence is a term-level operation.
type Sequence struct {
	Name    string
	NthTerm func(n int) Term
}

func (Sequence) isTerm() {}

func NewSequence(name string, nth func(n int) Term) Sequence {
	return Sequence{Name: name, NthTerm: nth}
}

func (s Sequence) String() string { return s.Name }

func (s Sequence) Equal(t Term) bool {
	o, ok := t.(Sequence)
	return ok && o.Name == s.Name
}

// At evaluates the sequence at index n, panicking only if the sequence has
// no closed form; callers that don't know whether NthTerm is set should
// check it directly.
func (s Sequence) At(n int) Term {
	return s.NthTerm(n)
}

// ExprOp enumerates the algebraic operators Expr can carry.
type ExprOp int

const (
	Add ExprOp = iota
	Mul
	Pow
	Abs
	Neg
	Mod
	GCD
	Max
	Min
)

func (op ExprOp) String() string {
	switch op {
	case Add:
		return "+"
	case Mul:
		return "*"
	case Pow:
		return "^"
	case Abs:
		return "abs"
	case Neg:
		return "-"
	case Mod:
		return "mod"
	case GCD:
		return "gcd"
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return "?"
	}
}

// Expr is an algebraic expression node. Expr is not normalized: structural
// equality distinguishes (a+b)+c from a+(b+c).
type Expr struct {
	Op   ExprOp
	Args []Term
}

func (Expr) isTerm() {}

func NewExpr(op ExprOp, args ...Term) Expr {
	return Expr{Op: op, Args: append([]Term(nil), args...)}
}

func (e Expr) String() string {
	switch e.Op {
	case Abs:
		return fmt.Sprintf("|%s|", e.Args[0])
	case Neg:
		return fmt.Sprintf("-%s", e.Args[0])
	case Mod, GCD, Max, Min:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", e.Op, strings.Join(parts, ", "))
	default:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}
		sep := fmt.Sprintf(" %s ", e.Op)
		return "(" + strings.Join(parts, sep) + ")"
	}
}

func (e Expr) Equal(t Term) bool {
	o, ok := t.(Expr)
	if !ok || o.Op != e.Op || len(o.Args) != len(e.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
