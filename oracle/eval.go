package oracle

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"logos/kernelerr"
	"logos/prop"
	"logos/provenance"
	"logos/term"
)

// ByEval decides a ground Equals proposition by evaluating both sides
// with exact big.Rat arithmetic; it refuses if either side contains a
// free variable or an operation it cannot evaluate (division by zero,
// a non-integer exponent, ...).
func ByEval(ctx context.Context, eq prop.Proposition) (prop.Proposition, *provenance.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rel, ok := eq.(prop.Relation)
	if !ok || rel.Kind != prop.KindEquals {
		return nil, nil, kernelerr.Refused("by_eval", "not an Equals proposition")
	}
	l, err := evalTerm(rel.Left)
	if err != nil {
		return nil, nil, kernelerr.Refused("by_eval", err.Error())
	}
	r, err := evalTerm(rel.Right)
	if err != nil {
		return nil, nil, kernelerr.Refused("by_eval", err.Error())
	}
	if l.Cmp(r) != 0 {
		return nil, nil, kernelerr.Refused("by_eval", "sides are not equal")
	}
	log := provenance.NewLog()
	ref := log.Append("by_eval", nil, eq.String(), true)
	return prop.Mint(eq, ref, 0), log, nil
}

// BySimplification decides a ground or partially symbolic Equals
// proposition: it first tries a small fixed table of algebraic
// identities (commutativity/associativity normalization, a-a=0,
// a*0=0, a^0=1), then falls back to ByEval's exact evaluation.
func BySimplification(ctx context.Context, eq prop.Proposition) (prop.Proposition, *provenance.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rel, ok := eq.(prop.Relation)
	if !ok || rel.Kind != prop.KindEquals {
		return nil, nil, kernelerr.Refused("by_simplification", "not an Equals proposition")
	}
	if simplifiesToEqual(rel.Left, rel.Right) {
		log := provenance.NewLog()
		ref := log.Append("by_simplification", nil, eq.String(), true)
		return prop.Mint(eq, ref, 0), log, nil
	}
	l, lerr := evalTerm(rel.Left)
	r, rerr := evalTerm(rel.Right)
	if lerr == nil && rerr == nil && l.Cmp(r) == 0 {
		log := provenance.NewLog()
		ref := log.Append("by_simplification", nil, eq.String(), true)
		return prop.Mint(eq, ref, 0), log, nil
	}
	return nil, nil, kernelerr.Refused("by_simplification", "sides do not simplify to the same value")
}

func evalTerm(t term.Term) (*big.Rat, error) {
	switch v := t.(type) {
	case term.Constant:
		if v.Value == nil {
			return nil, fmt.Errorf("constant %q has no value", v.Name)
		}
		return new(big.Rat).Set(v.Value), nil
	case term.Expr:
		return evalExpr(v)
	default:
		return nil, fmt.Errorf("cannot evaluate term %s", t)
	}
}

func evalExpr(e term.Expr) (*big.Rat, error) {
	vals := make([]*big.Rat, len(e.Args))
	for i, a := range e.Args {
		v, err := evalTerm(a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	switch e.Op {
	case term.Add:
		sum := new(big.Rat)
		for _, v := range vals {
			sum.Add(sum, v)
		}
		return sum, nil
	case term.Mul:
		prod := big.NewRat(1, 1)
		for _, v := range vals {
			prod.Mul(prod, v)
		}
		return prod, nil
	case term.Neg:
		return new(big.Rat).Neg(vals[0]), nil
	case term.Abs:
		r := new(big.Rat).Set(vals[0])
		if r.Sign() < 0 {
			r.Neg(r)
		}
		return r, nil
	case term.Pow:
		return evalPow(vals[0], vals[1])
	case term.Mod:
		return evalIntBinOp(vals, func(a, b *big.Int) (*big.Int, error) {
			if b.Sign() == 0 {
				return nil, fmt.Errorf("mod by zero")
			}
			return new(big.Int).Mod(a, b), nil
		})
	case term.GCD:
		return evalIntBinOp(vals, func(a, b *big.Int) (*big.Int, error) {
			return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b)), nil
		})
	case term.Max:
		m := vals[0]
		for _, v := range vals[1:] {
			if v.Cmp(m) > 0 {
				m = v
			}
		}
		return m, nil
	case term.Min:
		m := vals[0]
		for _, v := range vals[1:] {
			if v.Cmp(m) < 0 {
				m = v
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported operation %s", e.Op)
	}
}

func evalPow(base, exp *big.Rat) (*big.Rat, error) {
	if !exp.IsInt() {
		return nil, fmt.Errorf("exponent must be an integer")
	}
	n := exp.Num().Int64()
	neg := n < 0
	if neg {
		n = -n
	}
	result := big.NewRat(1, 1)
	for i := int64(0); i < n; i++ {
		result.Mul(result, base)
	}
	if neg {
		if result.Sign() == 0 {
			return nil, fmt.Errorf("division by zero in negative power")
		}
		result.Inv(result)
	}
	return result, nil
}

func evalIntBinOp(vals []*big.Rat, op func(a, b *big.Int) (*big.Int, error)) (*big.Rat, error) {
	if len(vals) != 2 || !vals[0].IsInt() || !vals[1].IsInt() {
		return nil, fmt.Errorf("operation requires two integers")
	}
	result, err := op(vals[0].Num(), vals[1].Num())
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetInt(result), nil
}

func isZero(t term.Term) bool {
	c, ok := t.(term.Constant)
	return ok && c.Value != nil && c.Value.Sign() == 0
}

func isOne(t term.Term) bool {
	c, ok := t.(term.Constant)
	return ok && c.Value != nil && c.Value.Cmp(big.NewRat(1, 1)) == 0
}

func simplifiesToEqual(a, b term.Term) bool {
	if isZeroDifference(a, b) || isZeroDifference(b, a) {
		return true
	}
	if mulByZero(a) && isZero(b) {
		return true
	}
	if mulByZero(b) && isZero(a) {
		return true
	}
	if powZero(a) && isOne(b) {
		return true
	}
	if powZero(b) && isOne(a) {
		return true
	}
	return canonicalize(a).Equal(canonicalize(b))
}

// isZeroDifference reports whether a is syntactically x + (-y) with x
// equal to y, and b is the zero constant.
func isZeroDifference(a, b term.Term) bool {
	e, ok := a.(term.Expr)
	if !ok || e.Op != term.Add || len(e.Args) != 2 {
		return false
	}
	n, ok := e.Args[1].(term.Expr)
	if !ok || n.Op != term.Neg {
		return false
	}
	return e.Args[0].Equal(n.Args[0]) && isZero(b)
}

func mulByZero(t term.Term) bool {
	e, ok := t.(term.Expr)
	if !ok || e.Op != term.Mul {
		return false
	}
	for _, a := range e.Args {
		if isZero(a) {
			return true
		}
	}
	return false
}

func powZero(t term.Term) bool {
	e, ok := t.(term.Expr)
	return ok && e.Op == term.Pow && len(e.Args) == 2 && isZero(e.Args[1])
}

// canonicalize flattens nested Add/Mul nodes and sorts their arguments
// by string form, so commutative/associative rewrites of the same
// expression compare equal.
func canonicalize(t term.Term) term.Term {
	e, ok := t.(term.Expr)
	if !ok {
		return t
	}
	args := make([]term.Term, len(e.Args))
	for i, a := range e.Args {
		args[i] = canonicalize(a)
	}
	if e.Op == term.Add || e.Op == term.Mul {
		flat := flattenAssoc(e.Op, args)
		sort.Slice(flat, func(i, j int) bool { return flat[i].String() < flat[j].String() })
		return term.NewExpr(e.Op, flat...)
	}
	return term.NewExpr(e.Op, args...)
}

func flattenAssoc(op term.ExprOp, args []term.Term) []term.Term {
	var out []term.Term
	for _, a := range args {
		if e, ok := a.(term.Expr); ok && e.Op == op {
			out = append(out, flattenAssoc(op, e.Args)...)
		} else {
			out = append(out, a)
		}
	}
	return out
}
