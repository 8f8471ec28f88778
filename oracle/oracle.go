// Package oracle implements the kernel's trusted external deciders:
// narrow, audited escape hatches for facts the rule-based kernel cannot
// derive on its own (base arithmetic, set membership, rational
// equality). Every decider returns its own call-scoped provenance log,
// tagging the single step it mints as an oracle step, and every decider
// refuses cleanly (OracleRefused) rather than guessing when a
// proposition's shape falls outside what it knows how to decide.
//
// oracle imports only prop/term/kernelerr/provenance — never rules or
// propctx — so the boundary described in the module's design notes is
// enforced by the compiler: rules and prover only ever see oracle
// through the Decider interface below.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"logos/kernelerr"
	"logos/prop"
	"logos/provenance"
	"logos/term"
)

// Decider is the interface rules/prover are allowed to depend on; the
// concrete Datalog-backed engine type below is never exported through
// it.
type Decider interface {
	Decide(ctx context.Context, p prop.Proposition) (prop.Proposition, *provenance.Log, error)
}

// baseSchema declares five ground predicates: a prime number, an exact
// divisibility relation, set membership, subset, and an ordering.
// ByInspection asserts facts only for prime, divides, and less; member
// and subset are declared but never asserted. It is loaded fresh for every
// call rather than held as shared mutable state, since each decision is
// a single ground query with no rule bodies to analyze twice.
const baseSchema = `
Decl prime(N) bound [/number].
Decl divides(D, N) bound [/number, /number].
Decl member(X, S) bound [/name, /name].
Decl subset(A, B) bound [/name, /name].
Decl less(A, B) bound [/number, /number].
`

type engine struct {
	info       *analysis.ProgramInfo
	store      factstore.ConcurrentFactStore
	predicates map[string]ast.PredicateSym
}

func newEngine() (*engine, error) {
	unit, err := parse.Unit(strings.NewReader(baseSchema))
	if err != nil {
		return nil, fmt.Errorf("oracle: parse base schema: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: unit.Clauses, Decls: unit.Decls}, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle: analyze base schema: %w", err)
	}
	predicates := make(map[string]ast.PredicateSym, len(info.Decls))
	for sym := range info.Decls {
		predicates[sym.Symbol] = sym
	}
	base := factstore.NewSimpleInMemoryStore()
	return &engine{info: info, store: factstore.NewConcurrentFactStore(base), predicates: predicates}, nil
}

func (e *engine) assert(predicate string, args ...ast.BaseTerm) (ast.Atom, error) {
	sym, ok := e.predicates[predicate]
	if !ok {
		return ast.Atom{}, fmt.Errorf("oracle: predicate %s not declared in base schema", predicate)
	}
	if len(args) != sym.Arity {
		return ast.Atom{}, fmt.Errorf("oracle: predicate %s expects %d args, got %d", predicate, sym.Arity, len(args))
	}
	atom := ast.Atom{Predicate: sym, Args: args}
	e.store.Add(atom)
	return atom, nil
}

// holds re-evaluates the (rule-free) program and checks that atom was
// retained by the fact store, genuinely round-tripping the asserted
// ground fact through mangle's analysis/factstore/engine packages
// rather than trusting the Go-side computation that produced it.
func (e *engine) holds(atom ast.Atom) (bool, error) {
	if _, err := mengine.EvalProgramWithStats(e.info, e.store); err != nil {
		return false, fmt.Errorf("oracle: evaluate program: %w", err)
	}
	found := false
	err := e.store.GetFacts(ast.NewQuery(atom.Predicate), func(candidate ast.Atom) error {
		if fmt.Sprint(candidate) == fmt.Sprint(atom) {
			found = true
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("oracle: query %s: %w", atom.Predicate.Symbol, err)
	}
	return found, nil
}

// byInspectionDecider adapts ByInspection to the Decider interface; the
// facade in pkg/logos re-exports the standalone ByInspection function
// below, not this adapter.
type byInspectionDecider struct{}

func (byInspectionDecider) Decide(ctx context.Context, p prop.Proposition) (prop.Proposition, *provenance.Log, error) {
	return ByInspection(ctx, p)
}

// NewByInspectionDecider returns the Decider backed by ByInspection.
func NewByInspectionDecider() Decider { return byInspectionDecider{} }

// ByInspection decides a ground Prime/Divides/LessThan proposition (or
// its direct negation) by computing the ground truth with exact Go
// arithmetic, then asserting and re-querying the resulting fact through
// an embedded mangle engine. IsContainedIn and IsSubsetOf propositions,
// like every other shape, are refused with OracleRefused.
func ByInspection(ctx context.Context, p prop.Proposition) (prop.Proposition, *provenance.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	truth, ok := evaluateGround(p)
	if !ok {
		return nil, nil, kernelerr.Refused("by_inspection", "proposition shape is not expressible in the base schema")
	}
	if !truth {
		return nil, nil, kernelerr.Refused("by_inspection", "ground fact does not hold")
	}

	eng, err := newEngine()
	if err != nil {
		return nil, nil, err
	}
	atom, err := assertGroundFact(eng, p)
	if err != nil {
		return nil, nil, fmt.Errorf("oracle: %w", err)
	}
	holds, err := eng.holds(atom)
	if err != nil {
		return nil, nil, err
	}
	if !holds {
		return nil, nil, kernelerr.Refused("by_inspection", "fact store did not retain the asserted fact")
	}

	log := provenance.NewLog()
	ref := log.Append("by_inspection", nil, p.String(), true)
	return prop.Mint(p, ref, 0), log, nil
}

// evaluateGround computes whether p (a Prime/Relation ground atom, or
// the negation of one) holds, using exact integer/name comparisons. ok
// is false when p's shape isn't one ByInspection knows how to decide.
func evaluateGround(p prop.Proposition) (truth bool, ok bool) {
	if n, isNot := p.(prop.Not); isNot {
		inner, innerOK := evaluateGround(n.Arg)
		if !innerOK {
			return false, false
		}
		return !inner, true
	}

	switch c := p.(type) {
	case prop.Prime:
		n, ok := intValue(c.Arg)
		if !ok {
			return false, false
		}
		return isPrime(n), true
	case prop.Relation:
		switch c.Kind {
		case prop.KindDivides:
			d, ok1 := intValue(c.Left)
			n, ok2 := intValue(c.Right)
			if !ok1 || !ok2 || d == 0 {
				return false, false
			}
			return n%d == 0, true
		case prop.KindLessThan:
			a, ok1 := intValue(c.Left)
			b, ok2 := intValue(c.Right)
			if !ok1 || !ok2 {
				return false, false
			}
			return a < b, true
		case prop.KindIsContainedIn, prop.KindIsSubsetOf:
			// The base schema carries no derivation rules for membership
			// or subset, so ByInspection neither confirms nor refutes
			// one: both are reported as undecidable here.
			return false, false
		}
	}
	return false, false
}

// assertGroundFact maps the (possibly Not-wrapped) decided proposition
// onto one fact in the base schema.
func assertGroundFact(e *engine, p prop.Proposition) (ast.Atom, error) {
	core := p
	if n, isNot := p.(prop.Not); isNot {
		core = n.Arg
	}
	switch c := core.(type) {
	case prop.Prime:
		n, ok := intValue(c.Arg)
		if !ok {
			return ast.Atom{}, fmt.Errorf("prime argument is not a ground integer")
		}
		return e.assert("prime", ast.Number(n))
	case prop.Relation:
		switch c.Kind {
		case prop.KindDivides:
			d, ok1 := intValue(c.Left)
			n, ok2 := intValue(c.Right)
			if !ok1 || !ok2 {
				return ast.Atom{}, fmt.Errorf("divides arguments are not ground integers")
			}
			return e.assert("divides", ast.Number(d), ast.Number(n))
		case prop.KindLessThan:
			a, ok1 := intValue(c.Left)
			b, ok2 := intValue(c.Right)
			if !ok1 || !ok2 {
				return ast.Atom{}, fmt.Errorf("less arguments are not ground integers")
			}
			return e.assert("less", ast.Number(a), ast.Number(b))
		}
	}
	return ast.Atom{}, fmt.Errorf("no base schema predicate for %s", core)
}

func intValue(t term.Term) (int64, bool) {
	c, ok := t.(term.Constant)
	if !ok || c.Value == nil || !c.Value.IsInt() {
		return 0, false
	}
	return c.Value.Num().Int64(), true
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
