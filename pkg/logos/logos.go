// Package logos is the module's public facade: every constructor,
// inference rule, the assumption-context stack, the prover, and the
// oracles, re-exported from one import path so a caller never needs to
// know the internal package layout. It adds no logic of its own beyond
// aliasing — unlike the teacher's pkg/mangle shim, which grew a
// PRD-style comment block and hand duplicated types instead of plain
// aliases, this facade is kept to type aliases, var aliases, and one
// small rendering helper.
package logos

import (
	"context"

	"logos/config"
	"logos/oracle"
	"logos/prop"
	"logos/propctx"
	"logos/prover"
	"logos/provenance"
	"logos/rules"
	"logos/term"
)

// Term constructors.
var (
	NewVariable   = term.NewVariable
	NewConstant   = term.NewConstant
	NewNumber     = term.NewNumber
	NewRat        = term.NewRat
	NewSetSymbol  = term.NewSetSymbol
	NewExpr       = term.NewExpr
)

type (
	Term       = term.Term
	Variable   = term.Variable
	Constant   = term.Constant
	SetSymbol  = term.SetSymbol
	Expr       = term.Expr
	ExprOp     = term.ExprOp
	Attributes = term.Attributes
)

// Proposition constructors.
var (
	NewAtom          = prop.NewAtom
	NewNot           = prop.NewNot
	NewAnd           = prop.NewAnd
	NewOr            = prop.NewOr
	NewExOr          = prop.NewExOr
	NewImplies       = prop.NewImplies
	NewIff           = prop.NewIff
	NewForall        = prop.NewForall
	NewExists        = prop.NewExists
	NewExistsUnique  = prop.NewExistsUnique
	NewForallInSet   = prop.NewForallInSet
	NewExistsInSet   = prop.NewExistsInSet
	NewEquals        = prop.NewEquals
	NewLessThan      = prop.NewLessThan
	NewGreaterThan   = prop.NewGreaterThan
	NewLessOrEqual   = prop.NewLessOrEqual
	NewGreaterOrEqual = prop.NewGreaterOrEqual
	NewIsContainedIn = prop.NewIsContainedIn
	NewIsSubsetOf    = prop.NewIsSubsetOf
	NewDivides       = prop.NewDivides
	NewPrime         = prop.NewPrime
	NewContradiction = prop.NewContradiction
)

type Proposition = prop.Proposition

// Inference rules (§4.2).
var (
	ModusPonens             = rules.ModusPonens
	ModusTollens            = rules.ModusTollens
	And                     = rules.And
	Or                      = rules.Or
	ByCases                 = rules.ByCases
	HypotheticalSyllogism   = rules.HypotheticalSyllogism
	Contrapositive          = rules.Contrapositive
	IffForward              = rules.IffForward
	IffBackward             = rules.IffBackward
	Resolve                 = rules.Resolve
	UnitResolve             = rules.UnitResolve
	DeMorgan                = rules.DeMorgan
	DoubleNegationElim      = rules.DoubleNegationElim
	UniversalInstantiation  = rules.UniversalInstantiation
	ExistentialIntroduction = rules.ExistentialIntroduction
	ExistentialElimination  = rules.ExistentialElimination
	Substitute              = rules.Substitute
	Contradicts             = rules.Contradicts
	ExFalso                 = rules.ExFalso
)

type Side = rules.Side

const (
	SideLeftToRight = rules.SideLeftToRight
	SideRightToLeft = rules.SideRightToLeft
)

// Context is the assumption-context stack (§4.1).
type Context = propctx.Stack

// NewContext opens a fresh assumption-context stack with its own
// provenance log.
func NewContext() *Context { return propctx.New() }

// Config is the kernel's configuration record (§4.6).
type Config = config.Config

var DefaultConfig = config.DefaultConfig
var LoadConfigYAML = config.LoadYAML

// Prove runs the backward proof search (§4.4).
func Prove(ctx context.Context, premises []Proposition, goal Proposition, cfg Config) (Proposition, *provenance.Log, error) {
	return prover.Prove(ctx, premises, goal, cfg)
}

// Oracle entry points (§4.5).
var (
	ByInspection    = oracle.ByInspection
	ByEval          = oracle.ByEval
	BySimplification = oracle.BySimplification
)

type OracleDecider = oracle.Decider

// RenderProof renders the derivation of p as an ASCII proof tree, using
// log to resolve each step p.Inference() points into.
func RenderProof(p Proposition, log *provenance.Log) string {
	return provenance.RenderASCII(log, p.Inference())
}
