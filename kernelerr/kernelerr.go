// Package kernelerr defines the error taxonomy shared by the proof kernel,
// the prover, and the oracle subsystem.
package kernelerr

import "fmt"

// Kind classifies a kernel error so callers can branch with errors.As
// instead of matching on strings.
type Kind int

const (
	// RuleNotApplicable means a rule's structural precondition failed:
	// wrong connective, arity mismatch, or similar shape violation.
	RuleNotApplicable Kind = iota
	// UnprovenInput means an input's Proven flag was false, or the frame
	// it was minted in has closed. Rules check this before any structural
	// precondition, so an unproven input of the wrong shape also yields
	// UnprovenInput.
	UnprovenInput
	// ContextMisuse means Close without Open, Conclude outside a frame,
	// or closing a frame that still owns live references.
	ContextMisuse
	// NoRuleApplies means the prover exhausted its rule table.
	NoRuleApplies
	// OracleRefused means an oracle could not decide a proposition.
	OracleRefused
	// CaptureViolation means a substitution attempted to capture a
	// variable; this is an internal invariant check, never expected from
	// a correctly implemented substitution walker.
	CaptureViolation
)

func (k Kind) String() string {
	switch k {
	case RuleNotApplicable:
		return "RuleNotApplicable"
	case UnprovenInput:
		return "UnprovenInput"
	case ContextMisuse:
		return "ContextMisuse"
	case NoRuleApplies:
		return "NoRuleApplies"
	case OracleRefused:
		return "OracleRefused"
	case CaptureViolation:
		return "CaptureViolation"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned throughout the kernel.
type Error struct {
	Kind   Kind
	Rule   string // rule or operation that failed, e.g. "modus_ponens"
	Reason string
	Goal   string // set by NoRuleApplies
}

func (e *Error) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Rule, e.Reason)
}

// New builds an Error of the given kind.
func New(kind Kind, rule, reason string) *Error {
	return &Error{Kind: kind, Rule: rule, Reason: reason}
}

// NotApplicable is a convenience constructor for the common case.
func NotApplicable(rule, reason string) *Error {
	return New(RuleNotApplicable, rule, reason)
}

// Unproven is a convenience constructor for UnprovenInput.
func Unproven(rule, reason string) *Error {
	return New(UnprovenInput, rule, reason)
}

// Misuse is a convenience constructor for ContextMisuse.
func Misuse(op, reason string) *Error {
	return New(ContextMisuse, op, reason)
}

// NoRule builds a NoRuleApplies error carrying the failing goal's
// rendered form for diagnostics.
func NoRule(goal string) *Error {
	return &Error{Kind: NoRuleApplies, Reason: "exhausted rule table", Goal: goal}
}

// Refused builds an OracleRefused error.
func Refused(oracleName, reason string) *Error {
	return New(OracleRefused, oracleName, reason)
}

// Is allows errors.Is(err, kernelerr.NotApplicable("", "")) style checks:
// when the target is an *Error it compares only Kind, ignoring the
// target's Rule, Reason, and Goal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
