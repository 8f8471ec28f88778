// Package propctx implements the assumption context stack: the LIFO
// frame stack that supports hypothetical reasoning (implication
// introduction) and universal generalization. A Stack is an explicit
// value passed by the caller rather than process-wide state, so multiple
// independent proofs can coexist (see SPEC_FULL.md §5).
package propctx

import (
	"github.com/google/uuid"

	"logos/kernelerr"
	"logos/prop"
	"logos/provenance"
	"logos/term"
)

// FrameID identifies a frame for diagnostics; frame 0 is the root.
type FrameID int

type frame struct {
	id           FrameID
	assumptions  []prop.Proposition
	declaredVars []term.Variable
	concluded    []prop.Proposition
}

// Stack is the assumption context stack. Because Proposition values are
// immutable Go values, "invalidating" a proposition on Close does not
// (and cannot) reach back into copies the caller already holds; instead
// Close removes the frame's bookkeeping so nothing further derived
// through this Stack can rely on assumptions that are no longer open.
// This is the Go-idiomatic reading of the discharge invariant in
// SPEC_FULL.md §8 (see DESIGN.md, "Frame-close invalidation").
type Stack struct {
	frames    []*frame
	log       *provenance.Log
	nextFrame FrameID
	sessionID string
}

// New returns a Stack with its root frame (id 0) already open, owning a
// fresh provenance log, and tagged with a fresh session id for log
// correlation across concurrently running proofs.
func New() *Stack {
	s := &Stack{log: provenance.NewLog(), sessionID: uuid.New().String()}
	s.frames = []*frame{{id: 0}}
	return s
}

// Log returns the provenance log backing this proof session.
func (s *Stack) Log() *provenance.Log { return s.log }

// SessionID returns the unique id minted for this Stack at New, suitable
// for correlating log lines across a single proof search.
func (s *Stack) SessionID() string { return s.sessionID }

// Depth reports the number of frames currently open, including the root.
func (s *Stack) Depth() int { return len(s.frames) }

func (s *Stack) top() *frame {
	return s.frames[len(s.frames)-1]
}

// CurrentFrame returns the id of the innermost open frame.
func (s *Stack) CurrentFrame() FrameID {
	return s.top().id
}

// FrameLive reports whether frame id f is still open on this stack.
// Frame ids are minted once by Open and never reused, so membership in
// the current open chain exactly identifies whether the frame (and any
// assumption or declared variable it owns) is still live. Package rules
// calls this from checkProven to reject a proposition whose owning frame
// has since closed, implementing the invalidate-on-close invariant
// without needing to mutate propositions the caller already holds.
func (s *Stack) FrameLive(f int) bool {
	for _, fr := range s.frames {
		if int(fr.id) == f {
			return true
		}
	}
	return false
}

// Open pushes a new frame and returns its id.
func (s *Stack) Open() FrameID {
	s.nextFrame++
	f := &frame{id: s.nextFrame}
	s.frames = append(s.frames, f)
	return f.id
}

// DeclareVariable creates a fresh Variable owned by the current frame.
// Close wraps every proposition concluded in this frame in Forall v. for
// it, whether or not the conclusion mentions the variable.
func (s *Stack) DeclareVariable(name string, attrs term.Attributes) term.Variable {
	v := term.NewVariable(name, attrs)
	s.top().declaredVars = append(s.top().declaredVars, v)
	return v
}

// Assume marks p as proven with IsAssumption set, owned by the current
// frame, and records it as a live assumption of that frame.
func (s *Stack) Assume(p prop.Proposition) (prop.Proposition, error) {
	f := s.top()
	ref := s.log.Append("assume", nil, p.String(), false)
	assumed := prop.AsAssumption(p, ref, int(f.id))
	f.assumptions = append(f.assumptions, assumed)
	return assumed, nil
}

// Conclude records p as a desired conclusion of the current frame. A
// no-op if p is not proven.
func (s *Stack) Conclude(p prop.Proposition) {
	if !p.Proven() {
		return
	}
	f := s.top()
	f.concluded = append(f.concluded, p)
}

// GetProven returns the propositions concluded in the current frame so
// far (used by callers inspecting in-progress state; returns an empty
// slice, never an error, if nothing has been concluded yet).
func (s *Stack) GetProven() []prop.Proposition {
	return append([]prop.Proposition(nil), s.top().concluded...)
}

// Close pops the current frame. For every proposition concluded in it,
// Close wraps the conclusion in an implication for each live assumption
// (innermost assumption, i.e. the most recently assumed, becomes the
// outermost antecedent) and then in a Forall for each declared variable
// (first declared is outermost), and mints the result as proven in the
// enclosing frame with provenance "close_assumptions_context". It
// returns the minted conclusions, in the order they were concluded.
func (s *Stack) Close() ([]prop.Proposition, error) {
	if len(s.frames) <= 1 {
		return nil, kernelerr.Misuse("close", "no frame open")
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	enclosing := s.top()

	results := make([]prop.Proposition, 0, len(f.concluded))
	for _, p := range f.concluded {
		wrapped := p
		for _, a := range f.assumptions {
			wrapped = prop.NewImplies(a, wrapped)
		}
		for i := len(f.declaredVars) - 1; i >= 0; i-- {
			wrapped = prop.NewForall(f.declaredVars[i], wrapped)
		}
		inputs := []provenance.StepRef{p.Inference()}
		for _, a := range f.assumptions {
			inputs = append(inputs, a.Inference())
		}
		ref := s.log.Append("close_assumptions_context", inputs, wrapped.String(), false)
		minted := prop.Mint(wrapped, ref, int(enclosing.id))
		enclosing.concluded = append(enclosing.concluded, minted)
		results = append(results, minted)
	}
	return results, nil
}
