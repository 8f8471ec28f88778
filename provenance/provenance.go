// Package provenance owns the append-only arena of proof steps every
// proven proposition indexes into. Storing provenance as arena indices
// rather than owning pointers avoids the cyclic-reference problem a
// proposition-to-provenance-to-proposition graph would otherwise create.
package provenance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StepRef is an index into a Log. The zero value, NoStep, means "not yet
// derived".
type StepRef int

// NoStep is the zero StepRef, used by unproven propositions.
const NoStep StepRef = 0

// Step records one proof action: a rule name, the StepRef of each input
// proposition (empty for assumptions and oracle leaves), the rendered
// result, and whether it was minted by a trusted oracle rather than a
// checked inference rule.
type Step struct {
	Rule     string
	Inputs   []StepRef
	Result   string
	IsOracle bool
}

// Log is an append-only arena of Steps. A Log is owned by exactly one
// proof session (see package propctx); it is never shared across
// concurrently-running proofs.
type Log struct {
	steps []Step // index 0 is a sentinel so StepRef 0 == NoStep
}

// NewLog returns an empty Log with its sentinel entry in place.
func NewLog() *Log {
	return &Log{steps: []Step{{Rule: "<none>"}}}
}

// Append records a new Step and returns its StepRef.
func (l *Log) Append(rule string, inputs []StepRef, result string, isOracle bool) StepRef {
	l.steps = append(l.steps, Step{
		Rule:     rule,
		Inputs:   append([]StepRef(nil), inputs...),
		Result:   result,
		IsOracle: isOracle,
	})
	return StepRef(len(l.steps) - 1)
}

// Get retrieves a Step by reference.
func (l *Log) Get(ref StepRef) (Step, bool) {
	if ref <= NoStep || int(ref) >= len(l.steps) {
		return Step{}, false
	}
	return l.steps[ref], true
}

// Len reports the number of recorded steps, excluding the sentinel.
func (l *Log) Len() int {
	return len(l.steps) - 1
}

// RenderASCII walks the Inputs tree rooted at ref and prints a
// deduced_from tree, in the shape of a proof-tree display.
func RenderASCII(log *Log, root StepRef) string {
	var sb strings.Builder
	step, ok := log.Get(root)
	if !ok {
		return "<unproven>"
	}
	sb.WriteString(step.Result + "\n")
	renderChildren(&sb, log, step, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, log *Log, step Step, prefix string) {
	for i, ref := range step.Inputs {
		child, ok := log.Get(ref)
		last := i == len(step.Inputs)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		if !ok {
			sb.WriteString(fmt.Sprintf("%s%s<assumption>\n", prefix, connector))
			continue
		}
		tag := child.Rule
		if child.IsOracle {
			tag = "oracle:" + tag
		}
		sb.WriteString(fmt.Sprintf("%s%s%s [%s]\n", prefix, connector, child.Result, tag))
		renderChildren(sb, log, child, childPrefix)
	}
}

type jsonNode struct {
	Result   string      `json:"result"`
	Rule     string      `json:"rule,omitempty"`
	IsOracle bool        `json:"oracle,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

// RenderJSON renders the same tree as RenderASCII in JSON form.
func RenderJSON(log *Log, root StepRef) ([]byte, error) {
	step, ok := log.Get(root)
	if !ok {
		return nil, fmt.Errorf("provenance: no step at %d", root)
	}
	node := buildJSONNode(log, step)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func buildJSONNode(log *Log, step Step) *jsonNode {
	n := &jsonNode{Result: step.Result, Rule: step.Rule, IsOracle: step.IsOracle}
	for _, ref := range step.Inputs {
		child, ok := log.Get(ref)
		if !ok {
			n.Children = append(n.Children, &jsonNode{Result: "<assumption>"})
			continue
		}
		n.Children = append(n.Children, buildJSONNode(log, child))
	}
	return n
}
