package provenance

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendAndGet(t *testing.T) {
	log := NewLog()
	ref := log.Append("premise", nil, "P", false)
	step, ok := log.Get(ref)
	if !ok {
		t.Fatalf("Get(%d): not found", ref)
	}
	if step.Rule != "premise" || step.Result != "P" {
		t.Errorf("got %+v", step)
	}
	if log.Len() != 1 {
		t.Errorf("Len() = %d, want 1", log.Len())
	}
}

func TestAppendCopiesInputsSlice(t *testing.T) {
	log := NewLog()
	inputs := []StepRef{1, 2}
	ref := log.Append("rule", inputs, "R", false)
	inputs[0] = 99

	got, _ := log.Get(ref)
	want := Step{Rule: "rule", Inputs: []StepRef{1, 2}, Result: "R"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Append should snapshot its Inputs slice (-want +got):\n%s", diff)
	}
}

func TestGetRejectsNoStepAndOutOfRange(t *testing.T) {
	log := NewLog()
	if _, ok := log.Get(NoStep); ok {
		t.Errorf("Get(NoStep) should fail")
	}
	if _, ok := log.Get(StepRef(99)); ok {
		t.Errorf("Get(99) should fail on an empty log")
	}
}

func TestRenderASCIIShowsRuleAndInputChain(t *testing.T) {
	log := NewLog()
	p := log.Append("premise", nil, "P", false)
	q := log.Append("premise", nil, "P -> Q", false)
	concl := log.Append("modus_ponens", []StepRef{p, q}, "Q", false)

	out := RenderASCII(log, concl)
	if !strings.HasPrefix(out, "Q\n") {
		t.Errorf("expected root line Q, got %q", out)
	}
	if !strings.Contains(out, "P [premise]") || !strings.Contains(out, "P -> Q [premise]") {
		t.Errorf("expected both premises rendered, got %q", out)
	}
}

func TestRenderASCIIUnprovenRoot(t *testing.T) {
	log := NewLog()
	if got := RenderASCII(log, StepRef(42)); got != "<unproven>" {
		t.Errorf("got %q, want <unproven>", got)
	}
}

func TestRenderJSONRoundTripsShape(t *testing.T) {
	log := NewLog()
	p := log.Append("oracle_fact", nil, "Prime(7)", true)
	out, err := RenderJSON(log, p)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !strings.Contains(string(out), `"oracle": true`) {
		t.Errorf("expected oracle flag in JSON, got %s", out)
	}
}
