package prompt

import (
	"strings"
	"testing"
)

func TestBuild_SubstitutesContext(t *testing.T) {
	for _, task := range []Task{TaskSummary, TaskProcedure, TaskViva, TaskNotes} {
		got, err := Build(task, Input{Context: "CONTEXT-MARKER"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", task, err)
		}
		if !strings.Contains(got, "CONTEXT-MARKER") {
			t.Errorf("%s: context not substituted into prompt", task)
		}
	}
}

func TestBuild_QuestionTemplate(t *testing.T) {
	got, err := Build(TaskQuestion, Input{Context: "CTX", Question: "What is the aim?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "CTX") || !strings.Contains(got, "What is the aim?") {
		t.Errorf("expected both context and question in prompt, got %q", got)
	}
	if !strings.Contains(got, "Not available in the lab manual context.") {
		t.Errorf("expected grounding instruction in prompt")
	}
}

func TestBuild_StructureTemplate(t *testing.T) {
	got, err := Build(TaskStructure, Input{Experiment: "Experiment 1\nAim..."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Experiment 1\nAim...") {
		t.Errorf("expected experiment text substituted, got %q", got)
	}
	if !strings.Contains(got, `"procedure": "..."`) {
		t.Errorf("expected JSON format instruction, got %q", got)
	}
}

func TestBuild_UnknownTask(t *testing.T) {
	if _, err := Build(Task("poetry"), Input{}); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestRetrievalFor(t *testing.T) {
	tests := []struct {
		task Task
		k    int
	}{
		{TaskSummary, 10},
		{TaskProcedure, 8},
		{TaskViva, 6},
		{TaskNotes, 8},
		{TaskQuestion, 4},
	}
	for _, tt := range tests {
		r, ok := RetrievalFor(tt.task)
		if !ok {
			t.Fatalf("%s: expected a retrieval entry", tt.task)
		}
		if r.TopK != tt.k {
			t.Errorf("%s: expected k=%d, got %d", tt.task, tt.k, r.TopK)
		}
	}
	if _, ok := RetrievalFor(TaskStructure); ok {
		t.Error("structure task should not retrieve")
	}
}

func TestParseTask(t *testing.T) {
	if task, err := ParseTask(" Summary "); err != nil || task != TaskSummary {
		t.Errorf("expected summary, got %v (%v)", task, err)
	}
	if _, err := ParseTask("structure"); err == nil {
		t.Error("structure is not a routable generation task")
	}
}
