package review

import (
	"context"
	"strings"
	"testing"

	"github.com/tokamak-network/reportgen/internal/llm"
)

func TestReviewer_ParsesCritique(t *testing.T) {
	fake := &llm.FakeClient{Response: `{"issues": [{"description": "vague", "original_text": "a", "revised_text": "b"}],
		"strengths": ["thorough"], "overall_score": 7, "summary": "decent"}`}
	r := NewReviewer(llm.NewChain(fake))

	res, diags := r.Review(context.Background(), "report body", "technical", DefaultPersona())
	if len(diags) != 0 {
		t.Fatalf("diags = %v", diags)
	}
	if res.OverallScore != 7 || res.Persona != "General Reader" {
		t.Fatalf("res = %+v", res)
	}
	if res.Issues[0].Severity != "medium" {
		t.Fatalf("missing severity default: %+v", res.Issues[0])
	}
	if fake.Calls() != 1 {
		t.Fatalf("calls = %d", fake.Calls())
	}
	prompt := fake.Prompts()[0]
	if !strings.Contains(prompt, "General Reader") || !strings.Contains(prompt, "report body") {
		t.Fatalf("prompt missing persona or report: %q", prompt)
	}
}

func TestReviewer_RetriesOnceOnEmptyCritique(t *testing.T) {
	fake := &llm.FakeClient{Response: `{"issues": [], "strengths": [], "overall_score": 5, "summary": ""}`}
	r := NewReviewer(llm.NewChain(fake))

	res, _ := r.Review(context.Background(), "report body", "public", Personas[4])
	if fake.Calls() != 2 {
		t.Fatalf("calls = %d, want exactly one retry", fake.Calls())
	}
	if len(res.Issues) != 0 || len(res.Strengths) != 0 {
		t.Fatalf("res = %+v", res)
	}
	retryPrompt := fake.Prompts()[1]
	if !strings.Contains(retryPrompt, "previous answer was not valid JSON") {
		t.Fatalf("retry prompt not stricter: %q", retryPrompt)
	}
}

func TestReviewer_NoProviders(t *testing.T) {
	r := NewReviewer(llm.NewChain())
	res, diags := r.Review(context.Background(), "report", "technical", DefaultPersona())
	if res.OverallScore != 5 || len(diags) != 1 {
		t.Fatalf("res=%+v diags=%v", res, diags)
	}
}

func TestPersonaByName(t *testing.T) {
	if p, ok := PersonaByName("blockchain architect"); !ok || p.Level != 5 {
		t.Fatalf("p=%+v ok=%v", p, ok)
	}
	if _, ok := PersonaByName("Random Person"); ok {
		t.Fatal("unknown persona accepted")
	}
	if len(Personas) != 5 {
		t.Fatalf("personas = %d", len(Personas))
	}
}

func TestImprover_DeterministicWithoutProviders(t *testing.T) {
	im := NewImprover(llm.NewChain())
	reviews := []Result{{
		Issues: []Issue{
			{OriginalText: "ZK-SNARK circuit", RevisedText: "privacy proof system"},
			{OriginalText: "missing text", RevisedText: "ignored"},
			{OriginalText: "", RevisedText: "no-op"},
		},
	}}
	report := "We shipped the ZK-SNARK circuit this period."
	got, diags := im.Improve(context.Background(), report, "public", reviews)
	if diags != nil {
		t.Fatalf("diags = %v", diags)
	}
	if got != "We shipped the privacy proof system this period." {
		t.Fatalf("got %q", got)
	}
}

func TestImprover_NoEditsReturnsOriginal(t *testing.T) {
	im := NewImprover(llm.NewChain())
	report := "untouched"
	got, _ := im.Improve(context.Background(), report, "technical", []Result{{}})
	if got != report {
		t.Fatalf("got %q", got)
	}
}

func TestImprover_UsesModelWhenAvailable(t *testing.T) {
	fake := &llm.FakeClient{Response: "Rewritten report."}
	im := NewImprover(llm.NewChain(fake))
	reviews := []Result{{Issues: []Issue{{OriginalText: "a", RevisedText: "b"}}}}

	got, _ := im.Improve(context.Background(), "report with a inside", "technical", reviews)
	if got != "Rewritten report." {
		t.Fatalf("got %q", got)
	}
	prompt := fake.Prompts()[0]
	if !strings.Contains(prompt, "SUBSTITUTIONS") || !strings.Contains(prompt, `"a"`) {
		t.Fatalf("prompt = %q", prompt)
	}
}
