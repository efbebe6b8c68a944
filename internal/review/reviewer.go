package review

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tokamak-network/reportgen/internal/llm"
)

const (
	maxReportChars  = 24000
	retryExcerpt    = 6000
	defaultSeverity = "medium"
)

// Reviewer runs persona critiques against an LLM chain.
type Reviewer struct {
	chain *llm.Chain
}

func NewReviewer(chain *llm.Chain) *Reviewer {
	return &Reviewer{chain: chain}
}

// Review critiques a report as the given persona. reportType selects the
// technical or public prompt variant. The result is always well formed; when
// every provider fails the low-confidence fallback is returned along with the
// provider diagnostics.
func (r *Reviewer) Review(ctx context.Context, report, reportType string, persona Persona) (Result, []string) {
	if !r.chain.Available() {
		res := fallbackResult()
		res.Persona = persona.Name
		return res, []string{"no providers configured"}
	}

	prompt := buildReviewPrompt(report, reportType, persona, false)
	text, diags := r.chain.Complete(ctx, prompt)
	res := ParseResult(text)

	// A contentless critique usually means the model ignored the JSON
	// contract; one stricter retry against a shorter excerpt.
	if len(res.Issues) == 0 && len(res.Strengths) == 0 {
		log.Printf("review: empty critique from %s persona, retrying strict", persona.Name)
		retryPrompt := buildReviewPrompt(excerpt(report, retryExcerpt), reportType, persona, true)
		text, retryDiags := r.chain.Complete(ctx, retryPrompt)
		diags = append(diags, retryDiags...)
		if retry := ParseResult(text); len(retry.Issues) > 0 || len(retry.Strengths) > 0 {
			res = retry
		}
	}

	for i := range res.Issues {
		if res.Issues[i].Severity == "" {
			res.Issues[i].Severity = defaultSeverity
		}
	}
	res.Persona = persona.Name
	return res, diags
}

func buildReviewPrompt(report, reportType string, persona Persona, strict bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are reviewing a %s progress report for Tokamak Network as a %s (%s).\n%s\n\n",
		reportType, persona.Name, persona.Description, persona.Instruction)

	if reportType == "public" {
		b.WriteString("The report targets investors and community members; readability and business clarity matter most.\n\n")
	} else {
		b.WriteString("The report targets engineers; technical accuracy and concrete detail matter most.\n\n")
	}

	b.WriteString("Return ONLY a JSON object, no markdown fences, with exactly these fields:\n")
	b.WriteString(`{"issues": [{"category": "...", "description": "...", "suggestion": "...", "severity": "low|medium|high", "original_text": "exact text from the report", "revised_text": "your replacement"}], "strengths": ["..."], "overall_score": 1-10, "summary": "..."}` + "\n\n")
	b.WriteString("Each issue must quote original_text verbatim from the report and give a drop-in revised_text replacement.\n")
	if strict {
		b.WriteString("Your previous answer was not valid JSON or contained no feedback. Respond with the JSON object only. Find at least one issue or one strength.\n")
	}
	b.WriteString("\nREPORT:\n")
	b.WriteString(excerpt(report, maxReportChars))
	return b.String()
}

func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n[report truncated]"
}
