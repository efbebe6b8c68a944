package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/tokamak-network/reportgen/internal/llm"
)

// Improver applies reviewer-suggested edits back onto report text.
type Improver struct {
	chain *llm.Chain
}

func NewImprover(chain *llm.Chain) *Improver {
	return &Improver{chain: chain}
}

// Improve applies the original_text -> revised_text substitutions from the
// given reviews. With a usable chain the model performs the edits so
// surrounding prose stays coherent; otherwise, or when the model returns
// nothing, the substitutions are applied literally. The report always comes
// back, edited or not.
func (im *Improver) Improve(ctx context.Context, report, reportType string, reviews []Result) (string, []string) {
	edits := collectEdits(reviews)
	if len(edits) == 0 {
		return report, nil
	}

	if im.chain != nil && im.chain.Available() {
		prompt := buildImprovePrompt(report, reportType, edits)
		text, diags := im.chain.Complete(ctx, prompt)
		if improved := strings.TrimSpace(text); improved != "" {
			return improved, diags
		}
		return applyEdits(report, edits), diags
	}
	return applyEdits(report, edits), nil
}

type edit struct {
	original string
	revised  string
	reason   string
}

// collectEdits keeps only issues carrying both sides of the substitution,
// deduplicated by original text, review order preserved.
func collectEdits(reviews []Result) []edit {
	seen := make(map[string]bool)
	var edits []edit
	for _, r := range reviews {
		for _, issue := range r.Issues {
			orig := strings.TrimSpace(issue.OriginalText)
			rev := strings.TrimSpace(issue.RevisedText)
			if orig == "" || rev == "" || orig == rev || seen[orig] {
				continue
			}
			seen[orig] = true
			edits = append(edits, edit{original: orig, revised: rev, reason: issue.Description})
		}
	}
	return edits
}

// applyEdits is the deterministic fallback: first occurrence only, unmatched
// originals skipped.
func applyEdits(report string, edits []edit) string {
	for _, e := range edits {
		report = strings.Replace(report, e.original, e.revised, 1)
	}
	return report
}

func buildImprovePrompt(report, reportType string, edits []edit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Revise this %s progress report by applying ONLY the substitutions listed below.\n", reportType)
	b.WriteString("Do not rewrite anything else. Keep every section header, bullet style, and link exactly as-is.\n\n")
	b.WriteString("SUBSTITUTIONS:\n")
	for i, e := range edits {
		fmt.Fprintf(&b, "%d. Replace: %q\n   With: %q\n", i+1, e.original, e.revised)
		if e.reason != "" {
			fmt.Fprintf(&b, "   Reason: %s\n", e.reason)
		}
	}
	b.WriteString("\nReturn the complete revised report and nothing else.\n\nREPORT:\n")
	b.WriteString(report)
	return b.String()
}
