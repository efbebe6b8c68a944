package generate

import (
	"context"
	"strings"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/heuristic"
)

// GenerateHighlight produces the executive highlight paragraph, degrading to
// the deterministic composer when AI is off or every provider fails.
func (g *Generator) GenerateHighlight(ctx context.Context, reportType string, summaries map[string]activity.Summary, totalCommits, totalPRs, totalRepos int, useAI bool) (string, []string) {
	if !useAI || !g.chain.Available() {
		return heuristicHighlight(reportType, summaries, totalCommits, totalPRs, totalRepos), nil
	}
	prompt := BuildHighlightPrompt(reportType, summaries, totalCommits, totalPRs, totalRepos)
	text, diags := g.chain.Complete(ctx, prompt)
	if strings.TrimSpace(text) == "" {
		return heuristicHighlight(reportType, summaries, totalCommits, totalPRs, totalRepos), diags
	}
	return strings.TrimSpace(text), diags
}

func heuristicHighlight(reportType string, summaries map[string]activity.Summary, totalCommits, totalPRs, totalRepos int) string {
	if reportType == TypePublic {
		return heuristic.GeneratePublicHighlight(summaries)
	}
	return heuristic.GenerateTechnicalHighlight(totalCommits, totalPRs, totalRepos, summaries)
}
