package generate

import (
	"fmt"
	"strings"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/classify"
)

// Report types.
const (
	TypeTechnical = "technical"
	TypePublic    = "public"
)

// Report formats.
const (
	FormatConcise       = "concise"
	FormatStructured    = "structured"
	FormatComprehensive = "comprehensive"
)

// formatInstructions selects the output-shape block appended to every
// section prompt.
var formatInstructions = map[string]string{
	FormatConcise: "Output exactly one summary sentence followed by 5 bullet points. No headers.",
	FormatStructured: "Output a short title line, a 2-3 sentence overview paragraph, then 6-8 bullet points. " +
		"Use '### ' for the title.",
	FormatComprehensive: "Output a full section using markdown headers: start with '## <name>', then '### Overview' " +
		"(2-4 sentences), '### Key Accomplishments' (bullet points), '### Code Analysis' (1-2 sentences on the " +
		"scale and nature of changes), '### Next Steps' (1-2 sentences).",
}

// BuildSectionPrompt assembles the role-instruction prompt for one section.
func BuildSectionPrompt(reportType, format string, sum activity.Summary, info classify.SectionInfo) string {
	var b strings.Builder

	commitLimit := 20
	var commitLines []string
	for i, c := range sum.TopCommits {
		if i >= commitLimit {
			break
		}
		if reportType == TypeTechnical {
			commitLines = append(commitLines, fmt.Sprintf("- [%s] %s (sha: %s)", c.Repo, c.Message, c.SHA))
		} else {
			commitLines = append(commitLines, fmt.Sprintf("- [%s] %s", c.Repo, c.Message))
		}
	}
	var prLines []string
	for i, pr := range sum.MergedPRList {
		if i >= 10 {
			break
		}
		prLines = append(prLines, fmt.Sprintf("- [%s] PR#%s: %s", pr.Repo, pr.Number, pr.Title))
	}

	if reportType == TypeTechnical {
		fmt.Fprintf(&b, "You are writing a development report section for Tokamak Network's %s team.\n\n", info.Title)
		fmt.Fprintf(&b, "Project Context: %s\n", info.Context)
		fmt.Fprintf(&b, "Total commits: %d\nMerged PRs: %d\nLines added: %d\nLines deleted: %d\n\n",
			sum.TotalCommits, sum.MergedPRs, sum.LinesAdded, sum.LinesDeleted)
		fmt.Fprintf(&b, "Top commits:\n%s\n\n", strings.Join(commitLines, "\n"))
		if len(prLines) > 0 {
			fmt.Fprintf(&b, "Merged PRs:\n%s\n\n", strings.Join(prLines, "\n"))
		}
		b.WriteString("Rules:\n")
		b.WriteString("1. Each bullet starts with a past-tense verb (Implemented, Fixed, Added, Refactored)\n")
		b.WriteString("2. Include technical details\n")
		fmt.Fprintf(&b, "3. Add GitHub links: ([PR#XX](%s/REPO/pull/NUMBER)) or ([Commit](%s/REPO/commit/SHA))\n\n",
			classify.GitHubOrgURL, classify.GitHubOrgURL)
	} else {
		b.WriteString("Write a report section for Tokamak Network targeting INVESTORS, PARTNERS, and COMMUNITY.\n\n")
		fmt.Fprintf(&b, "Project: %s\nContext: %s\n", info.Title, info.Context)
		if info.BusinessFocus != "" {
			fmt.Fprintf(&b, "Business Focus: %s\n", info.BusinessFocus)
		}
		fmt.Fprintf(&b, "Total improvements: %d\n\n", sum.TotalCommits)
		fmt.Fprintf(&b, "Recent commits (for context only):\n%s\n\n", strings.Join(commitLines, "\n"))
		b.WriteString("Rules for NON-TECHNICAL audience:\n")
		b.WriteString("1. NO technical jargon (no \"commit\", \"PR\", \"API\", \"SDK\", \"contract\")\n")
		b.WriteString("2. Focus on VALUE and user benefits\n")
		b.WriteString("3. Use business language: \"improved\", \"enhanced\", \"launched\"\n")
		b.WriteString("4. NO GitHub links\n")
		b.WriteString("5. Start bullets with action verbs: \"Enhanced\", \"Launched\", \"Improved\"\n\n")
	}

	b.WriteString(formatInstructions[normalizeFormat(format)])
	b.WriteString("\nOutput only the section content, no meta commentary.")
	return b.String()
}

// BuildHighlightPrompt assembles the executive-highlight prompt shared by
// both report types.
func BuildHighlightPrompt(reportType string, summaries map[string]activity.Summary, totalCommits, totalPRs, totalRepos int) string {
	var achievements []string
	for key, sum := range summaries {
		var msgs []string
		for i, c := range sum.TopCommits {
			if i >= 5 {
				break
			}
			m := c.Message
			if len(m) > 100 {
				m = m[:100]
			}
			msgs = append(msgs, m)
		}
		achievements = append(achievements, fmt.Sprintf("%s: %s", key, strings.Join(msgs, ", ")))
	}

	var b strings.Builder
	if reportType == TypePublic {
		b.WriteString("You are writing an executive highlight for Tokamak Network's development report.\n")
		b.WriteString("Target audience: INVESTORS, PARTNERS, and COMMUNITY members who may not read the full report.\n\n")
		fmt.Fprintf(&b, "This period's activity:\n- Total improvements: %d\n- Major features completed: %d\n- Active project areas: %d\n\n",
			totalCommits, totalPRs, totalRepos)
		fmt.Fprintf(&b, "Key work areas (for context, do NOT use technical terms):\n%s\n\n", strings.Join(achievements, "\n"))
		b.WriteString("Write a compelling 3-4 sentence highlight that hooks the reader, emphasizes strategic value, " +
			"mentions specific achievements in accessible language, and sounds confident and forward-looking.\n")
		b.WriteString("DO NOT use raw numbers as the main message or technical jargon " +
			"(no \"commits\", \"PRs\", \"repositories\", \"contracts\", \"nodes\").\n")
	} else {
		b.WriteString("You are writing a technical highlight for Tokamak Network's development report.\n")
		b.WriteString("Target audience: DEVELOPERS, TECHNICAL PARTNERS, and ENGINEERING teams.\n\n")
		fmt.Fprintf(&b, "This period's metrics:\n- Total commits: %d\n- Merged PRs: %d\n- Active repositories: %d\n\n",
			totalCommits, totalPRs, totalRepos)
		fmt.Fprintf(&b, "Key development areas:\n%s\n\n", strings.Join(achievements, "\n"))
		b.WriteString("Write a concise 3-4 sentence technical highlight naming the most significant systems improved, " +
			"architectural work, and critical fixes. Include relevant metrics but focus on WHAT was achieved.\n")
	}
	b.WriteString("Write ONLY the highlight paragraph, no labels or headers.")
	return b.String()
}

func normalizeFormat(format string) string {
	switch format {
	case FormatConcise, FormatStructured, FormatComprehensive:
		return format
	default:
		return FormatStructured
	}
}
