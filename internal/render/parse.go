package render

import (
	"regexp"
	"strings"
)

// RepoNarrative is the per-repository breakdown recovered from a
// comprehensive-format markdown report.
type RepoNarrative struct {
	Name            string   `json:"name"`
	Overview        string   `json:"overview"`
	Accomplishments []string `json:"accomplishments"`
	CodeAnalysis    string   `json:"code_analysis"`
	NextSteps       []string `json:"next_steps"`
	PeriodGoals     []string `json:"period_goals"`
}

var (
	headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	numberPrefix  = regexp.MustCompile(`^\d+\.\s*`)
	overviewLink  = regexp.MustCompile(`\s*\(\[Overview\]\([^)]*\)\)\.?\s*$`)
	bulletRe      = regexp.MustCompile(`^[-*+]\s+`)
)

// ParseComprehensiveMarkdown splits a comprehensive report into per-repo
// narratives. Model output varies in heading depth, so the repo level is
// taken as the shallowest heading level that occurs more than once, and
// subsections are one level deeper. Unrecognized subsection titles fold into
// the overview.
func ParseComprehensiveMarkdown(markdown string) []RepoNarrative {
	lines := strings.Split(markdown, "\n")

	counts := map[int]int{}
	for _, line := range lines {
		if m := headingLineRe.FindStringSubmatch(line); m != nil {
			counts[len(m[1])]++
		}
	}
	repoLevel := 0
	for lvl := 1; lvl <= 6; lvl++ {
		if counts[lvl] > 1 {
			repoLevel = lvl
			break
		}
	}
	if repoLevel == 0 {
		for lvl := 6; lvl >= 1; lvl-- {
			if counts[lvl] > 0 {
				repoLevel = lvl
			}
		}
	}
	if repoLevel == 0 {
		return nil
	}
	subLevel := repoLevel + 1

	var out []RepoNarrative
	var cur *RepoNarrative
	bucket := "overview"

	flushLine := func(line string) {
		if cur == nil {
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			return
		}
		switch bucket {
		case "accomplishments":
			if bulletRe.MatchString(trimmed) {
				cur.Accomplishments = append(cur.Accomplishments, StripMarkdown(bulletRe.ReplaceAllString(trimmed, "")))
			}
		case "next_steps":
			if bulletRe.MatchString(trimmed) {
				cur.NextSteps = append(cur.NextSteps, StripMarkdown(bulletRe.ReplaceAllString(trimmed, "")))
			}
		case "period_goals":
			if bulletRe.MatchString(trimmed) {
				cur.PeriodGoals = append(cur.PeriodGoals, StripMarkdown(bulletRe.ReplaceAllString(trimmed, "")))
			}
		case "code_analysis":
			cur.CodeAnalysis = joinPara(cur.CodeAnalysis, CleanMarkdown(trimmed))
		default:
			cur.Overview = joinPara(cur.Overview, CleanMarkdown(trimmed))
		}
	}

	for _, line := range lines {
		m := headingLineRe.FindStringSubmatch(line)
		if m == nil {
			flushLine(line)
			continue
		}
		level, title := len(m[1]), m[2]
		switch {
		case level == repoLevel:
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &RepoNarrative{Name: cleanRepoTitle(title)}
			bucket = "overview"
		case level >= subLevel && cur != nil:
			bucket = classifySubsection(title)
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

func classifySubsection(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "accomplish") || strings.Contains(t, "achievement"):
		return "accomplishments"
	case strings.Contains(t, "period goal") || strings.Contains(t, "objective"):
		return "period_goals"
	case strings.Contains(t, "next") || strings.Contains(t, "goal") || strings.Contains(t, "plan"):
		return "next_steps"
	case strings.Contains(t, "code") || strings.Contains(t, "analysis"):
		return "code_analysis"
	default:
		return "overview"
	}
}

func cleanRepoTitle(title string) string {
	title = overviewLink.ReplaceAllString(title, "")
	title = numberPrefix.ReplaceAllString(title, "")
	title = StripMarkdown(title)
	return strings.TrimSuffix(strings.TrimSpace(title), ".")
}

func joinPara(existing, next string) string {
	if next == "" {
		return existing
	}
	if existing == "" {
		return next
	}
	return existing + " " + next
}
