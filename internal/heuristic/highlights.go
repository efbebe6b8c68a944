package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tokamak-network/reportgen/internal/activity"
)

// themeKeywords maps recurring phrasing in deliverables to a business theme.
// Scanned in order; first hit wins.
var themeKeywords = []struct {
	keywords []string
	theme    string
}{
	{[]string{"privacy", "private", "zk", "proof", "confidential"}, "privacy technology"},
	{[]string{"staking", "reward", "delegation", "ton"}, "staking infrastructure"},
	{[]string{"rollup", "deploy", "l2", "layer 2", "thanos"}, "Layer 2 deployment tooling"},
	{[]string{"governance", "dao", "voting", "proposal"}, "decentralized governance"},
	{[]string{"security", "audit", "secured"}, "platform security"},
}

// DerivePublicTheme names the dominant work theme from extracted deliverables,
// falling back to a generic platform theme.
func DerivePublicTheme(deliverables []string) string {
	joined := strings.ToLower(strings.Join(deliverables, " "))
	for _, entry := range themeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(joined, kw) {
				return entry.theme
			}
		}
	}
	return "core platform capabilities"
}

// PickPublicAchievement selects the single most presentable item, preferring
// merged PR titles over commit messages.
func PickPublicAchievement(sum activity.Summary) string {
	if items := ExtractPublicPRDeliverables(sum.MergedPRList, 1); len(items) > 0 {
		return items[0]
	}
	if items := ExtractPublicCommitDeliverables(sum.TopCommits, 1); len(items) > 0 {
		return items[0]
	}
	return ""
}

// GenerateTechnicalHighlight builds the deterministic technical headline
// paragraph used when no AI output is available.
func GenerateTechnicalHighlight(totalCommits, totalPRs, totalRepos int, summaries map[string]activity.Summary) string {
	areas := topAreas(summaries, 3)
	base := fmt.Sprintf("Total: %d commits, %d merged PRs across %d repositories.", totalCommits, totalPRs, totalRepos)
	if len(areas) == 0 {
		return base
	}
	return fmt.Sprintf("This period landed %d commits and %d merged PRs across %d repositories, with the heaviest activity in %s.",
		totalCommits, totalPRs, totalRepos, humanJoin(areas))
}

// GeneratePublicHighlight builds the deterministic investor-facing headline.
// Summaries are visited in key order so the same input always yields the same
// theme and achievement.
func GeneratePublicHighlight(summaries map[string]activity.Summary) string {
	keys := make([]string, 0, len(summaries))
	for key := range summaries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var deliverables []string
	for _, key := range keys {
		deliverables = append(deliverables, ExtractPublicCommitDeliverables(summaries[key].TopCommits, 3)...)
	}
	theme := DerivePublicTheme(deliverables)

	var achievement string
	for _, key := range keys {
		if achievement = PickPublicAchievement(summaries[key]); achievement != "" {
			break
		}
	}

	out := fmt.Sprintf("Tokamak Network continues to advance its mission of making blockchain technology more accessible and secure. This period saw meaningful progress across %s, bringing us closer to delivering real value for users and partners.", theme)
	if achievement != "" {
		out += " A highlight of the period: " + strings.TrimSuffix(achievement, ".") + "."
	}
	return out
}

func topAreas(summaries map[string]activity.Summary, limit int) []string {
	type area struct {
		key     string
		commits int
	}
	areas := make([]area, 0, len(summaries))
	for key, sum := range summaries {
		areas = append(areas, area{key, sum.TotalCommits})
	}
	// Insertion sort keeps this dependency-free for tiny n.
	for i := 1; i < len(areas); i++ {
		for j := i; j > 0 && (areas[j].commits > areas[j-1].commits ||
			(areas[j].commits == areas[j-1].commits && areas[j].key < areas[j-1].key)); j-- {
			areas[j], areas[j-1] = areas[j-1], areas[j]
		}
	}
	if len(areas) > limit {
		areas = areas[:limit]
	}
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = a.key
	}
	return out
}

func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
