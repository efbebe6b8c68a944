package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tokamak-network/reportgen/internal/classify"
)

// Commit counts for the activity legend dots.
const (
	activityHigh   = 20
	activityMedium = 5
)

// FocusArea is one repo highlight used by the email digest.
type FocusArea struct {
	Repo        string
	Category    string
	Description string
	Commits     int
	Changes     int
}

// CategoryFocus is one Blueprint card: an active category with a generated
// focus sentence and up to two curated synergy descriptions.
type CategoryFocus struct {
	Category  string
	Repos     []classify.CategorizedRepo
	Changes   int
	Focus     string
	Synergies []string
}

// activeCategory pairs a category with its repos sorted by code changes
// descending; only categories with at least one repo are active.
type activeCategory struct {
	name    string
	repos   []classify.CategorizedRepo
	changes int
}

func activeCategories(classified map[string][]classify.CategorizedRepo) []activeCategory {
	var active []activeCategory
	for _, cat := range classify.Categories {
		repos := classified[cat.Name]
		if len(repos) == 0 {
			continue
		}
		sorted := make([]classify.CategorizedRepo, len(repos))
		copy(sorted, repos)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LinesChanged > sorted[j].LinesChanged
		})
		total := 0
		for _, r := range sorted {
			total += r.LinesChanged
		}
		active = append(active, activeCategory{name: cat.Name, repos: sorted, changes: total})
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].changes > active[j].changes
	})
	return active
}

func activityDot(commits int) (color, label string) {
	switch {
	case commits >= activityHigh:
		return "#16A34A", "High"
	case commits >= activityMedium:
		return "#F59E0B", "Medium"
	default:
		return "#9CA3AF", "Low"
	}
}

// BuildLandscape renders the category grid of the ecosystem infographic.
// Categories appear by total code changes descending, repos within a
// category likewise.
func BuildLandscape(classified map[string][]classify.CategorizedRepo) string {
	var b strings.Builder
	b.WriteString(`<div class="landscape">` + "\n")
	b.WriteString(fmt.Sprintf(`<div class="legend"><span class="legend-item"><span class="legend-dot" style="background:#16A34A"></span>High (≥%d commits)</span><span class="legend-item"><span class="legend-dot" style="background:#F59E0B"></span>Medium (≥%d)</span><span class="legend-item"><span class="legend-dot" style="background:#9CA3AF"></span>Low (&lt;%d)</span></div>`+"\n",
		activityHigh, activityMedium, activityMedium))
	for _, ac := range activeCategories(classified) {
		cat := classify.CategoryByName(ac.name)
		b.WriteString(fmt.Sprintf(`<div class="land-cat" style="border-top:3px solid %s;background:%s">`+"\n", cat.Color, cat.Bg))
		b.WriteString(fmt.Sprintf(`<div class="land-cat-head"><span class="land-icon">%s</span><span class="land-name" style="color:%s">%s</span><span class="land-count">%d</span></div>`+"\n",
			cat.Icon, cat.Color, EscapeHTML(cat.Name), len(ac.repos)))
		for _, r := range ac.repos {
			dot, label := activityDot(r.Commits)
			b.WriteString(fmt.Sprintf(`<div class="land-repo"><span class="legend-dot" style="background:%s" title="%s activity"></span><a href="%s/%s">%s</a><span class="land-stats">%d commits · %s lines</span><p>%s</p></div>`+"\n",
				dot, label, classify.GitHubOrgURL, r.Name, EscapeHTML(r.Name), r.Commits, FmtShort(r.LinesChanged), EscapeHTML(r.Description)))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// SelectFocusAreas picks the top-N repos across all categories by code
// changes, commits breaking ties, name last. Feeds the email digest.
func SelectFocusAreas(classified map[string][]classify.CategorizedRepo, limit int) []FocusArea {
	var all []FocusArea
	for catName, repos := range classified {
		for _, r := range repos {
			all = append(all, FocusArea{
				Repo:        r.Name,
				Category:    catName,
				Description: r.Description,
				Commits:     r.Commits,
				Changes:     r.LinesChanged,
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Changes != all[j].Changes {
			return all[i].Changes > all[j].Changes
		}
		if all[i].Commits != all[j].Commits {
			return all[i].Commits > all[j].Commits
		}
		return all[i].Repo < all[j].Repo
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// BuildCategoryFocus derives the Blueprint cards: every active category, by
// code changes descending, with a generated Current Focus sentence and up to
// two curated synergy descriptions against the other active categories.
func BuildCategoryFocus(classified map[string][]classify.CategorizedRepo) []CategoryFocus {
	active := activeCategories(classified)
	names := make([]string, len(active))
	for i, ac := range active {
		names[i] = ac.name
	}

	out := make([]CategoryFocus, 0, len(active))
	for _, ac := range active {
		cf := CategoryFocus{
			Category: ac.name,
			Repos:    ac.repos,
			Changes:  ac.changes,
			Focus:    focusSentence(ac),
		}
		for _, other := range names {
			if other == ac.name {
				continue
			}
			if desc, ok := classify.SynergyFor(ac.name, other); ok {
				cf.Synergies = append(cf.Synergies, desc)
				if len(cf.Synergies) >= 2 {
					break
				}
			}
		}
		out = append(out, cf)
	}
	return out
}

func focusSentence(ac activeCategory) string {
	top := ac.repos
	if len(top) > 3 {
		top = top[:3]
	}
	parts := make([]string, len(top))
	for i, r := range top {
		parts[i] = fmt.Sprintf("%s (%s code changes)", r.Name, FmtComma(r.LinesChanged))
	}
	if len(ac.repos) == 1 {
		return fmt.Sprintf("%s has 1 active project: %s. Development is focused and concentrated.",
			ac.name, parts[0])
	}
	return fmt.Sprintf("%s has %d active projects with %s code changes. Key activity includes %s.",
		ac.name, len(ac.repos), FmtComma(ac.changes), strings.Join(parts, ", "))
}

// BuildBlueprint renders the per-category focus cards.
func BuildBlueprint(classified map[string][]classify.CategorizedRepo) string {
	cards := BuildCategoryFocus(classified)

	var b strings.Builder
	b.WriteString(`<div class="blueprint">` + "\n")
	for _, cf := range cards {
		cat := classify.CategoryByName(cf.Category)
		b.WriteString(fmt.Sprintf(`<div class="bp-card" style="border-left:4px solid %s">`+"\n", cat.Color))
		b.WriteString(fmt.Sprintf(`<div class="bp-title">%s <span style="color:%s">%s</span></div>`+"\n",
			cat.Icon, cat.Color, EscapeHTML(cf.Category)))
		b.WriteString(`<div class="bp-label">Current Focus</div>` + "\n")
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", EscapeHTML(cf.Focus)))
		if len(cf.Synergies) > 0 {
			b.WriteString(`<div class="bp-label bp-synergy">Potential Synergies</div>` + "\n<ul>\n")
			for _, s := range cf.Synergies {
				b.WriteString(fmt.Sprintf("<li>%s</li>\n", EscapeHTML(s)))
			}
			b.WriteString("</ul>\n")
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}
