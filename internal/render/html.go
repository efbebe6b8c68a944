package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tokamak-network/reportgen/internal/classify"
)

// HTMLOptions carries the optional decorations for the self-contained page.
type HTMLOptions struct {
	Members     map[string]MemberProfile
	LogoDataURI string
}

const (
	maxBylineContributors  = 3
	maxCardAccomplishments = 7

	// Overview trimming: cap at overviewMax characters, preferring the last
	// sentence boundary past overviewMinCut.
	overviewMax    = 600
	overviewMinCut = 200
)

// trimOverview shortens a long overview at a sentence boundary so cards do
// not overflow with model output.
func trimOverview(s string) string {
	if utf8.RuneCountInString(s) <= overviewMax {
		return s
	}
	cut := string([]rune(s)[:overviewMax])
	if i := strings.LastIndexByte(cut, '.'); i > overviewMinCut {
		return cut[:i+1]
	}
	return cut
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

// RenderHTML produces a single self-contained HTML page: cover, KPI bar,
// executive summary, ecosystem infographic, and per-repo narrative cards. No
// external assets; everything is inlined.
func RenderHTML(rep Report, classified map[string][]classify.CategorizedRepo, opts HTMLOptions) string {
	narratives := ParseComprehensiveMarkdown(rep.Markdown)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", EscapeHTML(rep.Title)))
	b.WriteString("<style>\n" + reportCSS + "</style>\n</head>\n<body>\n")

	// Cover
	b.WriteString(`<header class="cover">` + "\n")
	if opts.LogoDataURI != "" {
		b.WriteString(fmt.Sprintf(`<img class="logo" src="%s" alt="Tokamak Network">`+"\n", opts.LogoDataURI))
	}
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", EscapeHTML(rep.Title)))
	b.WriteString(fmt.Sprintf(`<div class="period">%s ~ %s · %s report</div>`+"\n",
		rep.Range.FormatStart("Jan 2, 2006"), rep.Range.FormatEnd("Jan 2, 2006"), rep.Range.Scope))
	b.WriteString("</header>\n")

	// KPI bar
	b.WriteString(`<section class="kpis">` + "\n")
	writeKPI(&b, FmtComma(rep.Totals.Commits), "Commits")
	writeKPI(&b, FmtComma(rep.Totals.MergedPRs), "Merged PRs")
	writeKPI(&b, FmtComma(rep.Totals.Repos), "Repositories")
	writeKPI(&b, FmtComma(rep.Totals.Contributors), "Contributors")
	writeKPI(&b, FmtShort(rep.Totals.NetChange), "Net lines")
	b.WriteString("</section>\n")

	// Executive summary
	if rep.Headline != "" {
		b.WriteString(`<section class="exec"><h2>Executive Summary</h2>` + "\n")
		b.WriteString(fmt.Sprintf("<p>%s</p>\n</section>\n", EscapeHTML(rep.Headline)))
	}

	// Infographic
	b.WriteString(`<section class="infographic"><h2>Ecosystem Landscape</h2>` + "\n")
	b.WriteString(BuildLandscape(classified))
	b.WriteString("<h2>Period Focus</h2>\n")
	b.WriteString(BuildBlueprint(classified))
	b.WriteString("</section>\n")

	// Narrative cards
	if len(narratives) > 0 {
		b.WriteString(`<section class="narratives"><h2>Detailed Progress</h2>` + "\n")
		for _, n := range narratives {
			writeNarrativeCard(&b, n, classified, opts.Members)
		}
		b.WriteString("</section>\n")
	}

	b.WriteString(fmt.Sprintf(`<footer>Generated %s · Tokamak Network</footer>`+"\n",
		rep.Generated.Format("2006-01-02 15:04 MST")))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeKPI(b *strings.Builder, value, label string) {
	fmt.Fprintf(b, `<div class="kpi"><div class="kpi-value">%s</div><div class="kpi-label">%s</div></div>`+"\n", value, label)
}

func writeNarrativeCard(b *strings.Builder, n RepoNarrative, classified map[string][]classify.CategorizedRepo, members map[string]MemberProfile) {
	cat, repo := findClassified(classified, n.Name)
	meta := classify.CategoryByName(cat)

	b.WriteString(fmt.Sprintf(`<article class="card" style="border-top:3px solid %s">`+"\n", meta.Color))
	b.WriteString(fmt.Sprintf(`<h3>%s %s</h3>`+"\n", meta.Icon, EscapeHTML(n.Name)))
	if repo != nil {
		b.WriteString(fmt.Sprintf(`<div class="card-meta">%d commits · %s lines changed</div>`+"\n",
			repo.Commits, FmtShort(repo.LinesChanged)))
		if byline := contributorByline(repo.Contributors, members); byline != "" {
			b.WriteString(fmt.Sprintf(`<div class="byline">%s</div>`+"\n", byline))
		}
	}
	if n.Overview != "" {
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", EscapeHTML(trimOverview(n.Overview))))
	}
	if len(n.Accomplishments) > 0 {
		b.WriteString("<h4>Key Accomplishments</h4>\n<ul>\n")
		for _, a := range capList(n.Accomplishments, maxCardAccomplishments) {
			if title, desc, ok := strings.Cut(a, ": "); ok {
				b.WriteString(fmt.Sprintf("<li><strong>%s:</strong> %s</li>\n", EscapeHTML(title), EscapeHTML(desc)))
			} else {
				b.WriteString(fmt.Sprintf("<li><strong>%s</strong></li>\n", EscapeHTML(a)))
			}
		}
		b.WriteString("</ul>\n")
	}
	if n.CodeAnalysis != "" {
		b.WriteString(fmt.Sprintf("<h4>Code Analysis</h4>\n<p>%s</p>\n", EscapeHTML(n.CodeAnalysis)))
	}
	if len(n.NextSteps) > 0 {
		b.WriteString("<h4>Next Steps</h4>\n<ul>\n")
		for _, s := range n.NextSteps {
			b.WriteString(fmt.Sprintf("<li>%s</li>\n", EscapeHTML(s)))
		}
		b.WriteString("</ul>\n")
	}
	if len(n.PeriodGoals) > 0 {
		b.WriteString("<h4>Period Goals</h4>\n<ul>\n")
		for _, g := range n.PeriodGoals {
			b.WriteString(fmt.Sprintf("<li>%s</li>\n", EscapeHTML(g)))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</article>\n")
}

// findClassified locates a repo's category and stats by name. Narrative names
// come back from model output, so matching is case-insensitive.
func findClassified(classified map[string][]classify.CategorizedRepo, name string) (string, *classify.CategorizedRepo) {
	lower := strings.ToLower(name)
	for cat, repos := range classified {
		for i := range repos {
			if strings.ToLower(repos[i].Name) == lower {
				return cat, &repos[i]
			}
		}
	}
	return classify.DefaultCategory, nil
}

func contributorByline(ids []string, members map[string]MemberProfile) string {
	if len(ids) == 0 {
		return ""
	}
	limit := len(ids)
	if limit > maxBylineContributors {
		limit = maxBylineContributors
	}
	names := make([]string, 0, limit)
	for _, id := range ids[:limit] {
		names = append(names, EscapeHTML(DisplayName(members, id)))
	}
	byline := "By " + strings.Join(names, ", ")
	if len(ids) > limit {
		byline += fmt.Sprintf(" and %d others", len(ids)-limit)
	}
	return byline
}

const reportCSS = `
body{font-family:-apple-system,"Segoe UI",Roboto,sans-serif;margin:0;color:#1E293B;background:#F8FAFC}
.cover{background:#0F172A;color:#fff;padding:48px 32px;text-align:center}
.cover .logo{height:40px;margin-bottom:16px}
.cover h1{margin:0 0 8px;font-size:28px}
.period{color:#94A3B8;font-size:14px}
.kpis{display:flex;flex-wrap:wrap;justify-content:center;gap:16px;padding:24px 32px;background:#fff;border-bottom:1px solid #E2E8F0}
.kpi{min-width:120px;text-align:center}
.kpi-value{font-size:24px;font-weight:700;color:#2A72E5}
.kpi-label{font-size:12px;color:#64748B;text-transform:uppercase;letter-spacing:.05em}
section{max-width:960px;margin:0 auto;padding:24px 32px}
h2{font-size:20px;border-bottom:2px solid #E2E8F0;padding-bottom:8px}
.exec p{font-size:15px;line-height:1.7}
.landscape{display:grid;grid-template-columns:repeat(auto-fill,minmax(280px,1fr));gap:16px}
.legend{grid-column:1/-1;display:flex;gap:16px;font-size:12px;color:#64748B}
.legend-item{display:inline-flex;align-items:center;gap:4px}
.legend-dot{display:inline-block;width:8px;height:8px;border-radius:50%;margin-right:4px}
.land-cat{border-radius:8px;padding:12px}
.land-cat-head{display:flex;align-items:center;gap:8px;margin-bottom:8px;font-weight:600}
.land-count{margin-left:auto;font-size:12px;color:#64748B}
.land-repo{padding:6px 0;border-top:1px solid rgba(0,0,0,.06);font-size:13px}
.land-repo a{font-weight:600;color:#1E293B;text-decoration:none}
.land-stats{float:right;color:#64748B;font-size:11px}
.land-repo p{margin:2px 0 0;color:#475569;font-size:12px}
.blueprint{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:16px}
.bp-card{background:#fff;border-radius:8px;padding:16px;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.bp-title{font-weight:700;margin-bottom:8px}
.bp-label{font-size:11px;font-weight:600;color:#2A72E5;text-transform:uppercase;letter-spacing:.05em;margin-bottom:4px}
.bp-synergy{color:#EA580C;margin-top:12px}
.bp-card p{margin:0 0 4px;font-size:13px;color:#475569}
.bp-card ul{margin:0;padding-left:18px;font-size:12px;color:#555;line-height:1.5}
.card{background:#fff;border-radius:8px;padding:20px;margin-bottom:16px;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.card h3{margin-top:0}
.card-meta{font-size:12px;color:#64748B}
.byline{font-size:12px;color:#475569;font-style:italic;margin:4px 0 8px}
.card p,.card li{font-size:14px;line-height:1.6;color:#334155}
footer{text-align:center;padding:24px;color:#94A3B8;font-size:12px}
`
