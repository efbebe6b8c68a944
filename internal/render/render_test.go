package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/classify"
	"github.com/tokamak-network/reportgen/internal/generate"
)

func TestFmtComma(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"}, {999, "999"}, {1000, "1,000"}, {1234567, "1,234,567"}, {-4200, "-4,200"},
	}
	for _, tc := range cases {
		if got := FmtComma(tc.in); got != tc.want {
			t.Errorf("FmtComma(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtShort(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"}, {950, "+950"}, {1500, "+1.5K"}, {2000, "+2K"},
		{4_900_000, "+4.9M"}, {-12_000, "-12K"},
	}
	for _, tc := range cases {
		if got := FmtShort(tc.in); got != tc.want {
			t.Errorf("FmtShort(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripMarkdown(t *testing.T) {
	in := "## Heading\n**bold** and [link](https://x.io) plus `code`"
	got := StripMarkdown(in)
	for _, banned := range []string{"##", "**", "](", "`"} {
		if strings.Contains(got, banned) {
			t.Fatalf("artifact %q survived: %q", banned, got)
		}
	}
	if !strings.Contains(got, "link") || !strings.Contains(got, "bold") {
		t.Fatalf("text lost: %q", got)
	}
}

func TestEscapeHTML(t *testing.T) {
	if got := EscapeHTML(`<script>"x" & y</script>`); strings.ContainsAny(got, "<>") {
		t.Fatalf("got %q", got)
	}
}

func sections(keys ...string) []generate.Section {
	out := make([]generate.Section, len(keys))
	for i, k := range keys {
		out[i] = generate.Section{Key: k, Title: k, Content: "#### " + k + "\n\n* item\n"}
	}
	return out
}

func TestAssembleMarkdown_OrdersSections(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 13)
	rng := activity.DateRange{Scope: activity.ScopeBiweekly, Start: &start, End: &end, Days: 14}

	md := AssembleMarkdown("Title", "Headline.", sections("alice", "Others", "TRH", "Ooo"), rng)

	posOoo := strings.Index(md, "#### Ooo")
	posTRH := strings.Index(md, "#### TRH")
	posAlice := strings.Index(md, "#### alice")
	posOthers := strings.Index(md, "#### Others")
	if !(posOoo < posTRH && posTRH < posAlice && posAlice < posOthers) {
		t.Fatalf("order wrong: Ooo=%d TRH=%d alice=%d Others=%d\n%s", posOoo, posTRH, posAlice, posOthers, md)
	}
	if !strings.HasPrefix(md, "# Title") {
		t.Fatalf("missing title: %q", md[:40])
	}
	if !strings.Contains(md, "2026-03-01 ~ 2026-03-14") {
		t.Fatalf("missing period: %s", md)
	}
}

func TestParseComprehensiveMarkdown(t *testing.T) {
	md := `## trh-sdk
### Overview
SDK work continued at pace.
### Key Accomplishments
- Shipped deployment templates
- Hardened config validation
### Code Analysis
Large additions concentrated in templates.
### Next Steps
- Expand provider coverage

## ton-staking-v2
### Overview
Staking contract hardening.
`
	got := ParseComprehensiveMarkdown(md)
	if len(got) != 2 {
		t.Fatalf("repos = %d: %+v", len(got), got)
	}
	first := got[0]
	if first.Name != "trh-sdk" {
		t.Fatalf("name = %q", first.Name)
	}
	if len(first.Accomplishments) != 2 || first.Accomplishments[0] != "Shipped deployment templates" {
		t.Fatalf("accomplishments = %+v", first.Accomplishments)
	}
	if !strings.Contains(first.CodeAnalysis, "Large additions") {
		t.Fatalf("code analysis = %q", first.CodeAnalysis)
	}
	if len(first.NextSteps) != 1 {
		t.Fatalf("next steps = %+v", first.NextSteps)
	}
	if got[1].Overview != "Staking contract hardening." {
		t.Fatalf("second overview = %q", got[1].Overview)
	}
}

func TestParseComprehensiveMarkdown_PeriodGoals(t *testing.T) {
	md := `## trh-sdk
### Period Goals
- Cut deployment time in half
### Next Steps
- Expand provider coverage
`
	got := ParseComprehensiveMarkdown(md)
	if len(got) != 1 {
		t.Fatalf("repos = %d", len(got))
	}
	if len(got[0].PeriodGoals) != 1 || got[0].PeriodGoals[0] != "Cut deployment time in half" {
		t.Fatalf("period goals = %+v", got[0].PeriodGoals)
	}
	if len(got[0].NextSteps) != 1 || got[0].NextSteps[0] != "Expand provider coverage" {
		t.Fatalf("next steps = %+v", got[0].NextSteps)
	}
}

func TestParseComprehensiveMarkdown_NumberedH4Headings(t *testing.T) {
	md := "#### 1. trh-sdk ([Overview](https://example.com)).\n\n* bullet one\n\n#### 2. DRB-node\n\nNode text.\n"
	got := ParseComprehensiveMarkdown(md)
	if len(got) != 2 {
		t.Fatalf("repos = %d", len(got))
	}
	if got[0].Name != "trh-sdk" || got[1].Name != "DRB-node" {
		t.Fatalf("names = %q, %q", got[0].Name, got[1].Name)
	}
}

func classifiedFixture() map[string][]classify.CategorizedRepo {
	return map[string][]classify.CategorizedRepo{
		"Platform & Services": {
			{Name: "trh-sdk", Description: "SDK", Commits: 9, LinesAdded: 900, LinesDeleted: 100, LinesChanged: 1000, Contributors: []string{"alice", "bob", "carol", "dan"}},
		},
		"Core Infrastructure": {
			{Name: "tokamak-thanos", Description: "Rollup stack", Commits: 4, LinesChanged: 400},
		},
	}
}

func TestSelectFocusAreas(t *testing.T) {
	focus := SelectFocusAreas(classifiedFixture(), 1)
	if len(focus) != 1 || focus[0].Repo != "trh-sdk" {
		t.Fatalf("focus = %+v", focus)
	}
}

func TestBuildLandscape_OrdersByCodeChanges(t *testing.T) {
	classified := map[string][]classify.CategorizedRepo{
		"Platform & Services": {
			{Name: "trh-sdk", Commits: 30, LinesChanged: 10},
		},
		"Core Infrastructure": {
			{Name: "tokamak-thanos", Commits: 2, LinesChanged: 99999},
			{Name: "DRB-node", Commits: 9, LinesChanged: 150000},
		},
	}
	html := BuildLandscape(classified)

	posCore := strings.Index(html, "Core Infrastructure")
	posPlatform := strings.Index(html, "Platform &amp; Services")
	if posCore < 0 || posPlatform < 0 || posCore > posPlatform {
		t.Fatalf("category order wrong: core=%d platform=%d", posCore, posPlatform)
	}
	// Repos inside a category sort by lines changed, not commits.
	if strings.Index(html, "DRB-node") > strings.Index(html, "tokamak-thanos") {
		t.Fatal("repo order inside category wrong")
	}
	if !strings.Contains(html, "legend") {
		t.Fatal("missing activity legend")
	}
}

func TestBuildCategoryFocus(t *testing.T) {
	classified := map[string][]classify.CategorizedRepo{
		"Privacy & ZK": {
			{Name: "Tokamak-zk-EVM", Commits: 12, LinesChanged: 5000},
		},
		"DeFi & Staking": {
			{Name: "ton-staking-v2", Commits: 8, LinesChanged: 3000},
			{Name: "staking-dashboard", Commits: 3, LinesChanged: 1000},
		},
		"Core Infrastructure": {
			{Name: "tokamak-thanos", Commits: 6, LinesChanged: 2000},
		},
		"Governance": {
			{Name: "ton-dao", Commits: 4, LinesChanged: 1500},
		},
	}
	cards := BuildCategoryFocus(classified)
	if len(cards) != 4 {
		t.Fatalf("cards = %d", len(cards))
	}
	if cards[0].Category != "Privacy & ZK" {
		t.Fatalf("first card = %q, want highest code changes first", cards[0].Category)
	}

	want := "Privacy & ZK has 1 active project: Tokamak-zk-EVM (5,000 code changes). Development is focused and concentrated."
	if cards[0].Focus != want {
		t.Fatalf("focus = %q", cards[0].Focus)
	}
	defi := cards[1]
	if defi.Category != "DeFi & Staking" {
		t.Fatalf("second card = %q", defi.Category)
	}
	if !strings.Contains(defi.Focus, "has 2 active projects with 4,000 code changes") ||
		!strings.Contains(defi.Focus, "ton-staking-v2 (3,000 code changes)") {
		t.Fatalf("focus = %q", defi.Focus)
	}

	// Privacy & ZK has curated pairs with all three other active categories;
	// only two synergies may surface.
	if len(cards[0].Synergies) != 2 {
		t.Fatalf("synergies = %d: %v", len(cards[0].Synergies), cards[0].Synergies)
	}
}

func TestBuildBlueprint_RendersFocusCards(t *testing.T) {
	html := BuildBlueprint(classifiedFixture())
	if !strings.Contains(html, "Current Focus") {
		t.Fatal("missing Current Focus label")
	}
	if !strings.Contains(html, "Potential Synergies") {
		t.Fatal("missing synergies list")
	}
	if !strings.Contains(html, "active project") {
		t.Fatal("missing focus sentence")
	}
}

func TestRenderHTML_SelfContained(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 13)
	rep := Report{
		Title:    "Tokamak Network Biweekly Development Report",
		Headline: "Strong period.",
		Markdown: "#### 1. trh-sdk\n\n* bullet\n",
		Range:    activity.DateRange{Scope: activity.ScopeBiweekly, Start: &start, End: &end, Days: 14},
		Totals:   activity.Totals{Commits: 13, MergedPRs: 3, Repos: 2, Contributors: 4, NetChange: 1200},
	}
	members := map[string]MemberProfile{"alice": {Name: "Alice Kim"}}

	html := RenderHTML(rep, classifiedFixture(), HTMLOptions{Members: members})
	for _, want := range []string{
		"<!DOCTYPE html>", "Executive Summary", "Ecosystem Landscape",
		"Period Focus", "trh-sdk", "Alice Kim", "13", "and 1 others",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q", want)
		}
	}
	if strings.Contains(html, "<link") || strings.Contains(html, "src=\"http") {
		t.Fatal("html references external assets")
	}
}

func TestTrimOverview(t *testing.T) {
	if got := trimOverview("short overview."); got != "short overview." {
		t.Fatalf("got %q", got)
	}

	sentence := "This sentence pads the overview out toward the cap with steady filler text. "
	long := strings.Repeat(sentence, 10)
	got := trimOverview(long)
	if len(got) > overviewMax {
		t.Fatalf("len = %d", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("not cut at a sentence boundary: %q", got[len(got)-20:])
	}

	// No sentence boundary past the minimum: hard cut.
	unbroken := strings.Repeat("x", 700)
	if got := trimOverview(unbroken); len(got) != overviewMax {
		t.Fatalf("len = %d", len(got))
	}
}

func TestWriteNarrativeCard_CapsAndSplitsAccomplishments(t *testing.T) {
	n := RepoNarrative{Name: "trh-sdk"}
	for i := 0; i < 9; i++ {
		n.Accomplishments = append(n.Accomplishments, fmt.Sprintf("Item %d: detail text", i))
	}
	var b strings.Builder
	writeNarrativeCard(&b, n, classifiedFixture(), nil)
	html := b.String()

	if strings.Count(html, "<li>") != maxCardAccomplishments {
		t.Fatalf("items = %d", strings.Count(html, "<li>"))
	}
	if !strings.Contains(html, "<strong>Item 0:</strong> detail text") {
		t.Fatalf("title not split out:\n%s", html)
	}
	if strings.Contains(html, "Item 7") || strings.Contains(html, "Item 8") {
		t.Fatal("cap not applied")
	}
}

func TestRenderEmail(t *testing.T) {
	rep := Report{
		Title:    "Report",
		Headline: "Headline.",
		Totals:   activity.Totals{Commits: 5},
		Range:    activity.DateRange{Scope: activity.ScopeBiweekly},
	}
	html := RenderEmail(rep, classifiedFixture(), "https://reports.example.com/x.html")
	if !strings.Contains(html, "https://reports.example.com/x.html") {
		t.Fatal("missing CTA link")
	}
	if !strings.Contains(html, "style=") {
		t.Fatal("email variant must inline styles")
	}
	if strings.Contains(html, "<style>") {
		t.Fatal("email variant must not rely on style blocks")
	}
}
