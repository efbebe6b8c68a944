package heuristic

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tokamak-network/reportgen/internal/activity"
)

func TestSimplifyMessage(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"feat: add staking rewards", "add staking rewards"},
		{"fix(core)!: resolve overflow", "resolve overflow"},
		{"[TRH-123] deploy rollup hub", "deploy rollup hub"},
		{"  chore: bump deps  ", "bump deps"},
		{"plain message", "plain message"},
	}
	for _, tc := range cases {
		if got := SimplifyMessage(tc.in); got != tc.want {
			t.Errorf("SimplifyMessage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsPublicDeliverable(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Improved staking reward calculation accuracy for validators.", true},
		{"too short", false},
		{"refactor reward calculation internals", false},
		{"release new sdk version today", false},
		{"and then some more follow-up work", false},
		{"Launched private channel manager for users", true},
		// "sdk" inside a larger word does not trip the stoplist.
		{"Improved sdkless integration flow considerably", true},
	}
	for _, tc := range cases {
		if got := IsPublicDeliverable(tc.in); got != tc.want {
			t.Errorf("IsPublicDeliverable(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPublicizeDeliverable(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"add private channel support for wallets", "Launched private channel support for wallets."},
		{"fixed reward distribution rounding", "Secured reward distribution rounding."},
		{"update staking dashboard styling", "Improved staking dashboard styling."},
		{"implement batch withdrawal flow", "Delivered batch withdrawal flow."},
		{"enable fast exits on L2", "Enabled fast exits on L2."},
		{"ship governance portal", "Ship governance portal."},
	}
	for _, tc := range cases {
		if got := PublicizeDeliverable(tc.in); got != tc.want {
			t.Errorf("PublicizeDeliverable(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePublicDeliverable(t *testing.T) {
	if got := NormalizePublicDeliverable("  launched   thing.. "); got != "Launched thing." {
		t.Fatalf("got %q", got)
	}
	if got := NormalizePublicDeliverable(""); got != "" {
		t.Fatalf("empty input: got %q", got)
	}
}

func TestExtractPublicCommitDeliverables(t *testing.T) {
	commits := []activity.Commit{
		{Message: "add private channel support for wallets"},
		{Message: "feat: add private channel support for wallets"}, // dup after rewrite
		{Message: "bump deps"},
		{Message: "implement batch withdrawal flow"},
		{Message: "update staking dashboard styling"},
	}
	got := ExtractPublicCommitDeliverables(commits, 2)
	want := []string{
		"Launched private channel support for wallets.",
		"Delivered batch withdrawal flow.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTechnicalDeliverables(t *testing.T) {
	commits := []activity.Commit{
		{Message: "fix: resolve overflow in reward math"},
		{Message: "FIX: resolve overflow in reward math"},
		{Message: ""},
		{Message: "add deployment templates"},
	}
	got := ExtractTechnicalDeliverables(commits, 10)
	want := []string{
		"Resolve overflow in reward math",
		"Add deployment templates",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"add templates", "Add templates"},
		{"스테이킹 보상 계산 로직 개선", "스테이킹 보상 계산 로직 개선"},
		{"éviter les doublons", "Éviter les doublons"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CapitalizeFirst(tc.in); got != tc.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractTechnicalDeliverables_MultibyteMessages(t *testing.T) {
	commits := []activity.Commit{{Message: "스테이킹 보상 계산 로직 개선"}}
	got := ExtractTechnicalDeliverables(commits, 5)
	if len(got) != 1 || got[0] != "스테이킹 보상 계산 로직 개선" {
		t.Fatalf("got %q", got)
	}
}

func TestGeneratePublicHighlight_Deterministic(t *testing.T) {
	summaries := map[string]activity.Summary{
		"TRH": {MergedPRList: []activity.PullRequest{{Title: "Improved staking reward calculation accuracy for validators", State: "MERGED"}}},
		"Eco": {MergedPRList: []activity.PullRequest{{Title: "Launched private channel proofs for rollup users", State: "MERGED"}}},
		"Ooo": {MergedPRList: []activity.PullRequest{{Title: "Delivered governance voting dashboard for token holders", State: "MERGED"}}},
	}
	first := GeneratePublicHighlight(summaries)
	for i := 0; i < 50; i++ {
		if got := GeneratePublicHighlight(summaries); got != first {
			t.Fatalf("output changed on run %d:\n%q\n%q", i, first, got)
		}
	}
	// Key order, not map order: "Eco" sorts first and supplies the highlight.
	if !strings.Contains(first, "private channel proofs") {
		t.Fatalf("highlight = %q", first)
	}
}

func TestGenerateTechnicalHighlight(t *testing.T) {
	summaries := map[string]activity.Summary{
		"TRH": {TotalCommits: 10},
		"Eco": {TotalCommits: 4},
	}
	out := GenerateTechnicalHighlight(14, 3, 5, summaries)
	for _, want := range []string{"14 commits", "3 merged PRs", "5 repositories", "TRH"} {
		if !contains(out, want) {
			t.Fatalf("highlight %q missing %q", out, want)
		}
	}
}

func TestDerivePublicTheme(t *testing.T) {
	theme := DerivePublicTheme([]string{"Launched private channel proofs."})
	if theme != "privacy technology" {
		t.Fatalf("theme = %q", theme)
	}
	if got := DerivePublicTheme(nil); got != "core platform capabilities" {
		t.Fatalf("default theme = %q", got)
	}
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
