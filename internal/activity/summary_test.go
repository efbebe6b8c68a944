package activity

import (
	"fmt"
	"strings"
	"testing"
)

func TestPrepareSummary_DeduplicatesAndCaps(t *testing.T) {
	g := newGroup()
	g.Repos["repo-a"] = struct{}{}

	// Two commits sharing the same 50-char lowercase prefix collapse to one.
	shared := strings.Repeat("a", 50)
	g.Commits = append(g.Commits,
		Commit{Repo: "repo-a", Message: shared + " first", Additions: 100, MemberID: "amy"},
		Commit{Repo: "repo-a", Message: strings.ToUpper(shared) + " second", Additions: 90, MemberID: "amy"},
	)
	// 40 distinct commits exceed the top-commit cap.
	for i := 0; i < 40; i++ {
		g.Commits = append(g.Commits, Commit{
			Repo:      "repo-a",
			Message:   fmt.Sprintf("distinct change %d", i),
			Additions: i,
			MemberID:  "amy",
		})
	}

	sum := PrepareSummary("repo-a", g)
	if sum.TotalCommits != 42 {
		t.Fatalf("TotalCommits = %d, want 42", sum.TotalCommits)
	}
	if len(sum.TopCommits) != 30 {
		t.Fatalf("TopCommits = %d, want capped at 30", len(sum.TopCommits))
	}
	// Highest-churn commit survives the dedup, its shadow does not.
	if !strings.HasSuffix(sum.TopCommits[0].Message, "first") {
		t.Fatalf("top commit = %q", sum.TopCommits[0].Message)
	}
	for _, c := range sum.TopCommits[1:] {
		if strings.HasSuffix(c.Message, "second") {
			t.Fatal("duplicate-prefix commit not deduplicated")
		}
	}
}

func TestPrepareSummary_MergedPRs(t *testing.T) {
	g := newGroup()
	for i := 0; i < 20; i++ {
		g.PRs = append(g.PRs, PullRequest{Title: fmt.Sprintf("pr %d", i), State: "MERGED"})
	}
	g.PRs = append(g.PRs, PullRequest{Title: "still open", State: "OPEN"})

	sum := PrepareSummary("x", g)
	if sum.MergedPRs != 20 {
		t.Fatalf("MergedPRs = %d, want 20", sum.MergedPRs)
	}
	if len(sum.MergedPRList) != 15 {
		t.Fatalf("MergedPRList = %d, want capped at 15", len(sum.MergedPRList))
	}
	if sum.TotalPRs != 21 {
		t.Fatalf("TotalPRs = %d, want 21", sum.TotalPRs)
	}
}

func TestPrepareSummary_ContributorFallback(t *testing.T) {
	g := newGroup()
	g.Commits = append(g.Commits,
		Commit{Message: "one", MemberID: "amy"},
		Commit{Message: "two", Author: "Legacy Author"},
	)
	sum := PrepareSummary("x", g)
	if sum.ContributorCount != 2 {
		t.Fatalf("ContributorCount = %d, want 2 (author fallback)", sum.ContributorCount)
	}
}

func TestComputeTotals(t *testing.T) {
	summaries := map[string]Summary{
		"a": {TotalCommits: 3, MergedPRs: 1, LinesAdded: 100, LinesDeleted: 40, Repos: []string{"a"}, Contributors: []string{"amy"}},
		"b": {TotalCommits: 2, MergedPRs: 2, LinesAdded: 10, LinesDeleted: 5, Repos: []string{"b"}, Contributors: []string{"amy", "bob"}},
	}
	totals := ComputeTotals(summaries)
	if totals.Commits != 5 || totals.MergedPRs != 3 {
		t.Fatalf("totals = %+v", totals)
	}
	if totals.Contributors != 2 {
		t.Fatalf("Contributors = %d, want deduplicated 2", totals.Contributors)
	}
	if totals.NetChange != 65 {
		t.Fatalf("NetChange = %d, want 65", totals.NetChange)
	}
}
