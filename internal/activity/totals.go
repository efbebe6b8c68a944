package activity

// Totals aggregates summaries for headline and KPI display.
type Totals struct {
	Commits      int `json:"commits"`
	PRs          int `json:"prs"`
	MergedPRs    int `json:"merged_prs"`
	Repos        int `json:"repos"`
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	NetChange    int `json:"net_change"`
	Contributors int `json:"contributors"`
}

// ComputeTotals sums per-group summaries. Repos and contributors are counted
// once across groups.
func ComputeTotals(summaries map[string]Summary) Totals {
	var t Totals
	repos := make(map[string]bool)
	contributors := make(map[string]bool)
	for _, s := range summaries {
		t.Commits += s.TotalCommits
		t.PRs += s.TotalPRs
		t.MergedPRs += s.MergedPRs
		t.LinesAdded += s.LinesAdded
		t.LinesDeleted += s.LinesDeleted
		for _, r := range s.Repos {
			repos[r] = true
		}
		for _, c := range s.Contributors {
			contributors[c] = true
		}
	}
	t.Repos = len(repos)
	t.Contributors = len(contributors)
	t.NetChange = t.LinesAdded - t.LinesDeleted
	return t
}
