package activity

import (
	"sort"
	"strings"
)

const (
	maxTopCommits = 30
	maxMergedPRs  = 15
	dedupPrefix   = 50
)

// Summary is a bounded, read-only reduction of a Group.
type Summary struct {
	Key              string        `json:"key"`
	Repos            []string      `json:"repos"`
	TotalCommits     int           `json:"total_commits"`
	TotalPRs         int           `json:"total_prs"`
	MergedPRs        int           `json:"merged_prs"`
	TopCommits       []Commit      `json:"top_commits"`
	MergedPRList     []PullRequest `json:"merged_pr_list"`
	LinesAdded       int           `json:"lines_added"`
	LinesDeleted     int           `json:"lines_deleted"`
	TotalChanges     int           `json:"total_changes"`
	NetChange        int           `json:"net_change"`
	Contributors     []string      `json:"contributors"`
	ContributorCount int           `json:"contributor_count"`
}

// PrepareSummary reduces a group into a Summary. Deterministic: the sort is
// stable, so scan order breaks ties. Top commits are deduplicated by the
// lowercase 50-char message prefix and capped at 30; merged PRs at 15.
func PrepareSummary(key string, g *Group) Summary {
	commits := make([]Commit, len(g.Commits))
	copy(commits, g.Commits)
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Additions+commits[i].Deletions > commits[j].Additions+commits[j].Deletions
	})

	seen := make(map[string]bool)
	top := make([]Commit, 0, maxTopCommits)
	for _, c := range commits {
		k := truncateRunes(strings.ToLower(c.Message), dedupPrefix)
		if seen[k] {
			continue
		}
		seen[k] = true
		top = append(top, c)
		if len(top) >= maxTopCommits {
			break
		}
	}

	merged := make([]PullRequest, 0, maxMergedPRs)
	mergedTotal := 0
	for _, pr := range g.PRs {
		if pr.State != "MERGED" {
			continue
		}
		mergedTotal++
		if len(merged) < maxMergedPRs {
			merged = append(merged, pr)
		}
	}

	var added, deleted int
	contributors := make(map[string]bool)
	for _, c := range g.Commits {
		added += c.Additions
		deleted += c.Deletions
		id := c.MemberID
		if id == "" {
			id = c.Author
		}
		if id != "" {
			contributors[id] = true
		}
	}
	names := make([]string, 0, len(contributors))
	for id := range contributors {
		names = append(names, id)
	}
	sort.Strings(names)

	repos := g.RepoList()
	sort.Strings(repos)

	return Summary{
		Key:              key,
		Repos:            repos,
		TotalCommits:     len(g.Commits),
		TotalPRs:         len(g.PRs),
		MergedPRs:        mergedTotal,
		TopCommits:       top,
		MergedPRList:     merged,
		LinesAdded:       added,
		LinesDeleted:     deleted,
		TotalChanges:     added + deleted,
		NetChange:        added - deleted,
		Contributors:     names,
		ContributorCount: len(names),
	}
}
