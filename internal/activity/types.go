// Package activity turns raw GitHub-activity CSV rows into per-project,
// per-repository and per-contributor groupings, and reduces those groupings
// into bounded report summaries.
package activity

import "time"

// Commit is one recorded commit. Author is kept alongside MemberID for
// backward compatibility with older exports that only carried a name.
type Commit struct {
	Repo      string `json:"repo"`
	Message   string `json:"message"`
	SHA       string `json:"sha"`
	Timestamp string `json:"timestamp"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	MemberID  string `json:"member_id,omitempty"`
	Author    string `json:"author,omitempty"`
}

// PullRequest is one recorded pull request.
type PullRequest struct {
	Repo      string `json:"repo"`
	Title     string `json:"title"`
	Number    string `json:"pr_number"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
	MemberID  string `json:"member_id,omitempty"`
}

// Member identifies one contributor. ID is stable across rows: the lowercased
// email local-part when usable, else the sanitized name; first seen wins.
type Member struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Group aggregates activity under one key (project, repository or member).
type Group struct {
	Commits []Commit
	PRs     []PullRequest
	Repos   map[string]struct{}
}

func newGroup() *Group {
	return &Group{Repos: make(map[string]struct{})}
}

// RepoList returns the repo set as a sorted-insertion-free slice; callers that
// need determinism sort it themselves.
func (g *Group) RepoList() []string {
	out := make([]string, 0, len(g.Repos))
	for r := range g.Repos {
		out = append(out, r)
	}
	return out
}

// Dataset is the full parse result: three parallel groupings plus the member
// roster and the timestamps used for date-range detection.
type Dataset struct {
	Projects    map[string]*Group
	Repos       map[string]*Group
	Individuals map[string]*Group
	Members     []Member
	Timestamps  []time.Time
}

// Empty reports whether no usable activity was found.
func (d *Dataset) Empty() bool {
	return len(d.Projects) == 0 && len(d.Repos) == 0 && len(d.Individuals) == 0
}
