// Package classify buckets repositories into the fixed ecosystem taxonomy and
// resolves repositories to their curated project codenames.
package classify

import (
	"sort"
	"strings"
)

// RepoStat is the per-repository activity input to classification.
type RepoStat struct {
	Commits      int
	LinesAdded   int
	LinesDeleted int
	Contributors []string
}

// CategorizedRepo is one classified repository as rendered by the infographic.
type CategorizedRepo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Commits      int      `json:"commits"`
	LinesAdded   int      `json:"lines_added"`
	LinesDeleted int      `json:"lines_deleted"`
	LinesChanged int      `json:"lines_changed"`
	Contributors []string `json:"contributors,omitempty"`
}

// ProjectForRepo resolves a repository to its project codename, or "" when the
// repository belongs to no curated project.
func ProjectForRepo(repo string) string {
	for _, project := range ProjectOrder {
		for _, r := range ProjectRepos[project] {
			if r == repo {
				return project
			}
		}
	}
	return ""
}

// DescriptionFor returns the curated description for a repo, or an inferred
// one built from its name.
func DescriptionFor(repo string) string {
	if d, ok := DefaultDescriptions[repo]; ok {
		return d
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(repo)
	return name + " component"
}

// ClassifyRepos assigns every repository with activity to exactly one
// category. Resolution order: explicit table (first listing wins), then
// keyword heuristics in Categories order, then DefaultCategory. Repositories
// without commits are excluded.
func ClassifyRepos(stats map[string]RepoStat, descriptions map[string]string, classification map[string][]string) map[string][]CategorizedRepo {
	desc := make(map[string]string, len(DefaultDescriptions)+len(descriptions))
	for k, v := range DefaultDescriptions {
		desc[k] = v
	}
	for k, v := range descriptions {
		desc[k] = v
	}

	table := classification
	if table == nil {
		table = DefaultClassification
	}

	repoToCat := make(map[string]string)
	for _, cat := range Categories {
		for _, r := range table[cat.Name] {
			if _, ok := repoToCat[r]; !ok {
				repoToCat[r] = cat.Name
			}
		}
	}

	for repo := range stats {
		if _, ok := repoToCat[repo]; ok {
			continue
		}
		repoToCat[repo] = classifyByName(repo)
	}

	// Deterministic scan order: commit count descending, then name.
	names := make([]string, 0, len(stats))
	for repo := range stats {
		names = append(names, repo)
	}
	sort.Slice(names, func(i, j int) bool {
		if stats[names[i]].Commits != stats[names[j]].Commits {
			return stats[names[i]].Commits > stats[names[j]].Commits
		}
		return names[i] < names[j]
	})

	result := make(map[string][]CategorizedRepo, len(Categories))
	for _, cat := range Categories {
		result[cat.Name] = []CategorizedRepo{}
	}
	for _, repo := range names {
		st := stats[repo]
		if st.Commits <= 0 {
			continue
		}
		cat := repoToCat[repo]
		if _, ok := result[cat]; !ok {
			cat = DefaultCategory
		}
		d := desc[repo]
		if d == "" {
			d = DescriptionFor(repo)
		}
		result[cat] = append(result[cat], CategorizedRepo{
			Name:         repo,
			Description:  d,
			Commits:      st.Commits,
			LinesAdded:   st.LinesAdded,
			LinesDeleted: st.LinesDeleted,
			LinesChanged: st.LinesAdded + st.LinesDeleted,
			Contributors: st.Contributors,
		})
	}
	return result
}

func classifyByName(repo string) string {
	name := strings.ToLower(repo)
	for _, cat := range Categories {
		for _, kw := range categoryKeywords[cat.Name] {
			if strings.Contains(name, kw) {
				return cat.Name
			}
		}
	}
	return DefaultCategory
}
