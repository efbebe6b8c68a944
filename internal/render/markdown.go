package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/classify"
	"github.com/tokamak-network/reportgen/internal/generate"
)

// Report is the assembled markdown document plus the metadata the HTML and
// email renderers need.
type Report struct {
	Title     string
	Headline  string
	Markdown  string
	Range     activity.DateRange
	Summaries map[string]activity.Summary
	Totals    activity.Totals
	Generated time.Time
}

// AssembleMarkdown joins the headline and sections into one document. Project
// sections follow the fixed project order, repository and individual sections
// come after in deterministic key order, and catch-all sections go last.
func AssembleMarkdown(title, headline string, sections []generate.Section, rng activity.DateRange) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString(fmt.Sprintf("**Period:** %s ~ %s\n\n", rng.FormatStart("2006-01-02"), rng.FormatEnd("2006-01-02")))
	if headline != "" {
		b.WriteString(headline)
		b.WriteString("\n\n---\n\n")
	}
	for _, s := range orderSections(sections) {
		b.WriteString(strings.TrimRight(s.Content, "\n"))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func orderSections(sections []generate.Section) []generate.Section {
	rank := func(key string) int {
		for i, p := range classify.ProjectOrder {
			if key == p {
				return i
			}
		}
		if strings.EqualFold(key, "Others") || strings.HasPrefix(strings.ToLower(key), "other") {
			return len(classify.ProjectOrder) + 2
		}
		return len(classify.ProjectOrder) + 1
	}
	out := make([]generate.Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Key), rank(out[j].Key)
		if ri != rj {
			return ri < rj
		}
		return out[i].Key < out[j].Key
	})
	return out
}
