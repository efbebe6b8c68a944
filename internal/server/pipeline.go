package server

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/archive"
	"github.com/tokamak-network/reportgen/internal/classify"
	"github.com/tokamak-network/reportgen/internal/generate"
	"github.com/tokamak-network/reportgen/internal/llm"
	"github.com/tokamak-network/reportgen/internal/render"
)

// generateParams is the parsed form surface of POST /api/generate.
type generateParams struct {
	ReportType         string
	Format             string
	Grouping           string
	OutputFormat       string
	Scope              string
	UseAI              bool
	IncludeIndividuals bool
	RepoLimit          int
	ProjectFilter      []string
	MemberFilter       []string
	Models             []string
}

func parseGenerateParams(get func(string) string) (generateParams, error) {
	p := generateParams{
		ReportType:   strings.ToLower(strings.TrimSpace(get("report_type"))),
		Format:       strings.ToLower(strings.TrimSpace(get("report_format"))),
		Grouping:     strings.ToLower(strings.TrimSpace(get("report_grouping"))),
		OutputFormat: strings.ToLower(strings.TrimSpace(get("output_format"))),
		Scope:        strings.ToLower(strings.TrimSpace(get("report_scope"))),
	}
	if p.ReportType == "" {
		p.ReportType = generate.TypeTechnical
	}
	if p.ReportType != generate.TypeTechnical && p.ReportType != generate.TypePublic {
		return p, fmt.Errorf("invalid report_type %q", p.ReportType)
	}
	if p.Grouping == "" {
		p.Grouping = generate.GroupByProject
	}
	if p.Grouping != generate.GroupByProject && p.Grouping != generate.GroupByRepository {
		return p, fmt.Errorf("invalid report_grouping %q", p.Grouping)
	}
	switch p.OutputFormat {
	case "", "markdown", "html", "email":
	default:
		return p, fmt.Errorf("invalid output_format %q", p.OutputFormat)
	}
	switch p.Scope {
	case "", activity.ScopeBiweekly, activity.ScopeMonthly, activity.ScopeQuarterly:
	default:
		return p, fmt.Errorf("invalid report_scope %q", p.Scope)
	}

	p.UseAI = parseBool(get("use_ai"), true)
	p.IncludeIndividuals = parseBool(get("include_individuals"), false)
	if v := strings.TrimSpace(get("repo_limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid repo_limit %q", v)
		}
		p.RepoLimit = n
	}
	p.ProjectFilter = splitList(get("project_filter"))
	p.MemberFilter = splitList(get("member_filter"))
	p.Models = splitList(get("models"))
	if len(p.Models) == 0 {
		p.Models = splitList(get("model"))
	}
	return p, nil
}

func parseBool(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// reportResult is the assembled output of one generation run.
type reportResult struct {
	Report    render.Report
	Sections  []generate.Section
	HTML      string
	Email     string
	ReportURL string
	ArchiveID string
}

// buildReport runs the full pipeline: group selection, summaries, section
// generation, assembly, and the optional HTML/email render.
func (h *Handler) buildReport(ctx context.Context, ds *activity.Dataset, p generateParams, chain *llm.Chain) (*reportResult, []string, error) {
	rng := activity.DetectRange(ds.Timestamps)
	if p.Scope != "" {
		rng.Scope = p.Scope
	}

	keys, summaries, err := selectGroups(ds, p, rng)
	if err != nil {
		return nil, nil, err
	}

	// Totals always reflect the full dataset, not the filtered grouping.
	repoSummaries := make(map[string]activity.Summary, len(ds.Repos))
	for name, g := range ds.Repos {
		repoSummaries[name] = activity.PrepareSummary(name, g)
	}
	totals := activity.ComputeTotals(repoSummaries)

	gen, err := generate.New(chain, h.cfg.Workers, h.hub.Broadcast)
	if err != nil {
		return nil, nil, err
	}
	opts := generate.Options{
		ReportType: p.ReportType,
		Format:     p.Format,
		Grouping:   p.Grouping,
		UseAI:      p.UseAI,
	}
	sections, diags := gen.GenerateSections(ctx, keys, summaries, opts)
	highlight, hdiags := gen.GenerateHighlight(ctx, p.ReportType, summaries, totals.Commits, totals.MergedPRs, totals.Repos, p.UseAI)
	diags = append(diags, hdiags...)

	title := reportTitle(rng.Scope, p.ReportType)
	markdown := render.AssembleMarkdown(title, highlight, sections, rng)

	rep := render.Report{
		Title:     title,
		Headline:  highlight,
		Markdown:  markdown,
		Range:     rng,
		Summaries: summaries,
		Totals:    totals,
		Generated: time.Now().UTC(),
	}
	res := &reportResult{Report: rep, Sections: sections}

	if p.OutputFormat == "html" || p.OutputFormat == "email" {
		classified := classifyDataset(ds)
		res.HTML = render.RenderHTML(rep, classified, render.HTMLOptions{
			Members:     h.members,
			LogoDataURI: h.logo,
		})
		if h.uploader != nil {
			if _, url, err := h.uploader.UploadHTML(ctx, "", res.HTML); err != nil {
				diags = append(diags, "report upload: "+err.Error())
			} else {
				res.ReportURL = url
			}
		}
		if p.OutputFormat == "email" {
			res.Email = render.RenderEmail(rep, classified, res.ReportURL)
		}
	}

	res.ArchiveID = h.store.Put(archive.Entry{
		Scope:      rng.Scope,
		ReportType: p.ReportType,
		Format:     p.Format,
		Title:      title,
		Markdown:   markdown,
		ReportURL:  res.ReportURL,
		Totals:     totals,
	})
	return res, diags, nil
}

// selectGroups resolves the grouping parameter into ordered section keys and
// their summaries.
func selectGroups(ds *activity.Dataset, p generateParams, rng activity.DateRange) ([]string, map[string]activity.Summary, error) {
	groups := make(map[string]*activity.Group)
	var keys []string

	switch p.Grouping {
	case generate.GroupByRepository:
		for name, g := range ds.Repos {
			groups[name] = g
			keys = append(keys, name)
		}
		// Busiest repos first.
		sort.SliceStable(keys, func(i, j int) bool {
			ci, cj := len(groups[keys[i]].Commits), len(groups[keys[j]].Commits)
			if ci != cj {
				return ci > cj
			}
			return keys[i] < keys[j]
		})
		if p.RepoLimit > 0 && len(keys) > p.RepoLimit {
			keys = keys[:p.RepoLimit]
		}
	default:
		for _, project := range classify.ProjectOrder {
			if g, ok := ds.Projects[project]; ok {
				groups[project] = g
				keys = append(keys, project)
			}
		}
		if p.IncludeIndividuals && rng.IndividualSections() {
			var members []string
			for id := range ds.Individuals {
				members = append(members, id)
			}
			sort.Strings(members)
			for _, id := range members {
				groups[id] = ds.Individuals[id]
				keys = append(keys, id)
			}
		}
	}

	keys = applyFilter(keys, p.ProjectFilter)
	if p.Grouping == generate.GroupByProject {
		keys = applyMemberFilter(keys, p.MemberFilter, ds)
	}
	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("no activity groups match the requested filters")
	}

	summaries := make(map[string]activity.Summary, len(keys))
	for _, key := range keys {
		summaries[key] = activity.PrepareSummary(key, groups[key])
	}
	return keys, summaries, nil
}

// applyFilter keeps only the named keys; an empty filter keeps everything.
func applyFilter(keys, filter []string) []string {
	if len(filter) == 0 {
		return keys
	}
	want := make(map[string]bool, len(filter))
	for _, f := range filter {
		want[strings.ToLower(f)] = true
	}
	var out []string
	for _, k := range keys {
		if want[strings.ToLower(k)] {
			out = append(out, k)
		}
	}
	return out
}

// applyMemberFilter narrows individual sections to the named members while
// leaving project sections untouched.
func applyMemberFilter(keys, filter []string, ds *activity.Dataset) []string {
	if len(filter) == 0 {
		return keys
	}
	want := make(map[string]bool, len(filter))
	for _, f := range filter {
		want[strings.ToLower(f)] = true
	}
	var out []string
	for _, k := range keys {
		if _, isMember := ds.Individuals[k]; isMember && !want[strings.ToLower(k)] {
			continue
		}
		out = append(out, k)
	}
	return out
}

// classifyDataset builds the infographic input from per-repo groups.
func classifyDataset(ds *activity.Dataset) map[string][]classify.CategorizedRepo {
	stats := make(map[string]classify.RepoStat, len(ds.Repos))
	for name, g := range ds.Repos {
		sum := activity.PrepareSummary(name, g)
		stats[name] = classify.RepoStat{
			Commits:      sum.TotalCommits,
			LinesAdded:   sum.LinesAdded,
			LinesDeleted: sum.LinesDeleted,
			Contributors: sum.Contributors,
		}
	}
	return classify.ClassifyRepos(stats, nil, nil)
}

func reportTitle(scope, reportType string) string {
	scopeTitle := strings.ToUpper(scope[:1]) + scope[1:]
	if reportType == generate.TypePublic {
		return fmt.Sprintf("Tokamak Network %s Progress Update", scopeTitle)
	}
	return fmt.Sprintf("Tokamak Network %s Development Report", scopeTitle)
}
