// Package generate produces report sections from activity summaries, via the
// LLM provider chain when available and the deterministic heuristics
// otherwise.
package generate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/classify"
	"github.com/tokamak-network/reportgen/internal/heuristic"
	"github.com/tokamak-network/reportgen/internal/llm"
)

// Report groupings.
const (
	GroupByProject    = "project"
	GroupByRepository = "repository"
)

// Options controls one generation request.
type Options struct {
	ReportType string
	Format     string
	Grouping   string
	UseAI      bool
}

// Section is one generated report section, immutable once created.
type Section struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ProgressEvent is emitted as each section completes.
type ProgressEvent struct {
	Stage string `json:"stage"`
	Key   string `json:"key,omitempty"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// Generator turns summaries into sections. Safe for concurrent use.
type Generator struct {
	chain    *llm.Chain
	cache    *lru.Cache[string, string]
	workers  int
	progress func(ProgressEvent)
}

const sectionCacheSize = 256

// New creates a Generator. chain may be nil (heuristics only). progress may
// be nil.
func New(chain *llm.Chain, workers int, progress func(ProgressEvent)) (*Generator, error) {
	if workers <= 0 {
		workers = 5
	}
	cache, err := lru.New[string, string](sectionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init section cache: %w", err)
	}
	if chain == nil {
		chain = llm.NewChain()
	}
	return &Generator{chain: chain, cache: cache, workers: workers, progress: progress}, nil
}

// GenerateSections produces one section per key, preserving key order.
// Independent sections are generated in parallel under a bounded pool; a
// failed LLM call degrades that section to the heuristic fallback without
// touching its siblings.
func (g *Generator) GenerateSections(ctx context.Context, keys []string, summaries map[string]activity.Summary, opts Options) ([]Section, []string) {
	results := make([]Section, len(keys))
	diagCh := make(chan string, len(keys)*4)

	limit := g.workers
	if len(keys) < limit {
		limit = len(keys)
	}
	if limit < 1 {
		limit = 1
	}

	var done atomic.Int32
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, key := range keys {
		i, key := i, key
		eg.Go(func() error {
			sum := summaries[key]
			section, diags := g.generateOne(egCtx, key, sum, opts)
			results[i] = section
			for _, d := range diags {
				diagCh <- d
			}
			g.emit(ProgressEvent{Stage: "section", Key: key, Done: int(done.Add(1)), Total: len(keys)})
			return nil
		})
	}
	_ = eg.Wait()
	close(diagCh)

	var diags []string
	for d := range diagCh {
		diags = append(diags, d)
	}
	return results, diags
}

func (g *Generator) generateOne(ctx context.Context, key string, sum activity.Summary, opts Options) (Section, []string) {
	info := sectionInfoFor(key, opts)

	if !opts.UseAI || !g.chain.Available() {
		return Section{Key: key, Title: info.Title, Content: g.heuristicSection(sum, info, opts)}, nil
	}

	prompt := BuildSectionPrompt(opts.ReportType, opts.Format, sum, info)
	cacheKey := promptHash(prompt)
	if cached, ok := g.cache.Get(cacheKey); ok {
		return Section{Key: key, Title: info.Title, Content: cached}, nil
	}

	text, diags := g.chain.Complete(ctx, prompt)
	if strings.TrimSpace(text) == "" {
		log.Printf("section %q: falling back to heuristic generation", key)
		return Section{Key: key, Title: info.Title, Content: g.heuristicSection(sum, info, opts)}, diags
	}

	content := SanitizeSection(text, opts.ReportType)
	content = wrapSectionHeader(content, info, opts)
	g.cache.Add(cacheKey, content)
	return Section{Key: key, Title: info.Title, Content: content}, diags
}

func sectionInfoFor(key string, opts Options) classify.SectionInfo {
	table := classify.SectionInfoTechnical
	if opts.ReportType == TypePublic {
		table = classify.SectionInfoPublic
	}
	if info, ok := table[key]; ok {
		return info
	}
	// Repository-level or individual sections have no curated block.
	return classify.SectionInfo{
		Title:   key,
		Context: classify.DescriptionFor(key),
	}
}

// heuristicSection ports the deterministic no-AI section builders.
func (g *Generator) heuristicSection(sum activity.Summary, info classify.SectionInfo, opts Options) string {
	var b strings.Builder
	writeSectionHeading(&b, info, opts.ReportType)

	if opts.ReportType == TypePublic {
		items := heuristic.ExtractPublicCommitDeliverables(sum.TopCommits, 5)
		items = append(items, heuristic.ExtractPublicPRDeliverables(sum.MergedPRList, 3)...)
		if len(items) == 0 {
			fmt.Fprintf(&b, "* Made significant progress with %d improvements.\n", sum.TotalCommits)
			fmt.Fprintf(&b, "* Enhanced system reliability across %d components.\n", len(sum.Repos))
			b.WriteString("* Continued work toward upcoming milestones.\n")
		} else {
			for _, item := range items {
				fmt.Fprintf(&b, "* %s\n", item)
			}
		}
		return b.String()
	}

	count := 0
	for _, c := range sum.TopCommits {
		if count >= 10 {
			break
		}
		msg := heuristic.SimplifyMessage(c.Message)
		if msg == "" {
			continue
		}
		msg = heuristic.CapitalizeFirst(msg)
		if c.SHA != "" {
			fmt.Fprintf(&b, "* %s ([Commit](%s/%s/commit/%s)).\n", msg, classify.GitHubOrgURL, c.Repo, c.SHA)
		} else {
			fmt.Fprintf(&b, "* %s.\n", msg)
		}
		count++
	}
	return b.String()
}

func writeSectionHeading(b *strings.Builder, info classify.SectionInfo, reportType string) {
	if info.Number == "" {
		fmt.Fprintf(b, "#### %s\n\n", info.Title)
		return
	}
	if reportType == TypeTechnical && info.OverviewURL != "" {
		fmt.Fprintf(b, "#### %s. %s ([Overview](%s)).\n\n", info.Number, info.Title, info.OverviewURL)
		return
	}
	fmt.Fprintf(b, "#### %s. %s\n\n", info.Number, info.Title)
}

// wrapSectionHeader prefixes AI output with the curated heading unless the
// model already produced one (comprehensive format asks for its own headers).
func wrapSectionHeader(content string, info classify.SectionInfo, opts Options) string {
	if normalizeFormat(opts.Format) == FormatComprehensive {
		return content
	}
	if strings.HasPrefix(strings.TrimSpace(content), "#") {
		return content
	}
	var b strings.Builder
	writeSectionHeading(&b, info, opts.ReportType)
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) emit(ev ProgressEvent) {
	if g.progress != nil {
		g.progress(ev)
	}
}

func promptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
