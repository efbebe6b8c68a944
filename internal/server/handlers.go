package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/tokamak-network/reportgen/internal/activity"
	"github.com/tokamak-network/reportgen/internal/archive"
	"github.com/tokamak-network/reportgen/internal/config"
	"github.com/tokamak-network/reportgen/internal/generate"
	"github.com/tokamak-network/reportgen/internal/hosting"
	"github.com/tokamak-network/reportgen/internal/llm"
	"github.com/tokamak-network/reportgen/internal/render"
	"github.com/tokamak-network/reportgen/internal/review"
	"github.com/tokamak-network/reportgen/internal/util/jsonutil"
)

const maxUploadBytes = 32 << 20

// Handler carries the wired pipeline dependencies for every endpoint.
type Handler struct {
	cfg      *config.Config
	members  map[string]render.MemberProfile
	logo     string
	uploader *hosting.Uploader
	store    *archive.Store
	hub      *Hub
}

func NewHandler(cfg *config.Config, members map[string]render.MemberProfile, logo string, uploader *hosting.Uploader, store *archive.Store, hub *Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		members:  members,
		logo:     logo,
		uploader: uploader,
		store:    store,
		hub:      hub,
	}
}

// newChain builds the per-request provider chain: one OpenAI-compatible
// client per requested model, then Gemini as the fallback.
func (h *Handler) newChain(ctx context.Context, models []string) *llm.Chain {
	if len(models) == 0 {
		models = h.cfg.LLM.Models
	}
	var clients []llm.Client
	if h.cfg.LLM.APIKey != "" {
		for _, m := range models {
			c, err := llm.NewOpenAIClient(h.cfg.LLM.BaseURL, h.cfg.LLM.APIKey, m)
			if err != nil {
				log.Printf("skip model %q: %v", m, err)
				continue
			}
			clients = append(clients, c)
		}
	}
	if h.cfg.LLM.GeminiAPIKey != "" {
		g, err := llm.NewGeminiClient(ctx, h.cfg.LLM.GeminiAPIKey, h.cfg.LLM.GeminiModel)
		if err != nil {
			log.Printf("skip gemini fallback: %v", err)
		} else {
			clients = append(clients, g)
		}
	}
	return llm.NewChain(clients...)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"env":    h.cfg.Env,
	})
}

func (h *Handler) HandleReviewers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"reviewers": review.Personas})
}

// HandleAnalyze parses the uploaded CSV and reports what a generation run
// would cover, without calling any provider.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.readDataset(w, r)
	if !ok {
		return
	}
	rng := activity.DetectRange(ds.Timestamps)

	projects := make([]string, 0, len(ds.Projects))
	for name := range ds.Projects {
		projects = append(projects, name)
	}
	repos := make([]string, 0, len(ds.Repos))
	repoSummaries := make(map[string]activity.Summary, len(ds.Repos))
	for name, g := range ds.Repos {
		repos = append(repos, name)
		repoSummaries[name] = activity.PrepareSummary(name, g)
	}
	sort.Strings(projects)
	sort.Strings(repos)

	writeJSON(w, http.StatusOK, map[string]any{
		"scope":    rng.Scope,
		"start":    rng.FormatStart("2006-01-02"),
		"end":      rng.FormatEnd("2006-01-02"),
		"days":     rng.Days,
		"projects": projects,
		"repos":    repos,
		"members":  ds.Members,
		"totals":   activity.ComputeTotals(repoSummaries),
	})
}

// HandleGenerate runs the full pipeline and returns the assembled report.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.readDataset(w, r)
	if !ok {
		return
	}
	params, err := parseGenerateParams(r.FormValue)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chain := h.newChain(r.Context(), params.Models)
	defer chain.Close()

	res, diags, err := h.buildReport(r.Context(), ds, params, chain)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]any{
		"report":     res.Report.Markdown,
		"sections":   res.Sections,
		"scope":      res.Report.Range.Scope,
		"start":      res.Report.Range.FormatStart("2006-01-02"),
		"end":        res.Report.Range.FormatEnd("2006-01-02"),
		"totals":     res.Report.Totals,
		"archive_id": res.ArchiveID,
	}
	if res.HTML != "" {
		resp["html"] = res.HTML
	}
	if res.Email != "" {
		resp["email_html"] = res.Email
	}
	if res.ReportURL != "" {
		resp["report_url"] = res.ReportURL
	}
	if len(diags) > 0 {
		resp["diagnostics"] = diags
	}
	writeJSON(w, http.StatusOK, resp)
}

type reviewRequest struct {
	Report     string   `json:"report"`
	ReportType string   `json:"report_type"`
	Personas   []string `json:"personas"`
	Persona    string   `json:"persona"`
	Models     []string `json:"models"`
}

// HandleReview critiques a report with one or more personas.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !readJSONBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Report) == "" {
		writeError(w, http.StatusBadRequest, "report text is required")
		return
	}
	if req.ReportType == "" {
		req.ReportType = generate.TypeTechnical
	}

	names := req.Personas
	if len(names) == 0 && req.Persona != "" {
		names = []string{req.Persona}
	}
	personas := make([]review.Persona, 0, len(names))
	for _, name := range names {
		p, ok := review.PersonaByName(name)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown reviewer persona %q", name))
			return
		}
		personas = append(personas, p)
	}
	if len(personas) == 0 {
		personas = []review.Persona{review.DefaultPersona()}
	}

	chain := h.newChain(r.Context(), req.Models)
	defer chain.Close()
	reviewer := review.NewReviewer(chain)

	var (
		results []review.Result
		diags   []string
	)
	for _, p := range personas {
		res, d := reviewer.Review(r.Context(), req.Report, req.ReportType, p)
		results = append(results, res)
		diags = append(diags, d...)
	}

	resp := map[string]any{"reviews": results}
	if len(diags) > 0 {
		resp["diagnostics"] = diags
	}
	writeJSON(w, http.StatusOK, resp)
}

type improveRequest struct {
	Report     string          `json:"report"`
	ReportType string          `json:"report_type"`
	Reviews    []review.Result `json:"reviews"`
	Models     []string        `json:"models"`
}

// HandleImprove applies reviewer edits to a report.
func (h *Handler) HandleImprove(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if !readJSONBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Report) == "" {
		writeError(w, http.StatusBadRequest, "report text is required")
		return
	}
	if len(req.Reviews) == 0 {
		writeError(w, http.StatusBadRequest, "at least one review is required")
		return
	}
	if req.ReportType == "" {
		req.ReportType = generate.TypeTechnical
	}

	chain := h.newChain(r.Context(), req.Models)
	defer chain.Close()
	improver := review.NewImprover(chain)

	improved, diags := improver.Improve(r.Context(), req.Report, req.ReportType, req.Reviews)
	resp := map[string]any{"report": improved}
	if len(diags) > 0 {
		resp["diagnostics"] = diags
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleReports lists archived reports, newest first.
func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": h.store.List(limit)})
}

// HandleReport fetches one archived report with its full markdown.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type compareRequest struct {
	Prompt string   `json:"prompt"`
	Models []string `json:"models"`
}

// HandleModelCompare fans one prompt out to several models and returns each
// answer side by side. Debug surface for prompt tuning.
func (h *Handler) HandleModelCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !readJSONBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	models := req.Models
	if len(models) == 0 {
		models = h.cfg.LLM.Models
	}
	if len(models) == 0 {
		writeError(w, http.StatusBadRequest, "no models configured")
		return
	}

	factory := func(model string) (llm.Client, error) {
		return llm.NewOpenAIClient(h.cfg.LLM.BaseURL, h.cfg.LLM.APIKey, model)
	}
	outputs, diags := generate.MultiModel(r.Context(), factory, models, req.Prompt)
	resp := map[string]any{"outputs": outputs}
	if len(diags) > 0 {
		resp["diagnostics"] = diags
	}
	writeJSON(w, http.StatusOK, resp)
}

// readDataset extracts and parses the activity CSV from a request, writing
// the HTTP error itself when the input is unusable.
func (h *Handler) readDataset(w http.ResponseWriter, r *http.Request) (*activity.Dataset, bool) {
	body, err := openCSV(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	defer body.Close()

	ds, err := activity.ParseCSV(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse csv: %v", err))
		return nil, false
	}
	if ds.Empty() {
		writeError(w, http.StatusBadRequest, "no usable activity rows in csv")
		return nil, false
	}
	return ds, true
}

// openCSV accepts the activity export as a multipart "file" field, a "csv"
// form value, or the raw request body.
func openCSV(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("parse upload: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err == nil {
			return file, nil
		}
		if csv := r.FormValue("csv"); csv != "" {
			return io.NopCloser(strings.NewReader(csv)), nil
		}
		return nil, fmt.Errorf("multipart upload has no \"file\" field")
	}
	if r.Body == nil {
		return nil, fmt.Errorf("csv content is required")
	}
	return http.MaxBytesReader(nil, r.Body, maxUploadBytes), nil
}

func readJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return false
	}
	if err := jsonutil.UnmarshalFlex(data, v); err != nil {
		writeError(w, http.StatusBadRequest, "parse request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := jsonutil.MarshalNoEscape(v)
	if err != nil {
		log.Printf("encode response: %v", err)
		writeError(w, http.StatusInternalServerError, "encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error": %q}`, msg)
}

