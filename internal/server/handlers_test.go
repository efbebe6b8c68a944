package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokamak-network/reportgen/internal/archive"
	"github.com/tokamak-network/reportgen/internal/config"
	"github.com/tokamak-network/reportgen/internal/render"
)

const activityCSV = "source,type,repository,member_name,member_email,timestamp,message,sha,additions,deletions,title,pr_number,state\n" +
	"github,commit,trh-sdk,Alice Kim,alice@tokamak.network,2026-03-02 10:00:00,add deployment templates,abcdef1234567890,120,10,,,\n" +
	"github,commit,trh-sdk,Alice Kim,alice@tokamak.network,2026-03-03 11:00:00,fix rollup config validation,bbcdef1234567890,40,5,,,\n" +
	"github,commit,ton-staking-v2,Bob,bob@tokamak.network,2026-03-04 12:00:00,implement withdrawal queue,cbcdef1234567890,200,20,,,\n" +
	"github,pull_request,trh-sdk,Alice Kim,alice@tokamak.network,2026-03-05 14:00:00,,,,,Add deployment templates,42,MERGED\n"

// testMux wires a full handler stack with no provider credentials, so every
// generation path runs on the deterministic fallback.
func testMux(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Env:     "test",
		Workers: 2,
		Archive: config.ArchiveConfig{Path: filepath.Join(t.TempDir(), "archive.json")},
	}
	store := archive.New(cfg.Archive.Path)
	hub := NewHub()
	members := map[string]render.MemberProfile{"alice-kim": {Name: "Alice Kim"}}
	h := NewHandler(cfg, members, "", nil, store, hub)
	return NewMux(h, hub)
}

func doJSON(t *testing.T, mux http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "body: %s", rec.Body.String())
	}
	return rec, parsed
}

func csvUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "activity.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(activityCSV))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	rec, body := doJSON(t, testMux(t), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleReviewers(t *testing.T) {
	rec, body := doJSON(t, testMux(t), http.MethodGet, "/api/reviewers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reviewers := body["reviewers"].([]any)
	require.Len(t, reviewers, 5)
	first := reviewers[0].(map[string]any)
	assert.Equal(t, "General Reader", first["name"])
	assert.EqualValues(t, 1, first["level"])
}

func TestHandleAnalyze_RawBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(activityCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "biweekly", body["scope"])
	assert.Equal(t, "2026-03-02", body["start"])
	assert.Equal(t, "2026-03-05", body["end"])
	assert.ElementsMatch(t, []any{"trh-sdk", "ton-staking-v2"}, body["repos"].([]any))
	assert.ElementsMatch(t, []any{"TRH", "Eco"}, body["projects"].([]any))

	totals := body["totals"].(map[string]any)
	assert.EqualValues(t, 3, totals["commits"])
	assert.EqualValues(t, 1, totals["merged_prs"])
	assert.EqualValues(t, 2, totals["contributors"])
}

func TestHandleAnalyze_EmptyCSV(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("source,type,repository\n"))
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHandleGenerate_HeuristicPipeline(t *testing.T) {
	mux := testMux(t)
	buf, ctype := csvUpload(t, map[string]string{
		"use_ai":          "false",
		"report_grouping": "project",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", buf)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	report := body["report"].(string)
	assert.Contains(t, report, "Tokamak Network Biweekly Development Report")
	assert.Contains(t, report, "#### 2.3.")
	assert.Contains(t, report, "#### 2.4.")
	assert.Contains(t, report, "/trh-sdk/commit/abcdef12")
	assert.Equal(t, "biweekly", body["scope"])

	archiveID := body["archive_id"].(string)
	require.NotEmpty(t, archiveID)

	// Archived copy is retrievable with the full body.
	rec2, entry := doJSON(t, mux, http.MethodGet, "/api/reports/"+archiveID, nil)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, report, entry["markdown"])
}

func TestHandleGenerate_HTMLOutput(t *testing.T) {
	buf, ctype := csvUpload(t, map[string]string{
		"use_ai":        "false",
		"output_format": "html",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", buf)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	html := body["html"].(string)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Ecosystem Landscape")
	assert.NotContains(t, body, "email_html")
}

func TestHandleGenerate_BadParams(t *testing.T) {
	mux := testMux(t)
	for _, fields := range []map[string]string{
		{"report_type": "casual"},
		{"report_grouping": "team"},
		{"output_format": "pdf"},
		{"report_scope": "weekly"},
		{"repo_limit": "-1"},
	} {
		buf, ctype := csvUpload(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/generate", buf)
		req.Header.Set("Content-Type", ctype)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "fields %v: %s", fields, rec.Body.String())
	}
}

func TestHandleGenerate_FilterWithNoMatches(t *testing.T) {
	buf, ctype := csvUpload(t, map[string]string{
		"use_ai":         "false",
		"project_filter": "Ooo",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", buf)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestHandleReview_FallbackWithoutProviders(t *testing.T) {
	rec, body := doJSON(t, testMux(t), http.MethodPost, "/api/review", map[string]any{
		"report":  "## Report\n\nShipped deployment templates.",
		"persona": "senior developer",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	reviews := body["reviews"].([]any)
	require.Len(t, reviews, 1)
	first := reviews[0].(map[string]any)
	assert.Equal(t, "Senior Developer", first["persona"])
	assert.EqualValues(t, 5, first["overall_score"])
	assert.NotEmpty(t, body["diagnostics"])
}

func TestHandleReview_UnknownPersona(t *testing.T) {
	rec, _ := doJSON(t, testMux(t), http.MethodPost, "/api/review", map[string]any{
		"report":  "text",
		"persona": "astrologer",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReview_MissingReport(t *testing.T) {
	rec, _ := doJSON(t, testMux(t), http.MethodPost, "/api/review", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImprove_AppliesEdits(t *testing.T) {
	rec, body := doJSON(t, testMux(t), http.MethodPost, "/api/improve", map[string]any{
		"report": "The team optimized the ZK-SNARK circuit this period.",
		"reviews": []map[string]any{{
			"issues": []map[string]any{{
				"description":   "jargon",
				"original_text": "ZK-SNARK circuit",
				"revised_text":  "privacy proof system",
			}},
		}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	improved := body["report"].(string)
	assert.Contains(t, improved, "privacy proof system")
	assert.NotContains(t, improved, "ZK-SNARK")
}

func TestHandleImprove_RequiresReviews(t *testing.T) {
	rec, _ := doJSON(t, testMux(t), http.MethodPost, "/api/improve", map[string]any{
		"report": "text",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReports_ListAndMiss(t *testing.T) {
	mux := testMux(t)

	rec, body := doJSON(t, mux, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["reports"])

	rec, _ = doJSON(t, mux, http.MethodGet, "/api/reports/rpt-missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, mux, http.MethodGet, "/api/reports?limit=oops", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleModelCompare_RequiresModels(t *testing.T) {
	rec, _ := doJSON(t, testMux(t), http.MethodPost, "/debug/model-compare", map[string]any{
		"prompt": "say hi",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
