package server

import "net/http"

func NewMux(h *Handler, hub *Hub) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/reviewers", h.HandleReviewers)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("POST /api/generate", h.HandleGenerate)
	mux.HandleFunc("POST /api/review", h.HandleReview)
	mux.HandleFunc("POST /api/improve", h.HandleImprove)
	mux.HandleFunc("GET /api/reports", h.HandleReports)
	mux.HandleFunc("GET /api/reports/{id}", h.HandleReport)

	mux.HandleFunc("GET /ws/progress", hub.HandleWS)

	// Debug Handlers
	mux.HandleFunc("POST /debug/model-compare", h.HandleModelCompare)

	return cors(mux)
}
