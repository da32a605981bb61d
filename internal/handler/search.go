package handler

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

type searchRequest struct {
	Query string `json:"query"`
}

// POST /api/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Missing required field: query")
		return
	}

	results := h.catalog.Search(req.Query)
	writeJSON(w, http.StatusOK, SearchResponse{
		Status:  "success",
		Query:   req.Query,
		Count:   len(results),
		Results: results,
	})
}

// GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:            "active",
		Agent:             "cross-sell-service",
		Version:           "1.0",
		TotalProducts:     h.catalog.Len(),
		MemorySessions:    h.shortTerm.SessionCount(),
		GenerativeBackend: h.backendOn,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}
