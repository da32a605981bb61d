package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/merchkit/cross-sell-service/internal/engine"
)

type recommendRequest struct {
	ProductID string `json:"product_id"`
	Limit     *int   `json:"limit,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// POST /api/recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Missing required field: product_id")
		return
	}

	limit := 3
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > 5 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Limit must be an integer between 1 and 5")
			return
		}
		limit = *req.Limit
	}

	mode := domain.ModeRule
	switch req.Mode {
	case "", string(domain.ModeRule):
	case string(domain.ModeGenerative):
		mode = domain.ModeGenerative
	default:
		writeError(w, http.StatusBadRequest, "invalid_parameter", `Mode must be "rule" or "generative"`)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	result, err := h.engine.Recommend(r.Context(), engine.Request{
		ProductID: req.ProductID,
		SessionID: sessionID,
		Limit:     limit,
		Mode:      mode,
	})
	if err != nil {
		h.writeEngineError(w, req.ProductID, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Status:          "success",
		ProductID:       req.ProductID,
		SessionID:       sessionID,
		Limit:           limit,
		Mode:            string(mode),
		Recommendations: result.Items,
		Metadata: RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Items),
		},
	})
}

// writeEngineError maps the engine's typed failures onto HTTP statuses:
// unknown product -> 404, upstream trouble -> 502, timeout -> 503.
func (h *Handler) writeEngineError(w http.ResponseWriter, productID string, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeErrorHint(w, http.StatusNotFound, "product_not_found",
			fmt.Sprintf("Product %q does not exist in the catalog", productID),
			"Use POST /api/search to discover product ids")
	case errors.Is(err, domain.ErrBackendUnavailable):
		writeError(w, http.StatusBadGateway, "backend_unavailable",
			"Generative backend is unreachable or misconfigured")
	case domain.IsFormatError(err):
		writeError(w, http.StatusBadGateway, "generation_format_error",
			"Generative backend returned an irreparable payload")
	case errors.Is(err, domain.ErrEmptyRecommendation):
		writeError(w, http.StatusBadGateway, "empty_recommendation",
			"Generative backend returned no resolvable recommendations")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		h.logger.Error().Err(err).Str("product_id", productID).Msg("recommendation failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
