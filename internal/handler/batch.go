package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/merchkit/cross-sell-service/internal/engine"
	"golang.org/x/sync/errgroup"
)

const (
	batchConcurrency = 8
	batchMaxProducts = 20
)

type batchRequest struct {
	ProductIDs []string `json:"product_ids"`
	Limit      *int     `json:"limit,omitempty"`
	SessionID  string   `json:"session_id,omitempty"`
	Mode       string   `json:"mode,omitempty"`
}

type batchProductResult struct {
	ProductID       string                      `json:"product_id"`
	Status          string                      `json:"status"`
	Recommendations []domain.RecommendationItem `json:"recommendations,omitempty"`
	Error           string                      `json:"error,omitempty"`
	Message         string                      `json:"message,omitempty"`
}

type batchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type batchResponse struct {
	Status      string               `json:"status"`
	SessionID   string               `json:"session_id"`
	Results     []batchProductResult `json:"results"`
	Summary     batchSummary         `json:"summary"`
	GeneratedAt string               `json:"generated_at"`
}

// POST /api/recommend/batch
//
// Fans out over the requested product ids with a bounded worker group.
// Individual failures are captured per product, never failing the batch.
func (h *Handler) BatchRecommend(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if len(req.ProductIDs) == 0 || len(req.ProductIDs) > batchMaxProducts {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "product_ids must contain between 1 and 20 entries")
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

	start := time.Now()
	results := make([]batchProductResult, len(req.ProductIDs))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i, productID := range req.ProductIDs {
		i, productID := i, productID
		g.Go(func() error {
			result, err := h.engine.Recommend(ctx, engine.Request{
				ProductID: productID,
				SessionID: sessionID,
				Limit:     limit,
				Mode:      mode,
			})
			if err != nil {
				code, msg := categorizeBatchError(err)
				results[i] = batchProductResult{
					ProductID: productID,
					Status:    "failed",
					Error:     code,
					Message:   msg,
				}
				return nil
			}
			results[i] = batchProductResult{
				ProductID:       productID,
				Status:          "success",
				Recommendations: result.Items,
			}
			return nil
		})
	}
	g.Wait()

	successCount := 0
	for _, res := range results {
		if res.Status == "success" {
			successCount++
		}
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Status:    "success",
		SessionID: sessionID,
		Results:   results,
		Summary: batchSummary{
			SuccessCount:     successCount,
			FailedCount:      len(results) - successCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func categorizeBatchError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found", "product not found"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend_unavailable", "generative backend unavailable"
	case domain.IsFormatError(err):
		return "generation_format_error", "backend returned an irreparable payload"
	case errors.Is(err, domain.ErrEmptyRecommendation):
		return "empty_recommendation", "no resolvable recommendations"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}
