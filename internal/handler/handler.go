package handler

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/engine"
	"github.com/merchkit/cross-sell-service/internal/memory"
	"github.com/rs/zerolog"
)

type Handler struct {
	engine    *engine.Engine
	catalog   *catalog.Store
	shortTerm *memory.ShortTerm
	longTerm  memory.LongTerm
	backendOn bool
	logger    zerolog.Logger
}

func NewHandler(eng *engine.Engine, cat *catalog.Store, shortTerm *memory.ShortTerm, longTerm memory.LongTerm, backendOn bool, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:    eng,
		catalog:   cat,
		shortTerm: shortTerm,
		longTerm:  longTerm,
		backendOn: backendOn,
		logger:    logger.With().Str("component", "handler").Logger(),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:  "error",
		Error:   errCode,
		Message: message,
	})
}

func writeErrorHint(w http.ResponseWriter, status int, errCode, message, hint string) {
	writeJSON(w, status, ErrorResponse{
		Status:  "error",
		Error:   errCode,
		Message: message,
		Hint:    hint,
	})
}
