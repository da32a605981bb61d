package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/merchkit/cross-sell-service/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Routes
	r.Post("/api/recommend", h.Recommend)
	r.Post("/api/recommend/batch", h.BatchRecommend)
	r.Post("/api/search", h.Search)
	r.Get("/api/status", h.Status)
	r.Get("/api/sessions", h.ListSessions)
	r.Get("/api/sessions/{sessionID}/history", h.SessionHistory)
	r.Delete("/api/sessions/{sessionID}", h.ClearSession)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
