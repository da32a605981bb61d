package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GET /api/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if h.longTerm == nil {
		writeError(w, http.StatusServiceUnavailable, "memory_unavailable",
			"Long-term memory store is not configured")
		return
	}

	sessions, err := h.longTerm.ListSessions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list sessions failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, SessionListResponse{
		Status:   "success",
		Count:    len(sessions),
		Sessions: sessions,
	})
}

// GET /api/sessions/{sessionID}/history
//
// Serves the durable history when the long-term store is configured,
// otherwise falls back to the short-term buffer.
func (h *Handler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if h.longTerm == nil {
		records := h.shortTerm.Retrieve(sessionID, 0)
		writeJSON(w, http.StatusOK, SessionHistoryResponse{
			Status:    "success",
			SessionID: sessionID,
			Count:     len(records),
			History:   records,
		})
		return
	}

	records, err := h.longTerm.History(r.Context(), sessionID)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("session history failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, SessionHistoryResponse{
		Status:    "success",
		SessionID: sessionID,
		Count:     len(records),
		History:   records,
	})
}

// DELETE /api/sessions/{sessionID}
//
// Clears the short-term buffer only; the long-term log is append-only and
// keeps the session's history.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.shortTerm.Clear(sessionID)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "success",
		"session_id": sessionID,
	})
}
