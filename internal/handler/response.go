package handler

import "github.com/merchkit/cross-sell-service/internal/domain"

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResponse struct {
	Status          string                      `json:"status"`
	ProductID       string                      `json:"product_id"`
	SessionID       string                      `json:"session_id"`
	Limit           int                         `json:"limit"`
	Mode            string                      `json:"mode"`
	Recommendations []domain.RecommendationItem `json:"recommendations"`
	Metadata        RecommendationMeta          `json:"metadata"`
}

type SearchResponse struct {
	Status  string            `json:"status"`
	Query   string            `json:"query"`
	Count   int               `json:"count"`
	Results []*domain.Product `json:"results"`
}

type StatusResponse struct {
	Status            string `json:"status"`
	Agent             string `json:"agent"`
	Version           string `json:"version"`
	TotalProducts     int    `json:"total_products"`
	MemorySessions    int    `json:"memory_sessions"`
	GenerativeBackend bool   `json:"generative_backend"`
	Timestamp         string `json:"timestamp"`
}

type SessionListResponse struct {
	Status   string               `json:"status"`
	Count    int                  `json:"count"`
	Sessions []domain.SessionInfo `json:"sessions"`
}

type SessionHistoryResponse struct {
	Status    string                     `json:"status"`
	SessionID string                     `json:"session_id"`
	Count     int                        `json:"count"`
	History   []domain.InteractionRecord `json:"history"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}
