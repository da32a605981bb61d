package domain

import "time"

// InteractionRecord is one logged recommendation event. Records are created
// once per request and never mutated afterwards.
type InteractionRecord struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	ProductID      string    `json:"product_id"`
	RecommendedIDs []string  `json:"recommended_ids"`
	Mode           string    `json:"mode"`
	CreatedAt      time.Time `json:"created_at"`
}

type SessionInfo struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
