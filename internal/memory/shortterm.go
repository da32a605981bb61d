// Package memory holds the two-tier interaction history: a bounded
// in-process ring per session and a durable append-only Postgres log.
package memory

import (
	"sync"

	"github.com/merchkit/cross-sell-service/internal/domain"
)

// DefaultCap bounds each session's recent history. Invalid caps are clamped
// here rather than rejected.
const DefaultCap = 100

// ShortTerm keeps the last N interaction records per session. Sessions are
// created implicitly on first store and fully independent of each other.
type ShortTerm struct {
	mu       sync.RWMutex
	cap      int
	sessions map[string][]domain.InteractionRecord
}

func NewShortTerm(cap int) *ShortTerm {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &ShortTerm{
		cap:      cap,
		sessions: make(map[string][]domain.InteractionRecord),
	}
}

// Store appends a record, evicting the oldest entries once the session
// exceeds the cap.
func (m *ShortTerm) Store(sessionID string, rec domain.InteractionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := append(m.sessions[sessionID], rec)
	if len(records) > m.cap {
		// Re-slice into a fresh array so the evicted prefix can be collected.
		trimmed := make([]domain.InteractionRecord, m.cap)
		copy(trimmed, records[len(records)-m.cap:])
		records = trimmed
	}
	m.sessions[sessionID] = records
}

// Retrieve returns the most recent limit records, newest last. limit <= 0
// returns the whole buffer.
func (m *ShortTerm) Retrieve(sessionID string, limit int) []domain.InteractionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.sessions[sessionID]
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]domain.InteractionRecord, len(records))
	copy(out, records)
	return out
}

// Clear removes the session entirely.
func (m *ShortTerm) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// RecentProductIDs collects the product ids surfaced in the session's last
// limit records, for exclusion and repeat penalties.
func (m *ShortTerm) RecentProductIDs(sessionID string, limit int) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, rec := range m.Retrieve(sessionID, limit) {
		for _, id := range rec.RecommendedIDs {
			seen[id] = struct{}{}
		}
	}
	return seen
}

// SessionCount reports how many sessions currently have buffered history.
func (m *ShortTerm) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
