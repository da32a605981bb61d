package memory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merchkit/cross-sell-service/internal/domain"
)

// LongTerm is the durable append-only audit log. Writes are fire-and-forget
// from the engine's perspective: a failure is logged, never surfaced.
type LongTerm interface {
	Persist(ctx context.Context, rec domain.InteractionRecord) error
	History(ctx context.Context, sessionID string) ([]domain.InteractionRecord, error)
	ListSessions(ctx context.Context) ([]domain.SessionInfo, error)
}

// PostgresStore implements LongTerm on a pgx pool. Rows are only ever
// inserted; the session header row is created on first write.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Persist(ctx context.Context, rec domain.InteractionRecord) error {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (session_id, created_at) VALUES ($1, $2)
		 ON CONFLICT (session_id) DO NOTHING`,
		rec.SessionID, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("%w: session header for %s: %v", domain.ErrMemoryWrite, rec.SessionID, err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO interactions (id, session_id, product_id, recommended_ids, mode, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.SessionID, rec.ProductID, rec.RecommendedIDs, rec.Mode, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("%w: interaction %s: %v", domain.ErrMemoryWrite, rec.ID, err)
	}

	return nil
}

// History returns the full chronological history for one session.
func (s *PostgresStore) History(ctx context.Context, sessionID string) ([]domain.InteractionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, product_id, recommended_ids, mode, created_at
		 FROM interactions
		 WHERE session_id = $1
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var records []domain.InteractionRecord
	for rows.Next() {
		var rec domain.InteractionRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.ProductID, &rec.RecommendedIDs, &rec.Mode, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context) ([]domain.SessionInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT session_id, created_at FROM sessions ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionInfo
	for rows.Next() {
		var info domain.SessionInfo
		if err := rows.Scan(&info.SessionID, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
