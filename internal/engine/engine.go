// Package engine orchestrates the recommendation pipeline: catalog lookup,
// candidate selection, the generative or rule-based scoring path, and the
// two-tier interaction memory.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/merchkit/cross-sell-service/internal/cache"
	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/merchkit/cross-sell-service/internal/llm"
	"github.com/merchkit/cross-sell-service/internal/memory"
	"github.com/merchkit/cross-sell-service/internal/normalize"
	"github.com/merchkit/cross-sell-service/internal/prompt"
	"github.com/merchkit/cross-sell-service/internal/selector"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 3
	maxLimit     = 5

	// historyWindow is how many recent interactions feed the repeat penalty
	// and candidate exclusion.
	historyWindow = 10
)

type Engine struct {
	catalog   *catalog.Store
	backend   llm.Client
	shortTerm *memory.ShortTerm
	longTerm  memory.LongTerm
	cache     *cache.Cache
	logger    zerolog.Logger
}

// New wires the engine. backend, longTerm and cache may be nil: generative
// mode then fails with ErrBackendUnavailable, and the corresponding memory or
// cache tier is simply skipped.
func New(cat *catalog.Store, backend llm.Client, shortTerm *memory.ShortTerm, longTerm memory.LongTerm, c *cache.Cache, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog:   cat,
		backend:   backend,
		shortTerm: shortTerm,
		longTerm:  longTerm,
		cache:     c,
		logger:    logger.With().Str("component", "engine").Logger(),
	}
}

type Request struct {
	ProductID string
	SessionID string
	Limit     int
	Mode      domain.Mode
}

// Recommend runs one recommendation request start to finish. The focal
// product is resolved before anything else, so an unknown id never reaches
// the backend.
func (e *Engine) Recommend(ctx context.Context, req Request) (*domain.RecommendationResult, error) {
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	} else if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	if req.Mode == "" {
		req.Mode = domain.ModeRule
	}

	focal, ok := e.catalog.Get(req.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, req.ProductID)
	}

	if e.cache != nil {
		cached, found, err := e.cache.Get(ctx, req.SessionID, req.ProductID, req.Mode, req.Limit)
		if err != nil {
			e.logger.Warn().Err(err).Str("product_id", req.ProductID).Msg("cache get failed")
		}
		if found {
			return &domain.RecommendationResult{Items: cached, CacheHit: true}, nil
		}
	}

	recent := e.shortTerm.RecentProductIDs(req.SessionID, historyWindow)

	var (
		items []domain.RecommendationItem
		err   error
	)
	switch req.Mode {
	case domain.ModeGenerative:
		items, err = e.generative(ctx, focal, recent, req.Limit)
	default:
		items = e.ruleBased(focal, recent, req.Limit)
	}
	if err != nil {
		return nil, err
	}

	e.recordInteraction(ctx, req, items)

	if e.cache != nil {
		if cacheErr := e.cache.Set(ctx, req.SessionID, req.ProductID, req.Mode, req.Limit, items); cacheErr != nil {
			e.logger.Warn().Err(cacheErr).Str("product_id", req.ProductID).Msg("cache set failed")
		}
	}

	return &domain.RecommendationResult{Items: items}, nil
}

// generative runs selector -> prompt -> backend -> normalizer. One backend
// attempt per request; the normalizer's repair passes are text-local, not
// network retries.
func (e *Engine) generative(ctx context.Context, focal *domain.Product, recent map[string]struct{}, limit int) ([]domain.RecommendationItem, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: no backend configured", domain.ErrBackendUnavailable)
	}

	candidates := selector.Select(focal, e.catalog, recent, selector.DefaultCap)
	if len(candidates) == 0 {
		return nil, domain.ErrEmptyRecommendation
	}

	raw, err := e.backend.Complete(ctx, prompt.Build(focal, candidates, limit))
	if err != nil {
		return nil, err
	}

	items, err := normalize.Normalize(raw, e.catalog, limit)
	if err != nil {
		var fe *domain.FormatError
		if errors.As(err, &fe) {
			e.logger.Error().
				Str("product_id", focal.ID).
				Str("raw_payload", fe.Raw).
				Msg("backend payload irreparable")
		}
		return nil, err
	}
	return items, nil
}

// recordInteraction writes the outcome to both memory tiers. The long-term
// write is store-and-forget: a failure is logged and never blocks the
// response.
func (e *Engine) recordInteraction(ctx context.Context, req Request, items []domain.RecommendationItem) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	rec := domain.InteractionRecord{
		ID:             uuid.NewString(),
		SessionID:      req.SessionID,
		ProductID:      req.ProductID,
		RecommendedIDs: ids,
		Mode:           string(req.Mode),
		CreatedAt:      time.Now().UTC(),
	}

	e.shortTerm.Store(req.SessionID, rec)

	if e.longTerm != nil {
		if err := e.longTerm.Persist(ctx, rec); err != nil {
			e.logger.Warn().Err(err).Str("session_id", req.SessionID).Msg("long-term write failed")
		}
	}
}
