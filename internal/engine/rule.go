package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/merchkit/cross-sell-service/internal/selector"
)

const (
	// Products with few recorded cross-sell edges get the stronger score:
	// a short list means each edge was a deliberate pairing.
	confidenceFewEdges  = 0.8
	confidenceManyEdges = 0.7
	fewEdgesThreshold   = 2

	// repeatPenalty is the multiplicative discount for candidates already
	// surfaced in the session's recent history.
	repeatPenalty = 0.7
)

// ruleBased scores the focal product's precomputed cross-sell edges, falling
// back to the candidate selector when none are recorded. Ordered by
// descending confidence, stable, truncated to limit.
func (e *Engine) ruleBased(focal *domain.Product, recent map[string]struct{}, limit int) []domain.RecommendationItem {
	ids := focal.CrossSell
	if len(ids) == 0 {
		for _, p := range selector.Select(focal, e.catalog, recent, selector.DefaultCap) {
			ids = append(ids, p.ID)
		}
	}

	base := confidenceManyEdges
	if len(focal.CrossSell) > 0 && len(focal.CrossSell) <= fewEdgesThreshold {
		base = confidenceFewEdges
	}

	items := make([]domain.RecommendationItem, 0, len(ids))
	for _, id := range ids {
		product, ok := e.catalog.Get(id)
		if !ok {
			continue
		}

		conf := base
		if _, repeated := recent[id]; repeated {
			conf *= repeatPenalty
		}
		conf = math.Round(domain.ClampConfidence(conf)*100) / 100

		items = append(items, domain.RecommendationItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Category:    product.Category,
			Price:       product.Price,
			Confidence:  conf,
			Reason:      fmt.Sprintf("Frequently bought together with %s", focal.Name),
			Description: product.Description,
			Image:       product.Image,
			Source:      domain.SourceRule,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Confidence > items[j].Confidence
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
