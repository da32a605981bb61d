package selector

import (
	"strings"

	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/domain"
)

const (
	// DefaultCap bounds the candidate set so prompts stay inside the
	// backend's input limits.
	DefaultCap = 70

	// minCandidates is the threshold below which the set is padded with
	// arbitrary remaining catalog products.
	minCandidates = 10
)

// relatedCategories is a fixed adjacency table. Categories not listed here
// have no related set.
var relatedCategories = map[string][]string{
	"electronics":      {"accessories", "audio"},
	"accessories":      {"electronics", "audio", "bags"},
	"audio":            {"electronics", "accessories"},
	"bags":             {"accessories", "electronics"},
	"men's clothing":   {"women's clothing", "jewelery"},
	"women's clothing": {"men's clothing", "jewelery"},
	"jewelery":         {"men's clothing", "women's clothing"},
	"furniture":        {"home-decoration", "lighting"},
	"home-decoration":  {"furniture", "lighting"},
	"fragrances":       {"beauty", "skincare"},
	"beauty":           {"fragrances", "skincare"},
	"skincare":         {"beauty", "fragrances"},
}

// Select builds the bounded candidate pool for a focal product. Priority
// order: same category, related categories, then arbitrary padding when the
// first two tiers stay under minCandidates. Ties break by catalog insertion
// order within each tier; no randomization.
func Select(focal *domain.Product, cat *catalog.Store, exclude map[string]struct{}, cap int) []*domain.Product {
	if cap <= 0 {
		cap = DefaultCap
	}

	seen := map[string]struct{}{focal.ID: {}}
	for id := range exclude {
		seen[id] = struct{}{}
	}

	var out []*domain.Product
	add := func(p *domain.Product) bool {
		if len(out) >= cap {
			return false
		}
		if _, dup := seen[p.ID]; dup {
			return true
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		return true
	}

	focalCat := strings.ToLower(focal.Category)
	all := cat.All()

	// Tier 1: same category.
	for _, p := range all {
		if strings.ToLower(p.Category) == focalCat {
			if !add(p) {
				return out
			}
		}
	}

	// Tier 2: related categories.
	related := make(map[string]struct{})
	for _, c := range relatedCategories[focalCat] {
		related[c] = struct{}{}
	}
	for _, p := range all {
		if _, ok := related[strings.ToLower(p.Category)]; ok {
			if !add(p) {
				return out
			}
		}
	}

	// Tier 3: pad with whatever remains, insertion order.
	if len(out) < minCandidates {
		for _, p := range all {
			if !add(p) {
				return out
			}
		}
	}

	return out
}
