package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/rs/zerolog"
)

// Store is the read-only product catalog. It is populated once at startup and
// never mutated afterwards, so concurrent reads need no locking.
type Store struct {
	products map[string]*domain.Product
	order    []string
}

// New builds a store from an ordered product slice. Duplicate ids keep the
// first occurrence.
func New(products []domain.Product) *Store {
	s := &Store{products: make(map[string]*domain.Product, len(products))}
	for i := range products {
		p := products[i]
		if _, exists := s.products[p.ID]; exists {
			continue
		}
		s.products[p.ID] = &p
		s.order = append(s.order, p.ID)
	}
	return s
}

// Load reads the products.json snapshot at path. The snapshot is a flat JSON
// object mapping product id to attributes (including cross_sell); it is an
// external contract produced by an offline loader. When the snapshot is
// missing or unreadable the built-in static set is used so the catalog is
// never empty.
func Load(path string, logger zerolog.Logger) *Store {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("catalog snapshot unavailable, using built-in products")
		return New(builtinProducts())
	}
	defer f.Close()

	products, err := decodeSnapshot(f)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("catalog snapshot malformed, using built-in products")
		return New(builtinProducts())
	}
	if len(products) == 0 {
		logger.Warn().Str("path", path).Msg("catalog snapshot empty, using built-in products")
		return New(builtinProducts())
	}

	logger.Info().Int("products", len(products)).Str("path", path).Msg("catalog loaded")
	return New(products)
}

// decodeSnapshot walks the top-level object token by token so the document
// key order survives as catalog insertion order.
func decodeSnapshot(r io.Reader) ([]domain.Product, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("snapshot must be a JSON object, got %v", tok)
	}

	var products []domain.Product
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read product id: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("product id must be a string, got %v", keyTok)
		}

		var p domain.Product
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product %q: %w", id, err)
		}
		p.ID = id
		products = append(products, p)
	}

	return products, nil
}

// Get is a pure lookup; a missing id reports found=false, never an error.
func (s *Store) Get(id string) (*domain.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// Search performs case-insensitive substring matching over id, name and
// category. No ranking, results keep catalog insertion order.
func (s *Store) Search(query string) []*domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []*domain.Product
	for _, id := range s.order {
		p := s.products[id]
		if strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// All returns every product in insertion order. The returned slice is fresh,
// the products themselves are shared read-only references.
func (s *Store) All() []*domain.Product {
	out := make([]*domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

func (s *Store) Len() int {
	return len(s.order)
}
