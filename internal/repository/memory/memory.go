// Package memory is the zero-dependency catalog store the shop API fixture
// falls back to when postgres is not configured. Seeded from an embedded
// product list.
package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/internal/domain"
)

//go:embed products.json
var seed []byte

type Store struct {
	mu      sync.RWMutex
	catalog []domain.Product
}

// NewStore builds a store seeded with the embedded catalog.
func NewStore() (*Store, error) {
	var catalog []domain.Product
	if err := json.Unmarshal(seed, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode embedded catalog: %w", err)
	}
	return &Store{catalog: catalog}, nil
}

// NewStoreWith builds a store over an explicit catalog; used from tests.
func NewStoreWith(catalog []domain.Product) *Store {
	return &Store{catalog: catalog}
}

func (s *Store) ProductList(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.catalog...), nil
}

func (s *Store) Product(ctx context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrRecordNotFound
}
