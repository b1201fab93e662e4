package product

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"golang.org/x/sync/singleflight"
)

// Gateway is the remote catalog API.
type Gateway interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Cache is an optional read-through catalog cache. Get reports a miss for
// any cache failure; Set is best effort.
type Cache interface {
	Get(ctx context.Context) ([]Product, bool)
	Set(ctx context.Context, products []Product)
}

// Store holds the product catalog. Browsing is far more frequent than cart
// mutation, so refreshes are deduplicated with singleflight and optionally
// served from a cache.
type Store struct {
	gw    Gateway
	cache Cache

	sf singleflight.Group

	mu       sync.RWMutex
	products []Product
}

// NewStore creates a catalog Store. cache may be nil.
func NewStore(gw Gateway, cache Cache) *Store {
	return &Store{gw: gw, cache: cache}
}

// Load populates the catalog, preferring the cache over a gateway fetch.
func (s *Store) Load(ctx context.Context) error {
	if s.cache != nil {
		if products, ok := s.cache.Get(ctx); ok {
			s.mu.Lock()
			s.products = products
			s.mu.Unlock()
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the catalog from the gateway, replacing the local copy and
// repopulating the cache. Concurrent refreshes share a single fetch.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("catalog", func() (any, error) {
		products, err := s.gw.FetchProducts(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "fetch products")
		}

		s.mu.Lock()
		s.products = products
		s.mu.Unlock()

		if s.cache != nil {
			s.cache.Set(ctx, products)
		}
		return nil, nil
	})
	return err
}

// List returns products matching the filter in the given sort order.
func (s *Store) List(f Filter, order SortOrder) []Product {
	s.mu.RLock()
	products := s.products
	s.mu.RUnlock()
	return Sorted(f.Apply(products), order)
}

// Get returns a product by id.
func (s *Store) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
