// Package wishlist is a simple CRUD reflector over the gateway's wishlist.
package wishlist

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/shophub/internal/domain/product"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
)

// Gateway is the remote wishlist API.
type Gateway interface {
	FetchWishlist(ctx context.Context) ([]product.Product, error)
	AddToWishlist(ctx context.Context, productID int64) error
	RemoveFromWishlist(ctx context.Context, productID int64) error
}

// Store mirrors the wishlist locally and toggles membership remotely.
type Store struct {
	gw       Gateway
	sessions session.Gate
	notify   toast.Notifier

	mu       sync.RWMutex
	products []product.Product
}

// NewStore creates a wishlist Store.
func NewStore(gw Gateway, sessions session.Gate, notify toast.Notifier) *Store {
	return &Store{gw: gw, sessions: sessions, notify: notify}
}

// Refresh replaces the local wishlist with the gateway's.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.gw.FetchWishlist(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch wishlist")
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// Toggle adds the product when absent and removes it when present. Without
// a session the caller gets session.ErrUnauthenticated to prompt login.
func (s *Store) Toggle(ctx context.Context, p product.Product) error {
	if !s.sessions.Active() {
		s.notify.Emit("Please login!", toast.Error)
		return session.ErrUnauthenticated
	}

	if s.Contains(p.ID) {
		if err := s.gw.RemoveFromWishlist(ctx, p.ID); err != nil {
			return errors.Wrap(err, "remove from wishlist")
		}
		s.mu.Lock()
		kept := s.products[:0]
		for _, item := range s.products {
			if item.ID != p.ID {
				kept = append(kept, item)
			}
		}
		s.products = kept
		s.mu.Unlock()
		s.notify.Emit("Removed", toast.Info)
		return nil
	}

	if err := s.gw.AddToWishlist(ctx, p.ID); err != nil {
		return errors.Wrap(err, "add to wishlist")
	}
	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	s.notify.Emit("Added to wishlist!", toast.Success)
	return nil
}

// Contains reports wishlist membership.
func (s *Store) Contains(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.products {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// List returns a copy of the wishlist.
func (s *Store) List() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ClearLocal drops the local wishlist, used on logout.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.products = nil
	s.mu.Unlock()
}
