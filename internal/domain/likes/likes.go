// Package likes reflects the gateway's per-product like toggle.
package likes

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
)

// Gateway is the remote likes API. Toggling reports the resulting state.
type Gateway interface {
	FetchLikedProductIDs(ctx context.Context) ([]int64, error)
	ToggleLike(ctx context.Context, productID int64) (liked bool, err error)
}

// Store tracks which products the shopper has liked.
type Store struct {
	gw       Gateway
	sessions session.Gate
	notify   toast.Notifier

	mu    sync.RWMutex
	liked map[int64]struct{}
}

// NewStore creates a likes Store.
func NewStore(gw Gateway, sessions session.Gate, notify toast.Notifier) *Store {
	return &Store{gw: gw, sessions: sessions, notify: notify, liked: make(map[int64]struct{})}
}

// Refresh replaces the liked set with the gateway's.
func (s *Store) Refresh(ctx context.Context) error {
	ids, err := s.gw.FetchLikedProductIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch likes")
	}

	liked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		liked[id] = struct{}{}
	}

	s.mu.Lock()
	s.liked = liked
	s.mu.Unlock()
	return nil
}

// Toggle flips the like state at the gateway and applies the reported
// result. Without a session the caller is redirected to login.
func (s *Store) Toggle(ctx context.Context, productID int64) error {
	if !s.sessions.Active() {
		s.notify.Emit("Please login!", toast.Error)
		return session.ErrUnauthenticated
	}

	liked, err := s.gw.ToggleLike(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "toggle like")
	}

	s.mu.Lock()
	if liked {
		s.liked[productID] = struct{}{}
	} else {
		delete(s.liked, productID)
	}
	s.mu.Unlock()
	return nil
}

// Liked reports whether the product is liked.
func (s *Store) Liked(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.liked[productID]
	return ok
}

// IDs returns the liked product ids.
func (s *Store) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.liked))
	for id := range s.liked {
		out = append(out, id)
	}
	return out
}

// ClearLocal drops the local liked set, used on logout.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.liked = make(map[int64]struct{})
	s.mu.Unlock()
}
