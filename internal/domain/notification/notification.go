// Package notification mirrors the server-side notification inbox (distinct
// from the ephemeral toast channel).
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// Notification is one inbox entry.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway is the remote notification API.
type Gateway interface {
	FetchNotifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// Store holds the inbox.
type Store struct {
	gw Gateway

	mu    sync.RWMutex
	items []Notification
}

// NewStore creates a notification Store.
func NewStore(gw Gateway) *Store {
	return &Store{gw: gw}
}

// Refresh replaces the inbox with the gateway's current notifications.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.gw.FetchNotifications(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch notifications")
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// MarkRead marks one notification read at the gateway and re-fetches.
func (s *Store) MarkRead(ctx context.Context, id int64) error {
	if err := s.gw.MarkNotificationRead(ctx, id); err != nil {
		return errors.Wrap(err, "mark read")
	}
	return s.Refresh(ctx)
}

// List returns a copy of the inbox.
func (s *Store) List() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount reports how many notifications are unread.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// ClearLocal drops the local inbox, used on logout.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}
