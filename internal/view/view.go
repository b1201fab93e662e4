// Package view tracks which storefront surface is active. The orchestration
// core only ever writes it (e.g. switching to the order list after a commit);
// rendering is the embedding UI's concern.
package view

import "sync"

// View identifies a storefront surface.
type View string

const (
	Products        View = "products"
	Orders          View = "orders"
	Wishlist        View = "wishlist"
	Recommendations View = "recommendations"
)

// Switcher holds the active view.
type Switcher struct {
	mu      sync.RWMutex
	current View
}

// NewSwitcher starts on the products view.
func NewSwitcher() *Switcher {
	return &Switcher{current: Products}
}

// Show makes v the active view.
func (s *Switcher) Show(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = v
}

// Current returns the active view.
func (s *Switcher) Current() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
