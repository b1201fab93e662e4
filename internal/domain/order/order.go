// Package order mirrors the server-owned order list for display. The client
// never mutates orders directly; it only re-fetches after placement.
package order

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/product"
)

// Order is a placed order as reported by the gateway.
type Order struct {
	ID              int64           `json:"id"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Item is a single line of a placed order.
type Item struct {
	Product  product.Ref     `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Gateway is the remote order-list API.
type Gateway interface {
	FetchOrders(ctx context.Context) ([]Order, error)
}

// Store holds the read-only order list.
type Store struct {
	gw Gateway

	mu     sync.RWMutex
	orders []Order
}

// NewStore creates an order Store.
func NewStore(gw Gateway) *Store {
	return &Store{gw: gw}
}

// Refresh replaces the list with the gateway's current orders.
func (s *Store) Refresh(ctx context.Context) error {
	orders, err := s.gw.FetchOrders(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch orders")
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// List returns a copy of the current orders.
func (s *Store) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ClearLocal drops the local list, used on logout.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()
}
