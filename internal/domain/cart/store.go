package cart

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
)

// Store holds the client copy of the cart. Mutations go through the gateway
// and replace the whole line slice from the follow-up fetch. Within one
// operation the re-fetch is strictly sequenced after the mutation; across
// operations issued concurrently the last re-fetch to resolve wins; there is
// no request queue, the server already serializes mutations.
type Store struct {
	gw       Gateway
	sessions session.Gate
	notify   toast.Notifier

	mu    sync.RWMutex
	lines []Line
}

// NewStore creates a cart Store.
func NewStore(gw Gateway, sessions session.Gate, notify toast.Notifier) *Store {
	return &Store{gw: gw, sessions: sessions, notify: notify}
}

// AddItem adds one unit of a product (optionally a specific variant) to the
// cart. Without a session no network call is made: the caller gets
// session.ErrUnauthenticated and is expected to prompt for login.
func (s *Store) AddItem(ctx context.Context, productID int64, variantID *int64) error {
	if !s.sessions.Active() {
		s.notify.Emit("Please login!", toast.Error)
		return session.ErrUnauthenticated
	}

	if err := s.gw.AddLine(ctx, productID, 1, variantID); err != nil {
		s.notify.Emit("Failed to add", toast.Error)
		return errors.Wrap(err, "add line")
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	s.notify.Emit("Added to cart!", toast.Success)
	return nil
}

// SetQuantity changes a line's quantity. A quantity of zero or less is a
// removal. Either way the cart is re-fetched afterwards. Without a session
// this is a no-op.
func (s *Store) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	if !s.sessions.Active() {
		return nil
	}

	var err error
	if quantity > 0 {
		err = s.gw.UpdateLineQuantity(ctx, lineID, quantity)
	} else {
		err = s.gw.DeleteLine(ctx, lineID)
	}
	if err != nil {
		return errors.Wrap(err, "update line")
	}

	return s.Refresh(ctx)
}

// RemoveItem deletes a line and re-fetches. Without a session this is a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, lineID int64) error {
	if !s.sessions.Active() {
		return nil
	}

	if err := s.gw.DeleteLine(ctx, lineID); err != nil {
		return errors.Wrap(err, "delete line")
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	s.notify.Emit("Removed", toast.Info)
	return nil
}

// Refresh replaces the local lines with the gateway's canonical cart.
func (s *Store) Refresh(ctx context.Context) error {
	lines, err := s.gw.FetchCart(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch cart")
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

// ClearLocal drops the local lines without contacting the gateway. Used
// after a committed order (the server already emptied the cart) and on
// logout.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal is the sum of line totals, recomputed on every read.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	for _, l := range s.lines {
		sum = sum.Add(l.TotalPrice)
	}
	return sum
}

// ItemCount is the sum of line quantities, recomputed on every read.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}
