package coupon

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/toast"
)

// Negotiator validates user-entered codes and holds the applied discount.
// An applied coupon persists across cart changes until explicit removal or
// a successful checkout.
type Negotiator struct {
	gw     Gateway
	notify toast.Notifier

	mu      sync.RWMutex
	code    string
	applied *Applied
}

// NewNegotiator creates a Negotiator.
func NewNegotiator(gw Gateway, notify toast.Notifier) *Negotiator {
	return &Negotiator{gw: gw, notify: notify}
}

// Validate sends the code and the current subtotal to the gateway. A blank
// code fails locally with ErrEmptyCode. On acceptance the returned Applied
// record (gateway-computed amounts) is stored; on rejection the gateway's
// reason is surfaced verbatim, or ErrInvalidCoupon when it gives none.
func (n *Negotiator) Validate(ctx context.Context, code string, amount decimal.Decimal) (Applied, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		n.notify.Emit("Enter coupon code", toast.Error)
		return Applied{}, ErrEmptyCode
	}

	applied, err := n.gw.ValidateCoupon(ctx, code, amount)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) && rejected.Reason != "" {
			n.notify.Emit(rejected.Reason, toast.Error)
			return Applied{}, rejected
		}
		n.notify.Emit("Invalid coupon", toast.Error)
		return Applied{}, ErrInvalidCoupon
	}

	if applied.Code == "" {
		applied.Code = code
	}

	n.mu.Lock()
	n.code = code
	n.applied = &applied
	n.mu.Unlock()

	n.notify.Emit(fmt.Sprintf("Saved ₹%s!", applied.DiscountAmount), toast.Success)
	return applied, nil
}

// Clear drops the applied coupon and the entered code without contacting
// the gateway.
func (n *Negotiator) Clear() {
	n.mu.Lock()
	n.code = ""
	n.applied = nil
	n.mu.Unlock()
}

// Applied returns the applied coupon and whether one exists.
func (n *Negotiator) Applied() (Applied, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.applied == nil {
		return Applied{}, false
	}
	return *n.applied, true
}

// Code returns the entered coupon code.
func (n *Negotiator) Code() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.code
}

// EffectiveTotal is the single display/submission rule for order totals:
// the gateway's final amount when a coupon is applied, else the subtotal.
func (n *Negotiator) EffectiveTotal(subtotal decimal.Decimal) decimal.Decimal {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.applied != nil {
		return n.applied.FinalAmount
	}
	return subtotal
}
