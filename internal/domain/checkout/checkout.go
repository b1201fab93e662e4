// Package checkout sequences the multi-step checkout: guards, payment
// method selection, order submission, and post-commit side effects.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/coupon"
	"github.com/xenking/shophub/internal/domain/order"
	"github.com/xenking/shophub/internal/view"
)

// State is the checkout state machine position.
type State string

const (
	StateIdle             State = "idle"
	StateAddressPending   State = "address_pending"
	StatePaymentSelection State = "payment_method_selection"
	StateSubmitting       State = "submitting"
	StateCommitted        State = "committed"
	StateFailed           State = "failed"
)

// PaymentMethod is the shopper's payment choice, confirmed with the order;
// actual payment processing happens server-side.
type PaymentMethod string

const (
	CashOnDelivery PaymentMethod = "COD"
	Online         PaymentMethod = "ONLINE"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == CashOnDelivery || m == Online
}

var (
	// ErrEmptyCart rejects checkout on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingAddress rejects checkout without a shipping address.
	ErrMissingAddress = errors.New("shipping address required")
	// ErrIllegalTransition is returned for operations outside their
	// required state, e.g. committing before the payment view is open.
	ErrIllegalTransition = errors.New("illegal checkout state transition")
	// ErrInvalidPaymentMethod rejects unknown payment methods.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// OrderRequest is the order-creation payload sent to the gateway.
type OrderRequest struct {
	PaymentMethod   PaymentMethod
	ShippingAddress string
	CouponID        *int64
	IdempotencyKey  string
}

// Gateway submits order-creation requests.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (order.Order, error)
}

// Carts is the orchestrator's read-and-clear view of the cart store. The
// orchestrator never mutates lines; it only clears after a confirmed commit.
type Carts interface {
	Empty() bool
	Subtotal() decimal.Decimal
	ClearLocal()
}

// Coupons is the orchestrator's view of the coupon negotiator.
type Coupons interface {
	Applied() (coupon.Applied, bool)
	Clear()
	EffectiveTotal(subtotal decimal.Decimal) decimal.Decimal
}

// Refresher re-fetches a downstream store after a commit.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Views switches the active storefront surface.
type Views interface {
	Show(v view.View)
}
