// Package coupon negotiates discount codes with the gateway. Pricing
// authority stays remote: the negotiator passes the gateway's discount and
// final amounts through untouched.
package coupon

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCode is returned for a blank code. No network call is made.
	ErrEmptyCode = errors.New("coupon code required")
	// ErrInvalidCoupon is the generic rejection when the gateway gives no reason.
	ErrInvalidCoupon = errors.New("invalid coupon")
)

// RejectedError carries the gateway's rejection reason verbatim.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// Applied is a successfully validated coupon. It exists only client-side
// between validation and either checkout completion or manual removal.
type Applied struct {
	CouponID       int64           `json:"coupon_id"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// Gateway validates a code against the current subtotal. Implementations
// return *RejectedError when the gateway rejects the code with a reason.
type Gateway interface {
	ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (Applied, error)
}
