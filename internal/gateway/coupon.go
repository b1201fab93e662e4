package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/coupon"
)

type validateCouponRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// ValidateCoupon asks the gateway to validate a code against the given
// amount. Accepted codes come back with the gateway-computed discount and
// final amounts. A rejection with a reason surfaces as *coupon.RejectedError.
func (c *Client) ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (coupon.Applied, error) {
	var applied coupon.Applied
	err := c.do(ctx, http.MethodPost, "/api/coupons/validate/", true,
		validateCouponRequest{Code: code, Amount: amount}, &applied)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status < http.StatusInternalServerError {
			if reason := errorReason(statusErr); reason != "" {
				return coupon.Applied{}, &coupon.RejectedError{Reason: reason}
			}
		}
		return coupon.Applied{}, err
	}
	return applied, nil
}

// AvailableCoupon is a coupon the gateway advertises to the shopper.
type AvailableCoupon struct {
	ID                int64           `json:"id"`
	Code              string          `json:"code"`
	DiscountType      string          `json:"discount_type"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	MinPurchaseAmount decimal.Decimal `json:"min_purchase_amount"`
	ValidUntil        *time.Time      `json:"valid_until,omitempty"`
}

// ListCoupons returns the coupons advertised for the current shopper.
func (c *Client) ListCoupons(ctx context.Context) ([]AvailableCoupon, error) {
	var coupons []AvailableCoupon
	if err := c.do(ctx, http.MethodGet, "/api/coupons/", true, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}
