// Package cart keeps a server-synchronized shopping cart. The gateway owns
// the cart; every mutation is followed by a full re-fetch so the local copy
// never shows quantities or prices the server has not confirmed.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/product"
)

// Line is one product (or variant) entry in the cart. UnitPrice and
// TotalPrice are server-computed and trusted from the last fetch.
type Line struct {
	ID         int64            `json:"id"`
	Product    product.Ref      `json:"product"`
	Variant    *product.Variant `json:"variant,omitempty"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// Gateway is the remote cart API consumed by the Store.
type Gateway interface {
	FetchCart(ctx context.Context) ([]Line, error)
	AddLine(ctx context.Context, productID int64, quantity int, variantID *int64) error
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
}
