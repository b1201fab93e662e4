package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xenking/shophub/internal/domain/cart"
)

// FetchCart returns the canonical line sequence. The caller replaces its
// whole cart with the result.
func (c *Client) FetchCart(ctx context.Context) ([]cart.Line, error) {
	var lines []cart.Line
	if err := c.do(ctx, http.MethodGet, "/api/cart/", true, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

type addLineRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

// AddLine creates a cart line. The response body is ignored; callers
// re-fetch the cart for the canonical state.
func (c *Client) AddLine(ctx context.Context, productID int64, quantity int, variantID *int64) error {
	req := addLineRequest{ProductID: productID, Quantity: quantity, VariantID: variantID}
	return c.do(ctx, http.MethodPost, "/api/cart/", true, req, nil)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateLineQuantity patches a line's quantity. Quantity must be positive;
// removals go through DeleteLine.
func (c *Client) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	path := fmt.Sprintf("/api/cart/%d/update_quantity/", lineID)
	return c.do(ctx, http.MethodPatch, path, true, updateQuantityRequest{Quantity: quantity}, nil)
}

// DeleteLine removes a cart line.
func (c *Client) DeleteLine(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d/", lineID), true, nil, nil)
}
