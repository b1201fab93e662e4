package gateway

import (
	"context"
	"net/http"

	"github.com/xenking/shophub/internal/domain/product"
)

// FetchProducts returns the full product catalog. Filtering and sorting are
// client-side concerns.
func (c *Client) FetchProducts(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/", false, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
