package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xenking/shophub/internal/domain/notification"
	"github.com/xenking/shophub/internal/domain/product"
)

type productIDRequest struct {
	ProductID int64 `json:"product_id"`
}

// wishlistEntry wraps the product the gateway nests inside each wishlist row.
type wishlistEntry struct {
	Product product.Product `json:"product"`
}

// FetchWishlist returns the wishlisted products.
func (c *Client) FetchWishlist(ctx context.Context) ([]product.Product, error) {
	var entries []wishlistEntry
	if err := c.do(ctx, http.MethodGet, "/api/wishlist/", true, nil, &entries); err != nil {
		return nil, err
	}
	products := make([]product.Product, len(entries))
	for i, e := range entries {
		products[i] = e.Product
	}
	return products, nil
}

// AddToWishlist adds a product to the wishlist.
func (c *Client) AddToWishlist(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodPost, "/api/wishlist/", true, productIDRequest{ProductID: productID}, nil)
}

// RemoveFromWishlist removes a product from the wishlist by product id.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodPost, "/api/wishlist/remove_by_product/", true,
		productIDRequest{ProductID: productID}, nil)
}

type likeEntry struct {
	Product struct {
		ID int64 `json:"id"`
	} `json:"product"`
}

// FetchLikedProductIDs returns the ids of products the shopper has liked.
func (c *Client) FetchLikedProductIDs(ctx context.Context) ([]int64, error) {
	var entries []likeEntry
	if err := c.do(ctx, http.MethodGet, "/api/likes/", true, nil, &entries); err != nil {
		return nil, err
	}
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.Product.ID
	}
	return ids, nil
}

type toggleLikeResponse struct {
	Liked bool `json:"liked"`
}

// ToggleLike flips the like state for a product and reports the result.
func (c *Client) ToggleLike(ctx context.Context, productID int64) (bool, error) {
	var resp toggleLikeResponse
	err := c.do(ctx, http.MethodPost, "/api/likes/", true, productIDRequest{ProductID: productID}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Liked, nil
}

// FetchNotifications returns the notification inbox.
func (c *Client) FetchNotifications(ctx context.Context) ([]notification.Notification, error) {
	var items []notification.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/", true, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotificationRead marks one inbox entry read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/%d/mark_read/", id), true, nil, nil)
}
