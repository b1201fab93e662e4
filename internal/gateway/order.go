package gateway

import (
	"context"
	"net/http"

	"github.com/xenking/shophub/internal/domain/checkout"
	"github.com/xenking/shophub/internal/domain/order"
)

type createOrderRequest struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
	CouponID        *int64 `json:"coupon_id,omitempty"`
}

// CreateOrder submits the checkout draft. The idempotency key travels as a
// header so a resubmitted draft cannot double-place an order.
func (c *Client) CreateOrder(ctx context.Context, req checkout.OrderRequest) (order.Order, error) {
	var headers []string
	if req.IdempotencyKey != "" {
		headers = append(headers, "Idempotency-Key", req.IdempotencyKey)
	}

	var placed order.Order
	err := c.do(ctx, http.MethodPost, "/api/orders/", true, createOrderRequest{
		PaymentMethod:   string(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		CouponID:        req.CouponID,
	}, &placed, headers...)
	if err != nil {
		return order.Order{}, err
	}
	return placed, nil
}

// FetchOrders returns the shopper's order list, newest first as the gateway
// reports them.
func (c *Client) FetchOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/", true, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
