package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/checkout"
	"github.com/xenking/shophub/internal/domain/coupon"
)

type checkoutStateResponse struct {
	State           checkout.State         `json:"state"`
	ShippingAddress string                 `json:"shipping_address"`
	PaymentMethod   checkout.PaymentMethod `json:"payment_method"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Total           decimal.Decimal        `json:"total"`
	Coupon          *coupon.Applied        `json:"coupon,omitempty"`
}

func (h *Handler) checkoutSnapshot() checkoutStateResponse {
	resp := checkoutStateResponse{
		State:           h.orchestrator.State(),
		ShippingAddress: h.orchestrator.ShippingAddress(),
		PaymentMethod:   h.orchestrator.Method(),
		Subtotal:        h.carts.Subtotal(),
		Total:           h.orchestrator.Total(),
	}
	if applied, ok := h.coupons.Applied(); ok {
		resp.Coupon = &applied
	}
	return resp
}

func (h *Handler) checkoutState(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.checkoutSnapshot())
}

type setAddressRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (h *Handler) setAddress(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.orchestrator.SetShippingAddress(req.ShippingAddress)
	respondJSON(w, http.StatusOK, h.checkoutSnapshot())
}

func (h *Handler) beginCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.Begin(); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.checkoutSnapshot())
}

type selectMethodRequest struct {
	PaymentMethod checkout.PaymentMethod `json:"payment_method"`
}

func (h *Handler) selectMethod(w http.ResponseWriter, r *http.Request) {
	var req selectMethodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.orchestrator.SelectPaymentMethod(req.PaymentMethod); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.checkoutSnapshot())
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	placed, err := h.orchestrator.Commit(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

func (h *Handler) cancel(w http.ResponseWriter, _ *http.Request) {
	h.orchestrator.Cancel()
	respondJSON(w, http.StatusOK, h.checkoutSnapshot())
}
