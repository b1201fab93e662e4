package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/cart"
)

type cartResponse struct {
	Lines     []cart.Line     `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

func (h *Handler) cartSnapshot() cartResponse {
	subtotal := h.carts.Subtotal()
	return cartResponse{
		Lines:     h.carts.Lines(),
		ItemCount: h.carts.ItemCount(),
		Subtotal:  subtotal,
		Total:     h.coupons.EffectiveTotal(subtotal),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

type addToCartRequest struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "product_id must be positive")
		return
	}

	if err := h.carts.AddItem(r.Context(), req.ProductID, req.VariantID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartSnapshot())
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	lineID, ok := lineIDParam(w, r)
	if !ok {
		return
	}
	var req setQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.carts.SetQuantity(r.Context(), lineID, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	lineID, ok := lineIDParam(w, r)
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(r.Context(), lineID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

func lineIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid line id")
		return 0, false
	}
	return id, true
}
