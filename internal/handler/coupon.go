package handler

import "net/http"

type applyCouponRequest struct {
	Code string `json:"code"`
}

// applyCoupon validates the entered code against the current cart subtotal,
// the only amount a coupon may ever be negotiated against.
func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	applied, err := h.coupons.Validate(r.Context(), req.Code, h.carts.Subtotal())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, applied)
}

func (h *Handler) clearCoupon(w http.ResponseWriter, _ *http.Request) {
	h.coupons.Clear()
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponCatalog.ListCoupons(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}
