package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listOrders(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.orders.List())
}

func (h *Handler) getWishlist(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.wishes.List())
}

type toggleRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, ok := h.catalog.Get(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown product")
		return
	}
	if err := h.wishes.Toggle(r.Context(), p); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.wishes.List())
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.likes.Toggle(r.Context(), req.ProductID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.likes.IDs())
}

func (h *Handler) listNotifications(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"items":  h.inbox.List(),
		"unread": h.inbox.UnreadCount(),
	})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.inbox.MarkRead(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.inbox.List())
}

func (h *Handler) currentToast(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.emitter.Current())
}

func (h *Handler) currentView(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"view": string(h.views.Current())})
}
