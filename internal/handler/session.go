package handler

import (
	"net/http"

	"github.com/xenking/shophub/internal/view"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity,omitempty"`
}

func (h *Handler) currentSession(w http.ResponseWriter, _ *http.Request) {
	s, ok := h.sessions.Current()
	respondJSON(w, http.StatusOK, sessionResponse{Authenticated: ok, Identity: s.Identity})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.sessions.Login(r.Context(), req.Username, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	h.LoadUserData(r.Context())
	respondJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Identity: req.Username})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.sessions.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "registration failed")
		return
	}

	h.LoadUserData(r.Context())
	respondJSON(w, http.StatusCreated, sessionResponse{Authenticated: true, Identity: req.Username})
}

// logout destroys the session and drops every per-user store, then returns
// to the products view.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Logout()
	h.carts.ClearLocal()
	h.orders.ClearLocal()
	h.wishes.ClearLocal()
	h.likes.ClearLocal()
	h.inbox.ClearLocal()
	h.coupons.Clear()
	h.views.Show(view.Products)

	respondJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}
