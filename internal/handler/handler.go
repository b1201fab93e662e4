// Package handler exposes the storefront core over a local HTTP/JSON
// surface. Handlers stay thin: they decode input, delegate to the stores,
// and report state; every outcome toast is emitted by the core itself.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shophub/internal/domain/cart"
	"github.com/xenking/shophub/internal/domain/checkout"
	"github.com/xenking/shophub/internal/domain/coupon"
	"github.com/xenking/shophub/internal/domain/likes"
	"github.com/xenking/shophub/internal/domain/notification"
	"github.com/xenking/shophub/internal/domain/order"
	"github.com/xenking/shophub/internal/domain/product"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/domain/wishlist"
	"github.com/xenking/shophub/internal/gateway"
	"github.com/xenking/shophub/internal/toast"
	"github.com/xenking/shophub/internal/view"
)

// Handler wires every store behind the local JSON API.
type Handler struct {
	sessions      *session.Manager
	catalog       *product.Store
	carts         *cart.Store
	coupons       *coupon.Negotiator
	orchestrator  *checkout.Orchestrator
	orders        *order.Store
	wishes        *wishlist.Store
	likes         *likes.Store
	inbox         *notification.Store
	emitter       *toast.Emitter
	views         *view.Switcher
	couponCatalog CouponCatalog
}

// CouponCatalog lists the coupons the gateway advertises.
type CouponCatalog interface {
	ListCoupons(ctx context.Context) ([]gateway.AvailableCoupon, error)
}

// New creates the Handler.
func New(
	sessions *session.Manager,
	catalog *product.Store,
	carts *cart.Store,
	coupons *coupon.Negotiator,
	orchestrator *checkout.Orchestrator,
	orders *order.Store,
	wishes *wishlist.Store,
	liked *likes.Store,
	inbox *notification.Store,
	emitter *toast.Emitter,
	views *view.Switcher,
	couponCatalog CouponCatalog,
) *Handler {
	return &Handler{
		sessions:      sessions,
		catalog:       catalog,
		carts:         carts,
		coupons:       coupons,
		orchestrator:  orchestrator,
		orders:        orders,
		wishes:        wishes,
		likes:         liked,
		inbox:         inbox,
		emitter:       emitter,
		views:         views,
		couponCatalog: couponCatalog,
	}
}

// Routes builds the chi router for the /api surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.currentSession)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
	})

	r.Get("/products", h.listProducts)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Post("/", h.addToCart)
		r.Patch("/{lineID}", h.setQuantity)
		r.Delete("/{lineID}", h.removeFromCart)
	})

	r.Route("/coupon", func(r chi.Router) {
		r.Post("/", h.applyCoupon)
		r.Delete("/", h.clearCoupon)
	})
	r.Get("/coupons", h.listCoupons)

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.checkoutState)
		r.Post("/address", h.setAddress)
		r.Post("/begin", h.beginCheckout)
		r.Post("/method", h.selectMethod)
		r.Post("/commit", h.commit)
		r.Post("/cancel", h.cancel)
	})

	r.Get("/orders", h.listOrders)

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", h.getWishlist)
		r.Post("/toggle", h.toggleWishlist)
	})
	r.Post("/likes/toggle", h.toggleLike)

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Post("/{id}/read", h.markNotificationRead)
	})

	r.Get("/toast", h.currentToast)
	r.Get("/view", h.currentView)

	return r
}

// LoadUserData refreshes every per-user store after login or restore,
// so every surface is populated at once. Failures are logged
// per store and do not abort the rest.
func (h *Handler) LoadUserData(ctx context.Context) {
	lg := zctx.From(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for name, refresh := range map[string]func(context.Context) error{
		"cart":          h.carts.Refresh,
		"orders":        h.orders.Refresh,
		"wishlist":      h.wishes.Refresh,
		"likes":         h.likes.Refresh,
		"notifications": h.inbox.Refresh,
	} {
		g.Go(func() error {
			if err := refresh(ctx); err != nil {
				lg.Warn("User data load failed", zap.String("store", name), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError maps core errors to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var rejected *coupon.RejectedError
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, coupon.ErrEmptyCode),
		errors.Is(err, checkout.ErrMissingAddress),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, coupon.ErrInvalidCoupon), errors.As(err, &rejected):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusBadGateway, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
