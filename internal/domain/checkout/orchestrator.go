package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shophub/internal/domain/order"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
	"github.com/xenking/shophub/internal/view"
)

// Orchestrator drives Idle → AddressPending → PaymentMethodSelection →
// Submitting → {Committed | Failed}. It reads the cart and coupon state to
// build the order request and clears both only after a confirmed commit.
type Orchestrator struct {
	gw       Gateway
	sessions session.Gate
	carts    Carts
	coupons  Coupons
	orders   Refresher
	inbox    Refresher
	views    Views
	newKey   func() string
	notify   toast.Notifier

	mu      sync.RWMutex
	state   State
	address string
	method  PaymentMethod
}

// NewOrchestrator creates an Orchestrator in the Idle state.
func NewOrchestrator(
	gw Gateway,
	sessions session.Gate,
	carts Carts,
	coupons Coupons,
	orders Refresher,
	inbox Refresher,
	views Views,
	notify toast.Notifier,
) *Orchestrator {
	return &Orchestrator{
		gw:       gw,
		sessions: sessions,
		carts:    carts,
		coupons:  coupons,
		orders:   orders,
		inbox:    inbox,
		views:    views,
		newKey:   func() string { return uuid.New().String() },
		notify:   notify,
		state:    StateIdle,
	}
}

// SetShippingAddress records the draft shipping address as typed.
func (o *Orchestrator) SetShippingAddress(addr string) {
	o.mu.Lock()
	o.address = addr
	o.mu.Unlock()
}

// Begin runs the three checkout guards in order. Each failure short-circuits
// with its own notification and leaves the state machine in Idle; passing
// all three opens payment method selection with the default method.
func (o *Orchestrator) Begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateIdle {
		return ErrIllegalTransition
	}

	if !o.sessions.Active() {
		o.notify.Emit("Please login!", toast.Error)
		return session.ErrUnauthenticated
	}
	if o.carts.Empty() {
		o.notify.Emit("Cart is empty!", toast.Error)
		return ErrEmptyCart
	}

	o.state = StateAddressPending
	if strings.TrimSpace(o.address) == "" {
		o.state = StateIdle
		o.notify.Emit("Enter address", toast.Warning)
		return ErrMissingAddress
	}

	o.state = StatePaymentSelection
	o.method = CashOnDelivery
	return nil
}

// SelectPaymentMethod records the payment choice while the payment view is
// open. It is a pure state update.
func (o *Orchestrator) SelectPaymentMethod(m PaymentMethod) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StatePaymentSelection {
		return ErrIllegalTransition
	}
	if !m.Valid() {
		return ErrInvalidPaymentMethod
	}
	o.method = m
	return nil
}

// Cancel returns to Idle without side effects. It does nothing while a
// submission is in flight: the eventual outcome is still applied.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateIdle || o.state == StateSubmitting {
		return
	}
	o.state = StateIdle
}

// Commit submits the checkout draft as an order-creation request. On success
// the cart, applied coupon, entered code, and shipping address are cleared,
// the order list and notification inbox are re-fetched, the active view
// switches to orders, and the success toast carries the new order's id. On
// failure nothing changes: the cart and coupon remain exactly as before.
func (o *Orchestrator) Commit(ctx context.Context) (order.Order, error) {
	o.mu.Lock()
	if o.state != StatePaymentSelection {
		o.mu.Unlock()
		return order.Order{}, ErrIllegalTransition
	}
	o.state = StateSubmitting

	req := OrderRequest{
		PaymentMethod:   o.method,
		ShippingAddress: o.address,
		IdempotencyKey:  o.newKey(),
	}
	if applied, ok := o.coupons.Applied(); ok {
		id := applied.CouponID
		req.CouponID = &id
	}
	o.mu.Unlock()

	// Closing the payment view must not abort an in-flight submission; the
	// outcome is applied to shared state either way.
	ctx = context.WithoutCancel(ctx)

	placed, err := o.gw.CreateOrder(ctx, req)
	if err != nil {
		// Failed is transient: the machine resets straight to Idle so the
		// shopper can retry, with cart and coupon untouched.
		o.setState(StateFailed)
		o.setState(StateIdle)

		o.notify.Emit("Failed", toast.Error)
		return order.Order{}, err
	}

	o.setState(StateCommitted)

	o.mu.Lock()
	o.address = ""
	o.state = StateIdle
	o.mu.Unlock()

	o.carts.ClearLocal()
	o.coupons.Clear()

	// Downstream refreshes are best effort; the order is already placed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.orders.Refresh(gctx) })
	g.Go(func() error { return o.inbox.Refresh(gctx) })
	if err := g.Wait(); err != nil {
		zctx.From(ctx).Warn("Post-commit refresh failed", zap.Error(err))
	}

	o.views.Show(view.Orders)
	o.notify.Emit(fmt.Sprintf("Order #%d placed!", placed.ID), toast.Success)
	return placed, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// State returns the current state machine position.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// ShippingAddress returns the draft shipping address.
func (o *Orchestrator) ShippingAddress() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.address
}

// Method returns the selected payment method.
func (o *Orchestrator) Method() PaymentMethod {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.method
}

// Total is the amount the payment view displays: the coupon's final amount
// when one is applied, else the cart subtotal.
func (o *Orchestrator) Total() decimal.Decimal {
	return o.coupons.EffectiveTotal(o.carts.Subtotal())
}
