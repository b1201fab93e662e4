package checkout

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shophub/internal/domain/coupon"
	"github.com/xenking/shophub/internal/domain/order"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
	"github.com/xenking/shophub/internal/view"
)

// --- Mock implementations ---

type mockGateway struct {
	placed  order.Order
	err     error
	lastReq OrderRequest
	calls   int
}

func (m *mockGateway) CreateOrder(ctx context.Context, req OrderRequest) (order.Order, error) {
	m.calls++
	m.lastReq = req
	if err := ctx.Err(); err != nil {
		return order.Order{}, err
	}
	if m.err != nil {
		return order.Order{}, m.err
	}
	return m.placed, nil
}

type mockGate struct{ active bool }

func (m mockGate) Active() bool { return m.active }

type mockCarts struct {
	empty    bool
	subtotal decimal.Decimal
	cleared  bool
}

func (m *mockCarts) Empty() bool               { return m.empty }
func (m *mockCarts) Subtotal() decimal.Decimal { return m.subtotal }
func (m *mockCarts) ClearLocal()               { m.cleared = true }

type mockCoupons struct {
	applied *coupon.Applied
	cleared bool
}

func (m *mockCoupons) Applied() (coupon.Applied, bool) {
	if m.applied == nil {
		return coupon.Applied{}, false
	}
	return *m.applied, true
}

func (m *mockCoupons) Clear() { m.cleared = true }

func (m *mockCoupons) EffectiveTotal(subtotal decimal.Decimal) decimal.Decimal {
	if m.applied != nil {
		return m.applied.FinalAmount
	}
	return subtotal
}

type mockRefresher struct {
	calls int
	err   error
}

func (m *mockRefresher) Refresh(_ context.Context) error {
	m.calls++
	return m.err
}

type mockViews struct {
	shown []view.View
}

func (m *mockViews) Show(v view.View) { m.shown = append(m.shown, v) }

type recordingNotifier struct {
	messages []string
	kinds    []toast.Kind
}

func (r *recordingNotifier) Emit(message string, kind toast.Kind) {
	r.messages = append(r.messages, message)
	r.kinds = append(r.kinds, kind)
}

// --- Helpers ---

type fixture struct {
	gw      *mockGateway
	gate    mockGate
	carts   *mockCarts
	coupons *mockCoupons
	orders  *mockRefresher
	inbox   *mockRefresher
	views   *mockViews
	notify  *recordingNotifier
	orch    *Orchestrator
}

func newFixture(opts ...func(*fixture)) *fixture {
	f := &fixture{
		gw:      &mockGateway{placed: order.Order{ID: 101}},
		gate:    mockGate{active: true},
		carts:   &mockCarts{subtotal: decimal.NewFromInt(1000)},
		coupons: &mockCoupons{},
		orders:  &mockRefresher{},
		inbox:   &mockRefresher{},
		views:   &mockViews{},
		notify:  &recordingNotifier{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.orch = NewOrchestrator(f.gw, f.gate, f.carts, f.coupons, f.orders, f.inbox, f.views, f.notify)
	f.orch.newKey = func() string { return "test-key" }
	return f
}

// openPaymentView walks the fixture to the payment method selection state.
func (f *fixture) openPaymentView(t *testing.T) {
	t.Helper()
	f.orch.SetShippingAddress("12 Main St")
	require.NoError(t, f.orch.Begin())
	require.Equal(t, StatePaymentSelection, f.orch.State())
}

// --- Tests ---

func TestBegin_Guards(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*fixture)
		wantErr  error
		wantMsg  string
		wantKind toast.Kind
	}{
		{
			name:     "no session",
			setup:    func(f *fixture) { f.gate = mockGate{active: false} },
			wantErr:  session.ErrUnauthenticated,
			wantMsg:  "Please login!",
			wantKind: toast.Error,
		},
		{
			name:     "empty cart",
			setup:    func(f *fixture) { f.carts.empty = true },
			wantErr:  ErrEmptyCart,
			wantMsg:  "Cart is empty!",
			wantKind: toast.Error,
		},
		{
			name:     "missing address",
			setup:    func(f *fixture) {},
			wantErr:  ErrMissingAddress,
			wantMsg:  "Enter address",
			wantKind: toast.Warning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.setup)

			err := f.orch.Begin()

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StateIdle, f.orch.State(), "failed guard leaves the machine in Idle")
			require.NotEmpty(t, f.notify.messages)
			assert.Equal(t, tt.wantMsg, f.notify.messages[0])
			assert.Equal(t, tt.wantKind, f.notify.kinds[0])
		})
	}
}

func TestBegin_GuardOrder(t *testing.T) {
	// All guards would fail; the session guard fires first.
	f := newFixture(func(f *fixture) {
		f.gate = mockGate{active: false}
		f.carts.empty = true
	})

	err := f.orch.Begin()
	require.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestBegin_WhitespaceAddressRejected(t *testing.T) {
	f := newFixture()
	f.orch.SetShippingAddress("   ")

	require.ErrorIs(t, f.orch.Begin(), ErrMissingAddress)
}

func TestBegin_OpensPaymentSelectionWithDefaultMethod(t *testing.T) {
	f := newFixture()
	f.orch.SetShippingAddress("12 Main St")

	require.NoError(t, f.orch.Begin())

	assert.Equal(t, StatePaymentSelection, f.orch.State())
	assert.Equal(t, CashOnDelivery, f.orch.Method(), "cash on delivery is the default")
}

func TestSelectPaymentMethod(t *testing.T) {
	f := newFixture()
	f.openPaymentView(t)

	require.NoError(t, f.orch.SelectPaymentMethod(Online))
	assert.Equal(t, Online, f.orch.Method())

	require.ErrorIs(t, f.orch.SelectPaymentMethod("CARD"), ErrInvalidPaymentMethod)
	assert.Equal(t, Online, f.orch.Method(), "invalid choice leaves the method unchanged")
}

func TestSelectPaymentMethod_OutsidePaymentView(t *testing.T) {
	f := newFixture()
	require.ErrorIs(t, f.orch.SelectPaymentMethod(Online), ErrIllegalTransition)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	f.openPaymentView(t)

	f.orch.Cancel()

	assert.Equal(t, StateIdle, f.orch.State())
	assert.False(t, f.carts.cleared, "cancel has no side effects on the cart")
	assert.False(t, f.coupons.cleared, "cancel has no side effects on the coupon")
}

func TestCommit_RequiresPaymentView(t *testing.T) {
	f := newFixture()

	_, err := f.orch.Commit(context.Background())
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Zero(t, f.gw.calls)
}

func TestCommit_Success(t *testing.T) {
	couponID := int64(42)
	f := newFixture(func(f *fixture) {
		f.coupons.applied = &coupon.Applied{
			CouponID:       couponID,
			DiscountAmount: decimal.NewFromInt(100),
			FinalAmount:    decimal.NewFromInt(900),
		}
	})
	f.openPaymentView(t)
	require.NoError(t, f.orch.SelectPaymentMethod(Online))

	placed, err := f.orch.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), placed.ID)

	// Request carries the full draft.
	assert.Equal(t, Online, f.gw.lastReq.PaymentMethod)
	assert.Equal(t, "12 Main St", f.gw.lastReq.ShippingAddress)
	require.NotNil(t, f.gw.lastReq.CouponID)
	assert.Equal(t, couponID, *f.gw.lastReq.CouponID)
	assert.Equal(t, "test-key", f.gw.lastReq.IdempotencyKey)

	// Post-commit side effects.
	assert.True(t, f.carts.cleared)
	assert.True(t, f.coupons.cleared)
	assert.Equal(t, 1, f.orders.calls)
	assert.Equal(t, 1, f.inbox.calls)
	assert.Equal(t, []view.View{view.Orders}, f.views.shown)
	assert.Equal(t, StateIdle, f.orch.State())
	assert.Empty(t, f.orch.ShippingAddress())
	require.NotEmpty(t, f.notify.messages)
	assert.Equal(t, "Order #101 placed!", f.notify.messages[len(f.notify.messages)-1])
	assert.Equal(t, toast.Success, f.notify.kinds[len(f.notify.kinds)-1])
}

func TestCommit_WithoutCoupon(t *testing.T) {
	f := newFixture()
	f.openPaymentView(t)

	_, err := f.orch.Commit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, f.gw.lastReq.CouponID)
}

func TestCommit_FailureLeavesDraftIntact(t *testing.T) {
	f := newFixture(func(f *fixture) {
		f.gw.err = errors.New("gateway down")
		f.coupons.applied = &coupon.Applied{CouponID: 7, FinalAmount: decimal.NewFromInt(900)}
	})
	f.openPaymentView(t)

	_, err := f.orch.Commit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateIdle, f.orch.State(), "failure resets to Idle for a retry")
	assert.False(t, f.carts.cleared, "cart untouched on failure")
	assert.False(t, f.coupons.cleared, "coupon untouched on failure")
	assert.Zero(t, f.orders.calls)
	assert.Empty(t, f.views.shown)
	assert.Equal(t, "12 Main St", f.orch.ShippingAddress(), "address kept for the retry")
	require.NotEmpty(t, f.notify.messages)
	assert.Equal(t, "Failed", f.notify.messages[len(f.notify.messages)-1])
	assert.Equal(t, toast.Error, f.notify.kinds[len(f.notify.kinds)-1])
}

func TestCommit_SurvivesCancelledContext(t *testing.T) {
	f := newFixture()
	f.openPaymentView(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.Commit(ctx)
	require.NoError(t, err, "closing the payment view must not abort the submission")
	assert.Equal(t, 1, f.gw.calls)
}

func TestCommit_RefreshFailureIsBestEffort(t *testing.T) {
	f := newFixture(func(f *fixture) {
		f.orders.err = errors.New("orders reload failed")
	})
	f.openPaymentView(t)

	placed, err := f.orch.Commit(context.Background())
	require.NoError(t, err, "the order is already placed; refresh failures do not surface")
	assert.Equal(t, int64(101), placed.ID)
	assert.Equal(t, []view.View{view.Orders}, f.views.shown)
}

func TestTotal(t *testing.T) {
	f := newFixture()
	assert.True(t, f.orch.Total().Equal(decimal.NewFromInt(1000)))

	f.coupons.applied = &coupon.Applied{CouponID: 1, FinalAmount: decimal.NewFromInt(900)}
	assert.True(t, f.orch.Total().Equal(decimal.NewFromInt(900)))
}
