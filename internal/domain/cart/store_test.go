package cart

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shophub/internal/domain/product"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/toast"
)

// --- Mock implementations ---

type mockGateway struct {
	fetched    []Line
	fetchErr   error
	addErr     error
	updateErr  error
	deleteErr  error
	addCalls   int
	updated    map[int64]int
	deleted    []int64
	fetchCalls int
}

func (m *mockGateway) FetchCart(_ context.Context) ([]Line, error) {
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.fetched, nil
}

func (m *mockGateway) AddLine(_ context.Context, _ int64, _ int, _ *int64) error {
	m.addCalls++
	return m.addErr
}

func (m *mockGateway) UpdateLineQuantity(_ context.Context, lineID int64, quantity int) error {
	if m.updated == nil {
		m.updated = make(map[int64]int)
	}
	m.updated[lineID] = quantity
	return m.updateErr
}

func (m *mockGateway) DeleteLine(_ context.Context, lineID int64) error {
	m.deleted = append(m.deleted, lineID)
	return m.deleteErr
}

type mockGate struct{ active bool }

func (m mockGate) Active() bool { return m.active }

type recordingNotifier struct {
	messages []string
	kinds    []toast.Kind
}

func (r *recordingNotifier) Emit(message string, kind toast.Kind) {
	r.messages = append(r.messages, message)
	r.kinds = append(r.kinds, kind)
}

func (r *recordingNotifier) last() (string, toast.Kind) {
	if len(r.messages) == 0 {
		return "", ""
	}
	return r.messages[len(r.messages)-1], r.kinds[len(r.kinds)-1]
}

// --- Helpers ---

func testLine(id int64, qty int, total string) Line {
	t := decimal.RequireFromString(total)
	return Line{
		ID:         id,
		Product:    product.Ref{ID: id, Name: "Widget"},
		Quantity:   qty,
		UnitPrice:  t.Div(decimal.NewFromInt(int64(qty))),
		TotalPrice: t,
	}
}

// --- Tests ---

func TestAddItem_RequiresSession(t *testing.T) {
	gw := &mockGateway{}
	notify := &recordingNotifier{}
	store := NewStore(gw, mockGate{active: false}, notify)

	err := store.AddItem(context.Background(), 1, nil)

	require.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Zero(t, gw.addCalls, "no gateway call without a session")
	msg, kind := notify.last()
	assert.Equal(t, "Please login!", msg)
	assert.Equal(t, toast.Error, kind)
}

func TestAddItem_RefreshesAndNotifies(t *testing.T) {
	gw := &mockGateway{fetched: []Line{testLine(1, 2, "20")}}
	notify := &recordingNotifier{}
	store := NewStore(gw, mockGate{active: true}, notify)

	err := store.AddItem(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.addCalls)
	assert.Equal(t, 1, gw.fetchCalls, "mutation must be followed by a re-fetch")
	assert.Len(t, store.Lines(), 1)
	msg, kind := notify.last()
	assert.Equal(t, "Added to cart!", msg)
	assert.Equal(t, toast.Success, kind)
}

func TestAddItem_GatewayFailureKeepsLocalCart(t *testing.T) {
	gw := &mockGateway{addErr: errors.New("boom")}
	notify := &recordingNotifier{}
	store := NewStore(gw, mockGate{active: true}, notify)

	err := store.AddItem(context.Background(), 1, nil)

	require.Error(t, err)
	assert.Zero(t, gw.fetchCalls, "failed mutation must not trigger a re-fetch")
	msg, kind := notify.last()
	assert.Equal(t, "Failed to add", msg)
	assert.Equal(t, toast.Error, kind)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name       string
		quantity   int
		wantUpdate bool
		wantDelete bool
	}{
		{name: "positive updates", quantity: 3, wantUpdate: true},
		{name: "zero deletes", quantity: 0, wantDelete: true},
		{name: "negative deletes", quantity: -1, wantDelete: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			store := NewStore(gw, mockGate{active: true}, &recordingNotifier{})

			err := store.SetQuantity(context.Background(), 7, tt.quantity)
			require.NoError(t, err)

			if tt.wantUpdate {
				assert.Equal(t, tt.quantity, gw.updated[7])
			} else {
				assert.Empty(t, gw.updated)
			}
			if tt.wantDelete {
				assert.Equal(t, []int64{7}, gw.deleted)
			} else {
				assert.Empty(t, gw.deleted)
			}
			assert.Equal(t, 1, gw.fetchCalls)
		})
	}
}

func TestSetQuantity_NoSessionIsNoop(t *testing.T) {
	gw := &mockGateway{}
	store := NewStore(gw, mockGate{active: false}, &recordingNotifier{})

	require.NoError(t, store.SetQuantity(context.Background(), 7, 3))
	assert.Empty(t, gw.updated)
	assert.Zero(t, gw.fetchCalls)
}

func TestRemoveItem(t *testing.T) {
	gw := &mockGateway{fetched: nil}
	notify := &recordingNotifier{}
	store := NewStore(gw, mockGate{active: true}, notify)

	require.NoError(t, store.RemoveItem(context.Background(), 9))

	assert.Equal(t, []int64{9}, gw.deleted)
	assert.Equal(t, 1, gw.fetchCalls)
	msg, kind := notify.last()
	assert.Equal(t, "Removed", msg)
	assert.Equal(t, toast.Info, kind)
}

func TestRefresh_ReplacesLinesWholesale(t *testing.T) {
	gw := &mockGateway{fetched: []Line{testLine(1, 1, "10")}}
	store := NewStore(gw, mockGate{active: true}, &recordingNotifier{})

	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Lines(), 1)

	// Server dropped the line (e.g. another device removed it); the next
	// fetch replaces the local copy entirely.
	gw.fetched = nil
	require.NoError(t, store.Refresh(context.Background()))
	assert.Empty(t, store.Lines())
	assert.True(t, store.Empty())
}

func TestDerivedTotals(t *testing.T) {
	gw := &mockGateway{fetched: []Line{
		testLine(1, 2, "199.98"),
		testLine(2, 1, "49.50"),
	}}
	store := NewStore(gw, mockGate{active: true}, &recordingNotifier{})
	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, 3, store.ItemCount())
	assert.True(t, store.Subtotal().Equal(decimal.RequireFromString("249.48")),
		"got %s", store.Subtotal())
	assert.False(t, store.Empty())
}

func TestClearLocal(t *testing.T) {
	gw := &mockGateway{fetched: []Line{testLine(1, 1, "10")}}
	store := NewStore(gw, mockGate{active: true}, &recordingNotifier{})
	require.NoError(t, store.Refresh(context.Background()))

	store.ClearLocal()

	assert.True(t, store.Empty())
	assert.Equal(t, 1, gw.fetchCalls, "ClearLocal must not contact the gateway")
}
