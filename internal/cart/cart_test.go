package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type mockCartStore struct {
	m        sync.RWMutex
	items    map[string]*domain.CartItem
	products map[string]*domain.Product
	nextID   int
	err      error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{
		items:    make(map[string]*domain.CartItem),
		products: make(map[string]*domain.Product),
	}
}

func (m *mockCartStore) ItemsBySession(_ context.Context, sessionID string) ([]*domain.CartItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var items []*domain.CartItem
	for _, item := range m.items {
		if item.SessionID != sessionID {
			continue
		}
		cp := *item
		if p, ok := m.products[item.ProductID]; ok {
			pcp := *p
			cp.Product = &pcp
		}
		items = append(items, &cp)
	}
	return items, nil
}

func (m *mockCartStore) AddItem(_ context.Context, sessionID, productID string, qty int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, item := range m.items {
		if item.SessionID == sessionID && item.ProductID == productID {
			item.Quantity += qty
			return nil
		}
	}
	m.nextID++
	id := string(rune('a' + m.nextID))
	m.items[id] = &domain.CartItem{
		ID:        id,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *mockCartStore) UpdateQuantity(_ context.Context, itemID string, qty int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	item, ok := m.items[itemID]
	if !ok {
		return store.ErrItemNotFound
	}
	item.Quantity = qty
	return nil
}

func (m *mockCartStore) RemoveItem(_ context.Context, itemID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[itemID]; !ok {
		return store.ErrItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *mockCartStore) ClearSession(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for id, item := range m.items {
		if item.SessionID == sessionID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockCartStore) setErr(err error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.err = err
}

func (m *mockCartStore) putProduct(p *domain.Product) {
	m.m.Lock()
	defer m.m.Unlock()
	m.products[p.ID] = p
}

func newTestClient(t *testing.T) (*Client, *mockCartStore, *notify.Recorder) {
	t.Helper()
	mock := newMockCartStore()
	recorder := &notify.Recorder{}
	client := NewClient(mock, session.Static("session_test_abcdefghi"), recorder)
	return client, mock, recorder
}

func TestFetch_DropsLoadingFlag(t *testing.T) {
	client, _, _ := newTestClient(t)
	ctx := context.Background()

	assert.True(t, client.Loading())
	require.NoError(t, client.Fetch(ctx))
	assert.False(t, client.Loading())
	assert.Empty(t, client.Items())
}

func TestFetch_FailurePreservesSnapshot(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)
	require.NoError(t, client.Add(ctx, widget, 2))
	require.Len(t, client.Items(), 1)

	mock.setErr(errors.New("store down"))
	err := client.Fetch(ctx)
	require.Error(t, err)

	// Prior state untouched, warning surfaced.
	assert.Len(t, client.Items(), 1)
	assert.False(t, client.Loading())
	assert.Contains(t, recorder.Errors, "Failed to load cart")
}

func TestAdd_SequentialAddsSumQuantities(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)

	require.NoError(t, client.Add(ctx, widget, 2))
	require.NoError(t, client.Add(ctx, widget, 3))

	items := client.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Contains(t, recorder.Successes, "Widget added to cart")
}

func TestAdd_QuantityDefaultsToOne(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)

	require.NoError(t, client.Add(ctx, widget, 0))

	items := client.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAdd_FailureLeavesLocalStateUnchanged(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Fetch(ctx))
	mock.setErr(errors.New("store down"))

	err := client.Add(ctx, &domain.Product{ID: "p1", Name: "Widget"}, 1)
	require.Error(t, err)
	assert.Empty(t, client.Items())
	assert.Contains(t, recorder.Errors, "Failed to add item to cart")
}

func TestUpdateQuantity_BelowOneIsNoOp(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)
	require.NoError(t, client.Add(ctx, widget, 4))
	before := client.Items()

	require.NoError(t, client.UpdateQuantity(ctx, before[0].ID, 0))
	require.NoError(t, client.UpdateQuantity(ctx, before[0].ID, -1))

	after := client.Items()
	require.Len(t, after, 1)
	assert.Equal(t, before[0].Quantity, after[0].Quantity)
	assert.NotContains(t, recorder.Successes, "Cart updated")
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)
	require.NoError(t, client.Add(ctx, widget, 1))
	itemID := client.Items()[0].ID

	require.NoError(t, client.UpdateQuantity(ctx, itemID, 7))

	assert.Equal(t, 7, client.Items()[0].Quantity)
	assert.Contains(t, recorder.Successes, "Cart updated")
}

func TestRemove(t *testing.T) {
	client, mock, recorder := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)
	require.NoError(t, client.Add(ctx, widget, 1))
	itemID := client.Items()[0].ID

	require.NoError(t, client.Remove(ctx, itemID))

	assert.Empty(t, client.Items())
	assert.Contains(t, recorder.Successes, "Item removed from cart")
}

func TestClear_EmptiesLocalStateWithoutRefetch(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	widget := &domain.Product{ID: "p1", Name: "Widget", Price: 10.00}
	mock.putProduct(widget)
	require.NoError(t, client.Add(ctx, widget, 3))
	require.NotEmpty(t, client.Items())

	require.NoError(t, client.Clear(ctx))

	assert.Empty(t, client.Items())
	assert.Equal(t, 0, client.ItemCount())
}

func TestTotal(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Fetch(ctx))
	assert.Equal(t, 0.0, client.Total())

	plant := &domain.Product{ID: "p1", Name: "Desk Plant", Price: 19.99}
	mock.putProduct(plant)
	require.NoError(t, client.Add(ctx, plant, 3))

	assert.InDelta(t, 59.97, client.Total(), 1e-9)
}

func TestTotal_MissingJoinCountsAsZero(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	// No product registered for p1, so the join is missing.
	require.NoError(t, mock.AddItem(ctx, "session_test_abcdefghi", "p1", 2))
	require.NoError(t, client.Fetch(ctx))

	require.Len(t, client.Items(), 1)
	assert.Equal(t, 0.0, client.Total())
}

func TestItemCount_SumsQuantitiesNotRows(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	mug := &domain.Product{ID: "p1", Name: "Mug", Price: 14.00}
	tote := &domain.Product{ID: "p2", Name: "Tote", Price: 24.50}
	mock.putProduct(mug)
	mock.putProduct(tote)

	require.NoError(t, client.Add(ctx, mug, 2))
	require.NoError(t, client.Add(ctx, tote, 5))

	assert.Equal(t, 7, client.ItemCount())
}

func TestFetch_ScopedToSession(t *testing.T) {
	client, mock, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mock.AddItem(ctx, "some_other_session", "p1", 4))
	require.NoError(t, client.Fetch(ctx))

	assert.Empty(t, client.Items())
}
