package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

// MemoryStore implements Store with in-memory storage. It backs tests and
// the demo mode where no Postgres is available. Semantics mirror the
// Postgres implementation, including the atomic upsert on AddItem.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	items    map[string]*domain.CartItem // itemID -> item
	orders   map[string]*domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*domain.Product),
		items:    make(map[string]*domain.CartItem),
		orders:   make(map[string]*domain.Order),
	}
}

// PutProduct seeds a product. Returns the stored product's ID.
func (s *MemoryStore) PutProduct(p *domain.Product) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	s.products[p.ID] = &cp
	return p.ID
}

func (s *MemoryStore) List(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) ItemsBySession(ctx context.Context, sessionID string) ([]*domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*domain.CartItem
	for _, item := range s.items {
		if item.SessionID != sessionID {
			continue
		}
		cp := *item
		if p, ok := s.products[item.ProductID]; ok {
			pcp := *p
			cp.Product = &pcp
		}
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore) AddItem(ctx context.Context, sessionID, productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d", qty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, item := range s.items {
		if item.SessionID == sessionID && item.ProductID == productID {
			item.Quantity += qty
			item.UpdatedAt = now
			return nil
		}
	}

	id := uuid.New().String()
	s.items[id] = &domain.CartItem{
		ID:        id,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *MemoryStore) UpdateQuantity(ctx context.Context, itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Quantity = qty
	item.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *MemoryStore) ClearSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.SessionID == sessionID {
			delete(s.items, id)
		}
	}
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New().String()
	order.CreatedAt = time.Now()

	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	s.orders[order.ID] = &cp
	return nil
}
