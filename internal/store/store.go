package store

import (
	"context"
	"errors"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
)

// ProductStore is the read-only view of the products table.
type ProductStore interface {
	// List returns all products ordered by name ascending.
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// CartStore defines the interface for cart item data operations.
// Consumers define this interface, not the Postgres implementation.
type CartStore interface {
	// ItemsBySession returns every cart row for the session, each joined
	// with its product.
	ItemsBySession(ctx context.Context, sessionID string) ([]*domain.CartItem, error)
	// AddItem is an atomic upsert: a new row for an unseen
	// (session, product) pair, otherwise quantity incremented by qty in a
	// single statement. qty must be >= 1.
	AddItem(ctx context.Context, sessionID, productID string, qty int) error
	UpdateQuantity(ctx context.Context, itemID string, qty int) error
	RemoveItem(ctx context.Context, itemID string) error
	ClearSession(ctx context.Context, sessionID string) error
}

// OrderStore is insert-only from this system's perspective.
type OrderStore interface {
	// Create persists the order and fills its generated ID and CreatedAt.
	Create(ctx context.Context, order *domain.Order) error
}

// Store bundles the three logical tables of the backing store.
type Store interface {
	ProductStore
	CartStore
	OrderStore
}
