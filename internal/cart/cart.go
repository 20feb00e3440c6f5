// Package cart owns the in-memory cart snapshot for one session and keeps
// it synchronized with the cart_items table. Every mutation is a remote
// round-trip followed by a full refetch; there is no optimistic local
// mutation beyond triggering the reload.
package cart

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type Client struct {
	store    store.CartStore
	sessions session.Provider
	notifier notify.Notifier

	mu      sync.RWMutex
	items   []*domain.CartItem
	loading bool
}

func NewClient(cartStore store.CartStore, sessions session.Provider, notifier notify.Notifier) *Client {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Client{
		store:    cartStore,
		sessions: sessions,
		notifier: notifier,
		loading:  true,
	}
}

// Fetch loads all cart items for the current session, each joined with its
// product. On failure the prior snapshot is left untouched and a warning is
// surfaced. The loading flag drops on completion either way.
func (c *Client) Fetch(ctx context.Context) error {
	items, err := c.store.ItemsBySession(ctx, c.sessions.SessionID())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		log.Printf("error fetching cart: %v", err)
		c.notifier.Error("Failed to load cart")
		return err
	}

	c.items = items
	return nil
}

// Add puts quantity units of product in the cart. A repeat add for the same
// product increments the existing row's quantity via the store's atomic
// upsert, so two concurrent adds from the same session both land instead of
// racing a snapshot lookup.
func (c *Client) Add(ctx context.Context, product *domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if err := c.store.AddItem(ctx, c.sessions.SessionID(), product.ID, quantity); err != nil {
		log.Printf("error adding to cart: %v", err)
		c.notifier.Error("Failed to add item to cart")
		return err
	}

	if err := c.Fetch(ctx); err != nil {
		return err
	}
	c.notifier.Success(fmt.Sprintf("%s added to cart", product.Name))
	return nil
}

// UpdateQuantity sets the item's quantity. A quantity below 1 is silently
// ignored, not an error.
func (c *Client) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if err := c.store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		log.Printf("error updating cart: %v", err)
		c.notifier.Error("Failed to update cart")
		return err
	}

	if err := c.Fetch(ctx); err != nil {
		return err
	}
	c.notifier.Success("Cart updated")
	return nil
}

func (c *Client) Remove(ctx context.Context, itemID string) error {
	if err := c.store.RemoveItem(ctx, itemID); err != nil {
		log.Printf("error removing from cart: %v", err)
		c.notifier.Error("Failed to remove item")
		return err
	}

	if err := c.Fetch(ctx); err != nil {
		return err
	}
	c.notifier.Success("Item removed from cart")
	return nil
}

// Clear deletes every row for the session and empties the local snapshot
// directly, skipping the reload round-trip.
func (c *Client) Clear(ctx context.Context) error {
	if err := c.store.ClearSession(ctx, c.sessions.SessionID()); err != nil {
		log.Printf("error clearing cart: %v", err)
		c.notifier.Error("Failed to clear cart")
		return err
	}

	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the current snapshot.
func (c *Client) Items() []*domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*domain.CartItem(nil), c.items...)
}

// Loading reports whether the first fetch has not yet completed.
func (c *Client) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Total sums joined product price times quantity over the snapshot. A
// missing join contributes 0.
func (c *Client) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount sums quantities, not rows.
func (c *Client) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
