// Package checkout drives the mock checkout: contact validation, a frozen
// order snapshot of the cart, a single insert, cart clear, and the receipt
// hand-off.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/krishnendude2005/vibe-cart-demo/internal/cart"
	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusDone       Status = "done"
)

func (s Status) IsTerminal() bool {
	return s == StatusDone
}

func (s Status) String() string {
	return string(s)
}

var (
	// ErrEmptyCart guards the flow before any state change; callers
	// navigate back to the cart view.
	ErrEmptyCart = errors.New("checkout with empty cart")
	// ErrMissingFields is the validation failure for empty contact fields.
	ErrMissingFields = errors.New("contact name and email are required")
)

// Contact is the form input for the mock checkout.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Flow struct {
	cart     *cart.Client
	orders   store.OrderStore
	handoff  *receipt.Handoff
	sessions session.Provider
	notifier notify.Notifier
	status   Status
}

func NewFlow(cartClient *cart.Client, orders store.OrderStore, handoff *receipt.Handoff, sessions session.Provider, notifier notify.Notifier) *Flow {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Flow{
		cart:     cartClient,
		orders:   orders,
		handoff:  handoff,
		sessions: sessions,
		notifier: notifier,
		status:   StatusIdle,
	}
}

func (f *Flow) Status() Status {
	return f.status
}

// Submit runs one checkout attempt. On success the created order (with
// generated id and timestamp) is returned, the cart is cleared, and the
// snapshot is handed to the receipt view. On failure the flow returns to
// idle and the cart is left intact; no retry is attempted.
func (f *Flow) Submit(ctx context.Context, contact Contact) (*domain.Order, error) {
	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if contact.Name == "" || contact.Email == "" {
		f.notifier.Error("Please fill in all fields")
		return nil, ErrMissingFields
	}

	f.status = StatusSubmitting

	order := &domain.Order{
		Name:  contact.Name,
		Email: contact.Email,
		Total: f.cart.Total(),
		Items: snapshotItems(items),
	}

	if err := f.orders.Create(ctx, order); err != nil {
		log.Printf("error creating order: %v", err)
		f.notifier.Error("Failed to place order")
		f.status = StatusIdle
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := f.cart.Clear(ctx); err != nil {
		// The order exists; the stale cart rows are a cosmetic leftover.
		log.Printf("error clearing cart after checkout: %v", err)
	}

	f.handoff.Put(f.sessions.SessionID(), order)
	f.status = StatusDone
	f.notifier.Success("Order placed successfully!")
	return order, nil
}

// snapshotItems freezes the cart into denormalized line items. Missing
// joins degrade to empty name and zero price, matching the total.
func snapshotItems(items []*domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		oi := domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			oi.Name = item.Product.Name
			oi.Price = item.Product.Price
		}
		out = append(out, oi)
	}
	return out
}
