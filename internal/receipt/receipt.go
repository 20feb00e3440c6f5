// Package receipt carries the order snapshot from checkout to the receipt
// view. The hand-off is an explicit one-shot in-memory channel keyed by
// session token: the snapshot is consumed on first read and is lost on
// process restart. Orders are never re-fetched for display.
package receipt

import (
	"sync"
	"time"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

type Handoff struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func NewHandoff() *Handoff {
	return &Handoff{orders: make(map[string]*domain.Order)}
}

// Put stores the order for the session, replacing any unconsumed snapshot.
func (h *Handoff) Put(sessionID string, order *domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders[sessionID] = order
}

// Take removes and returns the session's order snapshot. The second return
// is false when nothing was handed off, in which case the caller redirects
// to the catalog root.
func (h *Handoff) Take(sessionID string) (*domain.Order, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, ok := h.orders[sessionID]
	if !ok {
		return nil, false
	}
	delete(h.orders, sessionID)
	return order, true
}

// View is the receipt's display model: the frozen order plus its formatted
// creation time.
type View struct {
	Order         *domain.Order `json:"order"`
	FormattedDate string        `json:"formatted_date"`
}

func NewView(order *domain.Order) *View {
	return &View{
		Order:         order,
		FormattedDate: order.CreatedAt.Format(time.RFC1123),
	}
}
