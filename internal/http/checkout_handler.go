package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishnendude2005/vibe-cart-demo/internal/cart"
	"github.com/krishnendude2005/vibe-cart-demo/internal/checkout"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type CheckoutHandler struct {
	cartStore store.CartStore
	orders    store.OrderStore
	handoff   *receipt.Handoff
	notifier  notify.Notifier
}

func NewCheckoutHandler(cartStore store.CartStore, orders store.OrderStore, handoff *receipt.Handoff, notifier notify.Notifier) *CheckoutHandler {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &CheckoutHandler{
		cartStore: cartStore,
		orders:    orders,
		handoff:   handoff,
		notifier:  notifier,
	}
}

// Submit runs one checkout attempt for the session. An empty cart redirects
// back to the cart view before any submission state is entered.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var contact checkout.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionIDFromContext(r.Context())
	provider := session.Static(sessionID)

	cartClient := cart.NewClient(h.cartStore, provider, h.notifier)
	if err := cartClient.Fetch(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	flow := checkout.NewFlow(cartClient, h.orders, h.handoff, provider, h.notifier)

	order, err := flow.Submit(r.Context(), contact)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		http.Redirect(w, r, "/api/v1/cart", http.StatusSeeOther)
		return
	case errors.Is(err, checkout.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "missing_fields", "Please fill in all fields")
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, "order_failed", "Failed to place order")
		return
	}

	w.Header().Set("Location", "/api/v1/receipt")
	respondJSON(w, http.StatusCreated, order)
}
