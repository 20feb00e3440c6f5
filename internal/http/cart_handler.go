package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/krishnendude2005/vibe-cart-demo/internal/cart"
	"github.com/krishnendude2005/vibe-cart-demo/internal/catalog"
	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type CartHandler struct {
	store    store.CartStore
	catalog  *catalog.Service
	notifier notify.Notifier
}

func NewCartHandler(cartStore store.CartStore, catalog *catalog.Service, notifier notify.Notifier) *CartHandler {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &CartHandler{
		store:    cartStore,
		catalog:  catalog,
		notifier: notifier,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items     []*domain.CartItem `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

// client builds the session-scoped cart client for this request and loads
// its snapshot.
func (h *CartHandler) client(r *http.Request) (*cart.Client, error) {
	sessionID := getSessionIDFromContext(r.Context())
	c := cart.NewClient(h.store, session.Static(sessionID), h.notifier)
	if err := c.Fetch(r.Context()); err != nil {
		return nil, err
	}
	return c, nil
}

func cartResponse(c *cart.Client) CartResponse {
	items := c.Items()
	if items == nil {
		items = []*domain.CartItem{}
	}
	return CartResponse{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "store_unavailable", "failed to load product")
		return
	}

	c, err := h.client(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	if err := c.Add(r.Context(), product, req.Quantity); err != nil {
		respondError(w, http.StatusBadGateway, "add_failed", "failed to add item to cart")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.client(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	// Quantities below 1 are a silent no-op; the unchanged cart comes back.
	if err := c.UpdateQuantity(r.Context(), itemID, req.Quantity); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "item_not_found", "cart item not found")
			return
		}
		respondError(w, http.StatusBadGateway, "update_failed", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	c, err := h.client(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	if err := c.Remove(r.Context(), itemID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "item_not_found", "cart item not found")
			return
		}
		respondError(w, http.StatusBadGateway, "remove_failed", "failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, "cart_unavailable", "failed to load cart")
		return
	}

	if err := c.Clear(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "clear_failed", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}
