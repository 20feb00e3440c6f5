package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/krishnendude2005/vibe-cart-demo/internal/catalog"
	"github.com/krishnendude2005/vibe-cart-demo/internal/notify"
	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

// NewRouter wires the four storefront views onto chi. The catalog listing
// doubles as the root view.
func NewRouter(st store.Store, cat *catalog.Service, handoff *receipt.Handoff, notifier notify.Notifier, requestTimeout time.Duration) http.Handler {
	productHandler := NewProductHandler(cat)
	cartHandler := NewCartHandler(st, cat, notifier)
	checkoutHandler := NewCheckoutHandler(st, st, handoff, notifier)
	receiptHandler := NewReceiptHandler(handoff)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", productHandler.List)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Submit)
		r.Get("/receipt", receiptHandler.Show)
	})

	return r
}
