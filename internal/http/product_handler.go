package http

import (
	"log"
	"net/http"

	"github.com/krishnendude2005/vibe-cart-demo/internal/catalog"
	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalog *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
}

// List serves the catalog root. A load failure is logged only; the client
// gets an empty list rather than an error state.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		log.Printf("error fetching products: %v", err)
		products = nil
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductListResponse{Products: products})
}
