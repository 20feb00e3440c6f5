package http

import (
	"net/http"

	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
)

type ReceiptHandler struct {
	handoff *receipt.Handoff
}

func NewReceiptHandler(handoff *receipt.Handoff) *ReceiptHandler {
	return &ReceiptHandler{handoff: handoff}
}

// Show renders the snapshot handed off by checkout. The snapshot is
// consumed on read, so a reload loses the receipt and lands back on the
// catalog root.
func (h *ReceiptHandler) Show(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())

	order, ok := h.handoff.Take(sessionID)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	respondJSON(w, http.StatusOK, receipt.NewView(order))
}
