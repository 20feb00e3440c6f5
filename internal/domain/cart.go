package domain

import "time"

// CartItem is one line of an unconfirmed cart, scoped to a session token.
// Product is the joined snapshot from the products table and may be nil if
// the join did not resolve.
type CartItem struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Product   *Product  `json:"product,omitempty"`
}

// Subtotal is the joined product price times quantity, 0 when the join is missing.
func (i CartItem) Subtotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}
