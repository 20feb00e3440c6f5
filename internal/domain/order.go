package domain

import "time"

// OrderItem is a denormalized copy of product name and price at checkout
// time. Later product changes never alter it.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is an immutable snapshot of a completed checkout. Created exactly
// once per successful submission, never updated or deleted.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}
