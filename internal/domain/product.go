package domain

import "time"

// Product is owned by the backing store; this system never mutates it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// InStock reports whether the static stock flag allows display as purchasable.
func (p Product) InStock() bool {
	return p.Stock > 0
}
