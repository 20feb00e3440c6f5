package store

import (
	"context"
	"fmt"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

// DemoProducts is the out-of-the-box catalog inserted by the seed command.
var DemoProducts = []domain.Product{
	{Name: "Canvas Tote Bag", Description: "Heavy-duty cotton tote for everyday errands", Price: 24.50, ImageURL: "/images/tote.jpg", Stock: 40},
	{Name: "Ceramic Mug", Description: "12oz stoneware mug, dishwasher safe", Price: 14.00, ImageURL: "/images/mug.jpg", Stock: 120},
	{Name: "Desk Plant", Description: "Low-maintenance succulent in a concrete pot", Price: 19.99, ImageURL: "/images/plant.jpg", Stock: 25},
	{Name: "Enamel Pin Set", Description: "Set of four assorted enamel pins", Price: 12.75, ImageURL: "/images/pins.jpg", Stock: 0},
	{Name: "Linen Notebook", Description: "A5 dot-grid notebook with linen cover", Price: 16.25, ImageURL: "/images/notebook.jpg", Stock: 80},
	{Name: "Travel Tumbler", Description: "Insulated 16oz tumbler, keeps drinks hot for 6 hours", Price: 29.00, ImageURL: "/images/tumbler.jpg", Stock: 60},
}

// SeedProducts inserts the demo catalog. Seeding is an operator action, not
// part of the storefront's read-only view of products, so it lives off the
// ProductStore interface.
func (s *PostgresStore) SeedProducts(ctx context.Context, products []domain.Product) error {
	query := `INSERT INTO products (name, description, price, image_url, stock)
	          VALUES ($1, $2, $3, $4, $5)`

	for _, p := range products {
		if _, err := s.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.ImageURL, p.Stock); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

// SeedProducts mirrors the Postgres seeding path for the demo mode.
func (s *MemoryStore) SeedProducts(ctx context.Context, products []domain.Product) error {
	for i := range products {
		p := products[i]
		s.PutProduct(&p)
	}
	return nil
}
