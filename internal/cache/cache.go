package cache

import (
	"context"
	"errors"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

// ProductCache holds the full catalog listing. Products are read-only from
// this system's perspective, so invalidation is TTL-only.
type ProductCache interface {
	GetCatalog(ctx context.Context) ([]*domain.Product, error)
	SetCatalog(ctx context.Context, products []*domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
