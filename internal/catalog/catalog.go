// Package catalog loads the product listing, name-ascending, through an
// optional read-through cache.
package catalog

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/krishnendude2005/vibe-cart-demo/internal/cache"
	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/store"
)

type Service struct {
	products store.ProductStore
	cache    cache.ProductCache
	sfg      singleflight.Group // Prevents cache stampede
}

// NewService builds a catalog service. cache may be nil, in which case every
// List goes to the store.
func NewService(products store.ProductStore, cache cache.ProductCache) *Service {
	return &Service{
		products: products,
		cache:    cache,
	}
}

// List returns all products ordered by name ascending. A read failure is the
// caller's to log; callers are expected to render an empty list rather than
// an error state.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	if s.cache == nil {
		return s.products.List(ctx)
	}

	// Use singleflight so concurrent cache misses trigger one store read.
	v, err, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		products, err := s.cache.GetCatalog(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, errList := s.products.List(ctx)
		if errList != nil {
			return nil, errList
		}

		go func() {
			errSet := s.cache.SetCatalog(context.Background(), products)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

// Get returns a single product by id, bypassing the cache.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}
