package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/google/uuid"
)

// ProductCache is satisfied by *cache.ProductCache.
type ProductCache interface {
	GetList(ctx context.Context, category string) ([]models.Product, bool, error)
	SetList(ctx context.Context, category string, products []models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, bool, error)
	SetProduct(ctx context.Context, product *models.Product) error
}

// ProductService serves the public catalog. The cache is optional and any
// cache failure falls through to the database.
type ProductService struct {
	products *store.ProductStore
	cache    ProductCache
}

func NewProductService(products *store.ProductStore, cache ProductCache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// List returns every product, or only those in category when it is set.
func (s *ProductService) List(ctx context.Context, category string) ([]models.Product, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetList(ctx, category)
		if err != nil {
			slog.Warn("product cache read failed", "category", category, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, category, products); err != nil {
			slog.Warn("product cache write failed", "category", category, "error", err)
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			slog.Warn("product cache read failed", "product_id", id.String(), "error", err)
		} else if ok {
			return cached, nil
		}
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			slog.Warn("product cache write failed", "product_id", id.String(), "error", err)
		}
	}
	return product, nil
}
