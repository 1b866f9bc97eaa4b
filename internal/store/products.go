package store

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// List returns all products, or those whose category equals category exactly.
func (s *ProductStore) List(ctx context.Context, category string) ([]models.Product, error) {
	products := []models.Product{}
	q := s.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	return notFound(&product, err, ErrProductNotFound)
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}
