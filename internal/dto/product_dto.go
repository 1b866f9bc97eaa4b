package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
)

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OfferPrice  *float64  `json:"offer_price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	IsFeatured  bool      `json:"is_featured"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OfferPrice:  p.OfferPrice,
		Category:    p.Category,
		Stock:       p.Stock,
		IsFeatured:  p.IsFeatured,
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
}

func NewProductList(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}
