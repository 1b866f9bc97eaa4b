package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                      `gorm:"not null;size:255;index" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       float64                     `gorm:"type:numeric(10,2);not null" json:"price"`
	OfferPrice  *float64                    `gorm:"type:numeric(10,2)" json:"offer_price"`
	Category    string                      `gorm:"not null;size:100;index" json:"category"`
	Stock       int                         `gorm:"not null;default:0" json:"stock"`
	IsFeatured  bool                        `gorm:"not null;default:false" json:"is_featured"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
