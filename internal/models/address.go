package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a shipping address owned by exactly one user. UserID is set by
// the server from the authenticated identity and never changes.
type Address struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user"`
	AddressLine1 string         `gorm:"not null;size:255" json:"address_line1"`
	AddressLine2 string         `gorm:"size:255" json:"address_line2"`
	City         string         `gorm:"not null;size:100" json:"city"`
	State        string         `gorm:"size:100" json:"state"`
	PostalCode   string         `gorm:"size:20" json:"postal_code"`
	Country      string         `gorm:"size:100" json:"country"`
	IsDefault    bool           `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Address) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
