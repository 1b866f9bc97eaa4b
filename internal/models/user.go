package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record behind every authenticated request. Password
// holds the hash digest only and is never serialized.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string     `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	Name        string     `gorm:"not null;size:255" json:"name"`
	Phone       string     `gorm:"size:32" json:"phone"`
	Password    string     `gorm:"not null" json:"-"`
	IsActive    bool       `gorm:"not null" json:"-"`
	IsStaff     bool       `gorm:"not null;default:false" json:"-"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"-"`
	LastLogin   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
