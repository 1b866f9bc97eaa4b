package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
)

// AddressRequest is the full representation, for POST and PUT. There is no
// owner field: the owner always comes from the authenticated caller.
type AddressRequest struct {
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=100"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	Country      string `json:"country" validate:"max=100"`
	IsDefault    bool   `json:"is_default"`
}

// Apply copies every field onto a.
func (r *AddressRequest) Apply(a *models.Address) {
	a.AddressLine1 = r.AddressLine1
	a.AddressLine2 = r.AddressLine2
	a.City = r.City
	a.State = r.State
	a.PostalCode = r.PostalCode
	a.Country = r.Country
	a.IsDefault = r.IsDefault
}

// UpdateAddressRequest is the PATCH body; nil fields are left alone.
type UpdateAddressRequest struct {
	AddressLine1 *string `json:"address_line1" validate:"omitnil,min=1,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitnil,max=255"`
	City         *string `json:"city" validate:"omitnil,max=100"`
	State        *string `json:"state" validate:"omitnil,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitnil,max=20"`
	Country      *string `json:"country" validate:"omitnil,max=100"`
	IsDefault    *bool   `json:"is_default"`
}

func (r *UpdateAddressRequest) Apply(a *models.Address) {
	setIf(&a.AddressLine1, r.AddressLine1)
	setIf(&a.AddressLine2, r.AddressLine2)
	setIf(&a.City, r.City)
	setIf(&a.State, r.State)
	setIf(&a.PostalCode, r.PostalCode)
	setIf(&a.Country, r.Country)
	setIf(&a.IsDefault, r.IsDefault)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	User         uuid.UUID `json:"user"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAddressResponse(a *models.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		User:         a.UserID,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func NewAddressList(addresses []models.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = NewAddressResponse(&addresses[i])
	}
	return out
}
