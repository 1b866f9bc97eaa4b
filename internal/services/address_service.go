package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/validation"
	"github.com/google/uuid"
)

// AddressService is the ownership guard for addresses. Every call is scoped
// to the caller; an address owned by someone else behaves exactly like one
// that does not exist.
type AddressService struct {
	addresses *store.AddressStore
}

func NewAddressService(addresses *store.AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(ctx context.Context, id identity.Identity) ([]models.Address, error) {
	return s.addresses.List(ctx, id.UserID)
}

func (s *AddressService) Create(ctx context.Context, id identity.Identity, req *dto.AddressRequest) (*models.Address, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	address := &models.Address{}
	req.Apply(address)
	if err := s.addresses.Create(ctx, id.UserID, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, id identity.Identity, addressID uuid.UUID) (*models.Address, error) {
	return s.addresses.Get(ctx, id.UserID, addressID)
}

// Replace overwrites every writable field.
func (s *AddressService) Replace(ctx context.Context, id identity.Identity, addressID uuid.UUID, req *dto.AddressRequest) (*models.Address, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	address, err := s.addresses.Get(ctx, id.UserID, addressID)
	if err != nil {
		return nil, err
	}
	req.Apply(address)
	return s.save(ctx, id, address)
}

// Update changes only the fields present in req.
func (s *AddressService) Update(ctx context.Context, id identity.Identity, addressID uuid.UUID, req *dto.UpdateAddressRequest) (*models.Address, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	address, err := s.addresses.Get(ctx, id.UserID, addressID)
	if err != nil {
		return nil, err
	}
	req.Apply(address)
	return s.save(ctx, id, address)
}

func (s *AddressService) Delete(ctx context.Context, id identity.Identity, addressID uuid.UUID) error {
	return s.addresses.Delete(ctx, id.UserID, addressID)
}

func (s *AddressService) save(ctx context.Context, id identity.Identity, address *models.Address) (*models.Address, error) {
	if err := s.addresses.Save(ctx, id.UserID, address); err != nil {
		return nil, err
	}
	return s.addresses.Get(ctx, id.UserID, address.ID)
}
