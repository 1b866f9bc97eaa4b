package store

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressStore only exposes owner-scoped queries: there is no way to load an
// address without naming its owner.
type AddressStore struct {
	db *gorm.DB
}

func NewAddressStore(db *gorm.DB) *AddressStore {
	return &AddressStore{db: db}
}

func (s *AddressStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.Address, error) {
	addresses := []models.Address{}
	err := s.db.WithContext(ctx).Scopes(ForOwner(ownerID)).
		Order("is_default DESC").
		Order("created_at ASC").
		Find(&addresses).Error
	return addresses, err
}

func (s *AddressStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := s.db.WithContext(ctx).Scopes(ForOwner(ownerID)).First(&address, "id = ?", id).Error
	return notFound(&address, err, ErrAddressNotFound)
}

// Create inserts address for ownerID. A default address demotes the owner's
// other addresses in the same transaction.
func (s *AddressStore) Create(ctx context.Context, ownerID uuid.UUID, address *models.Address) error {
	address.UserID = ownerID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, ownerID, uuid.Nil); err != nil {
				return err
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
}

// Save writes every mutable column of address back. The owner is re-stamped
// and used as the filter, so a caller cannot move or touch a foreign row.
func (s *AddressStore) Save(ctx context.Context, ownerID uuid.UUID, address *models.Address) error {
	address.UserID = ownerID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, ownerID, address.ID); err != nil {
				return err
			}
		}
		res := tx.Model(&models.Address{}).Scopes(ForOwner(ownerID)).
			Where("id = ?", address.ID).
			Select("address_line1", "address_line2", "city", "state", "postal_code", "country", "is_default", "updated_at").
			Updates(address)
		if res.Error != nil {
			return fmt.Errorf("failed to update address: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAddressNotFound
		}
		return nil
	})
}

func (s *AddressStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Scopes(ForOwner(ownerID)).Where("id = ?", id).Delete(&models.Address{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func clearDefault(tx *gorm.DB, ownerID, except uuid.UUID) error {
	q := tx.Model(&models.Address{}).Scopes(ForOwner(ownerID)).Where("is_default = ?", true)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	return q.Update("is_default", false).Error
}
