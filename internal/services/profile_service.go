package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/validation"
)

// ProfileService reads and edits the caller's own user record. Only name and
// phone are writable.
type ProfileService struct {
	users *store.UserStore
}

func NewProfileService(users *store.UserStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, id identity.Identity) (*models.User, error) {
	return s.users.FindByID(ctx, id.UserID)
}

// Update applies a partial change.
func (s *ProfileService) Update(ctx context.Context, id identity.Identity, req *dto.UpdateProfileRequest) (*models.User, error) {
	req.Name, req.Phone = trimmed(req.Name), trimmed(req.Phone)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, id.UserID, req.Name, req.Phone)
}

// Replace is the full update: name is required and a missing phone clears it.
func (s *ProfileService) Replace(ctx context.Context, id identity.Identity, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.Name == nil {
		return nil, validation.Field("name", "this field is required")
	}
	if req.Phone == nil {
		empty := ""
		req.Phone = &empty
	}
	return s.Update(ctx, id, req)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
