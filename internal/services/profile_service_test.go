package services_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestProfileService(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	profiles := services.NewProfileService(f.users)

	req := registerReq("me@x.com")
	req.Phone = "555-0100"
	reg, err := f.auth.Register(ctx, req)
	require.NoError(t, err)
	me := identity.FromUser(reg.User)

	got, err := profiles.Get(ctx, me)
	require.NoError(t, err)
	require.Equal(t, "me@x.com", got.Email)

	updated, err := profiles.Update(ctx, me, &dto.UpdateProfileRequest{Name: strPtr("  Alicia ")})
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.Name)
	require.Equal(t, "555-0100", updated.Phone, "PATCH keeps absent fields")
	require.Equal(t, "me@x.com", updated.Email)

	replaced, err := profiles.Replace(ctx, me, &dto.UpdateProfileRequest{Name: strPtr("Al")})
	require.NoError(t, err)
	require.Equal(t, "Al", replaced.Name)
	require.Equal(t, "", replaced.Phone, "PUT clears an omitted phone")

	_, err = profiles.Replace(ctx, me, &dto.UpdateProfileRequest{Phone: strPtr("1")})
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "name")

	_, err = profiles.Update(ctx, me, &dto.UpdateProfileRequest{Name: strPtr("   ")})
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "name")
}
