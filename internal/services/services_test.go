package services_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/password"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/testutil"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fastParams = password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type authFixture struct {
	db     *gorm.DB
	users  *store.UserStore
	hasher *password.Hasher
	tokens *token.Manager
	auth   *services.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.NewDB(t)
	users := store.NewUserStore(db)
	hasher := password.NewHasher(fastParams, 1)
	tokens, err := token.NewManager(token.Options{
		Secret:     "services-test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	auth, err := services.NewAuthService(users, hasher, tokens, nil)
	require.NoError(t, err)
	return &authFixture{db: db, users: users, hasher: hasher, tokens: tokens, auth: auth}
}
