package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/password"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/testutil"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "handlers-test-secret"

type harness struct {
	app      *fiber.App
	db       *gorm.DB
	users    *store.UserStore
	products *store.ProductStore
	tokens   *token.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	users := store.NewUserStore(db)
	products := store.NewProductStore(db)

	tokens, err := token.NewManager(token.Options{Secret: testSecret, AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour})
	require.NoError(t, err)

	hasher := password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}, 1)
	m := metrics.New()
	authService, err := services.NewAuthService(users, hasher, tokens, m)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Setup(app, middleware.Authenticated(tokens, authService, m), m,
		handlers.NewAuthHandler(authService),
		handlers.NewProfileHandler(services.NewProfileService(users)),
		handlers.NewAddressHandler(services.NewAddressService(store.NewAddressStore(db))),
		handlers.NewProductHandler(services.NewProductService(products, nil)),
		handlers.NewHealthHandler(db, nil),
	)

	return &harness{app: app, db: db, users: users, products: products, tokens: tokens}
}

type result struct {
	status int
	raw    []byte
}

func (r result) json(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (r result) list(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (h *harness) do(t *testing.T, method, path string, body any, bearer string) result {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, raw: raw}
}

type session struct {
	id      string
	access  string
	refresh string
}

func (h *harness) register(t *testing.T, email string) session {
	t.Helper()
	res := h.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":            email,
		"name":             "Test User",
		"password":         "pw123",
		"password_confirm": "pw123",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.status, string(res.raw))

	body := res.json(t)
	user := body["user"].(map[string]any)
	tokens := body["tokens"].(map[string]any)
	return session{
		id:      user["id"].(string),
		access:  tokens["access"].(string),
		refresh: tokens["refresh"].(string),
	}
}

func seedProduct(t *testing.T, h *harness, name, category string) string {
	t.Helper()
	product := &models.Product{Name: name, Category: category, Price: 9.99, Stock: 3}
	require.NoError(t, h.products.Create(context.Background(), product))
	return product.ID.String()
}
