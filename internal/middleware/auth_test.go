package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	users map[uuid.UUID]*models.User
	err   error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, claims *token.Claims) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	id, _ := claims.UserID()
	u, ok := f.users[id]
	if !ok {
		return nil, token.Reject(token.ReasonSubjectNotFound, nil)
	}
	return u, nil
}

func newManager(t *testing.T, now func() time.Time) *token.Manager {
	t.Helper()
	m, err := token.NewManager(token.Options{Secret: "mw-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour, Now: now})
	require.NoError(t, err)
	return m
}

func newApp(tokens *token.Manager, auth Authenticator) *fiber.App {
	app := fiber.New()
	app.Get("/me", Authenticated(tokens, auth, nil), func(c *fiber.Ctx) error {
		id, ok := identity.From(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(id.UserID.String())
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body dto.ErrorResponse
	if resp.StatusCode == fiber.StatusUnauthorized {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, string(raw), body
}

func TestAuthenticated(t *testing.T) {
	tokens := newManager(t, nil)
	user := &models.User{ID: uuid.New(), Email: "a@x.com", IsActive: true}
	app := newApp(tokens, &fakeAuthenticator{users: map[uuid.UUID]*models.User{user.ID: user}})

	pair, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	status, raw, _ := call(t, app, "Bearer "+pair.Access)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, user.ID.String(), raw)
}

func TestAuthenticated_Rejections(t *testing.T) {
	tokens := newManager(t, nil)
	user := &models.User{ID: uuid.New(), IsActive: true}
	app := newApp(tokens, &fakeAuthenticator{users: map[uuid.UUID]*models.User{user.ID: user}})

	pair, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	ghost, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	past := newManager(t, func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expired, err := past.Issue(user.ID)
	require.NoError(t, err)

	other, err := token.NewManager(token.Options{Secret: "other-secret"})
	require.NoError(t, err)
	foreign, err := other.Issue(user.ID)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: token.TypeAccess,
	}).SignedString([]byte("mw-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   token.Reason
	}{
		{"missing header", "", token.ReasonMalformed},
		{"wrong scheme", "Basic " + pair.Access, token.ReasonMalformed},
		{"garbage", "Bearer garbage", token.ReasonMalformed},
		{"refresh token", "Bearer " + pair.Refresh, token.ReasonWrongType},
		{"expired", "Bearer " + expired.Access, token.ReasonExpired},
		{"foreign secret", "Bearer " + foreign.Access, token.ReasonBadSignature},
		{"other algorithm", "Bearer " + hs512, token.ReasonBadSignature},
		{"unknown subject", "Bearer " + ghost.Access, token.ReasonSubjectNotFound},
		{"padding bit altered", "Bearer " + alterLastChar(pair.Access), token.ReasonMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, body := call(t, app, tt.header)
			require.Equal(t, fiber.StatusUnauthorized, status)
			require.True(t, body.Error)
			require.Equal(t, string(tt.code), body.Code)
		})
	}
}

// alterLastChar swaps the final base64url character for its neighbour that
// differs only in the lowest bit.
func alterLastChar(raw string) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := []byte(raw)
	idx := strings.IndexByte(alphabet, b[len(b)-1])
	b[len(b)-1] = alphabet[idx^1]
	return string(b)
}

func TestAuthenticated_Disabled(t *testing.T) {
	tokens := newManager(t, nil)
	app := newApp(tokens, &fakeAuthenticator{err: services.ErrAccountDisabled})

	pair, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	status, _, body := call(t, app, "Bearer "+pair.Access)
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Equal(t, "account_disabled", body.Code)
}

func TestAuthenticated_StoreFailure(t *testing.T) {
	tokens := newManager(t, nil)
	app := newApp(tokens, &fakeAuthenticator{err: errors.New("db down")})

	pair, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	status, _, _ := call(t, app, "Bearer "+pair.Access)
	require.Equal(t, fiber.StatusInternalServerError, status)
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
