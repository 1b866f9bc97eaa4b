package middleware

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLocalsKey = "jwt"

// Authenticator resolves verified claims to a user. *services.AuthService
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, claims *token.Claims) (*models.User, error)
}

// Authenticated requires a valid access token in the Authorization header and
// stores the caller's identity on the request.
func Authenticated(tokens *token.Manager, auth Authenticator, m *metrics.Metrics) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.KeyFunc,
		Claims:     &token.Claims{},
		ContextKey: tokenLocalsKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			tok, ok := c.Locals(tokenLocalsKey).(*jwt.Token)
			if !ok {
				return unauthorized(c, m, token.Reject(token.ReasonMalformed, nil))
			}
			// jwtware decodes base64 leniently; the manager's parser is strict.
			claims, err := tokens.Verify(tok.Raw, token.TypeAccess)
			if err != nil {
				return unauthorized(c, m, err)
			}

			user, err := auth.Authenticate(c.UserContext(), claims)
			if err != nil {
				if errors.Is(err, services.ErrAccountDisabled) || token.ReasonOf(err) != "" {
					return unauthorized(c, m, err)
				}
				return err
			}

			identity.Set(c, identity.FromUser(user))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(c, m, token.Reject(token.ReasonMalformed, err))
			}
			return unauthorized(c, m, token.Classify(err))
		},
	})
}

func unauthorized(c *fiber.Ctx, m *metrics.Metrics, err error) error {
	code := string(token.ReasonOf(err))
	message := "Unauthorized: invalid or expired token"
	if errors.Is(err, services.ErrAccountDisabled) {
		code = "account_disabled"
		message = "Unauthorized: account disabled"
	}
	m.ObserveTokenRejection(code)

	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
		Code:    code,
	})
}
