// Package identity carries the authenticated caller from the auth middleware
// to handlers, which pass it on to services as an explicit argument.
package identity

import (
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsKey = "identity"

type Identity struct {
	UserID  uuid.UUID
	Email   string
	IsStaff bool
}

func FromUser(u *models.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, IsStaff: u.IsStaff}
}

// Set stores id on the request.
func Set(c *fiber.Ctx, id Identity) {
	c.Locals(localsKey, id)
}

// From returns the identity stored by Set. ok is false on routes that did not
// run the auth middleware.
func From(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(localsKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}
