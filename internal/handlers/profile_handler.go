package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/identity"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.Get(c.UserContext(), me)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PATCH.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	return h.write(c, h.profileService.Update)
}

// Replace handles PUT.
func (h *ProfileHandler) Replace(c *fiber.Ctx) error {
	return h.write(c, h.profileService.Replace)
}

type profileWriter func(context.Context, identity.Identity, *dto.UpdateProfileRequest) (*models.User, error)

func (h *ProfileHandler) write(c *fiber.Ctx, apply profileWriter) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := apply(c.UserContext(), me, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
