package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse(res, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(authResponse(res, "Login successful"))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	pair, err := h.authService.Refresh(c.UserContext(), req.Token())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.TokenPair{Access: pair.Access, Refresh: pair.Refresh})
}

func authResponse(res *services.AuthResult, message string) dto.AuthResponse {
	return dto.AuthResponse{
		User:    dto.NewUserResponse(res.User),
		Tokens:  dto.TokenPair{Access: res.Tokens.Access, Refresh: res.Tokens.Refresh},
		Message: message,
	}
}
