package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Name            string `json:"name" validate:"required,max=255"`
	Phone           string `json:"phone" validate:"omitempty,max=32"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest accepts the refresh token under either key.
type RefreshRequest struct {
	Refresh      string `json:"refresh"`
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Token() string {
	if r.Refresh != "" {
		return r.Refresh
	}
	return r.RefreshToken
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthResponse struct {
	User    UserResponse `json:"user"`
	Tokens  TokenPair    `json:"tokens"`
	Message string       `json:"message"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		DateJoined: u.CreatedAt,
	}
}

// UpdateProfileRequest is used by both PATCH and PUT. Email and id are not
// accepted here.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=255"`
	Phone *string `json:"phone" validate:"omitnil,max=32"`
}
