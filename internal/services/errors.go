package services

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound    = store.ErrUserNotFound
	ErrAddressNotFound = store.ErrAddressNotFound
	ErrProductNotFound = store.ErrProductNotFound
)
