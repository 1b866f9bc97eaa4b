package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/password"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/validation"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User   *models.User
	Tokens *token.Pair
}

type AuthService struct {
	users   *store.UserStore
	hasher  *password.Hasher
	tokens  *token.Manager
	metrics *metrics.Metrics
	now     func() time.Time

	// verified against when the email is unknown so both login failures
	// cost one hash verification
	dummyDigest string
}

func NewAuthService(users *store.UserStore, hasher *password.Hasher, tokens *token.Manager, m *metrics.Metrics) (*AuthService, error) {
	dummy, err := hasher.Hash(strings.Repeat("x", hasher.MinLength()+16))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		metrics:     m,
		now:         time.Now,
		dummyDigest: dummy,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validation.Struct(req); err != nil {
		s.metrics.ObserveAuth("register", "invalid")
		return nil, err
	}
	if req.Password != req.PasswordConfirm {
		s.metrics.ObserveAuth("register", "invalid")
		return nil, validation.Field("password", "password confirmation mismatch")
	}

	digest, err := s.hasher.Hash(req.Password)
	if errors.Is(err, password.ErrPasswordTooShort) {
		s.metrics.ObserveAuth("register", "invalid")
		return nil, validation.Field("password", fmt.Sprintf("must be at least %d characters", s.hasher.MinLength()))
	}
	if err != nil {
		s.metrics.ObserveAuth("register", "error")
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: digest,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			s.metrics.ObserveAuth("register", "duplicate")
			return nil, ErrEmailTaken
		}
		s.metrics.ObserveAuth("register", "error")
		return nil, err
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.ObserveAuth("register", "error")
		return nil, err
	}

	s.metrics.ObserveAuth("register", "success")
	slog.Info("user registered", "user_id", user.ID.String())
	return &AuthResult{User: user, Tokens: pair}, nil
}

// Login never tells the caller whether the email or the password was wrong.
// A disabled account is only reported once the password has matched.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		s.metrics.ObserveAuth("login", "invalid")
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		s.hasher.Verify(req.Password, s.dummyDigest)
		s.metrics.ObserveAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.metrics.ObserveAuth("login", "error")
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		s.metrics.ObserveAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.metrics.ObserveAuth("login", "disabled")
		return nil, ErrAccountDisabled
	}

	if s.hasher.NeedsRehash(user.Password) {
		s.upgradeDigest(ctx, user, req.Password)
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID.String(), "error", err)
	} else {
		user.LastLogin = &now
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.ObserveAuth("login", "error")
		return nil, err
	}

	s.metrics.ObserveAuth("login", "success")
	return &AuthResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. The subject must still
// exist and be active.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*token.Pair, error) {
	if raw == "" {
		s.metrics.ObserveAuth("refresh", "invalid")
		return nil, validation.Field("refresh", "this field is required")
	}

	claims, err := s.tokens.Verify(raw, token.TypeRefresh)
	if err != nil {
		return nil, s.rejectRefresh(err)
	}
	user, err := s.Authenticate(ctx, claims)
	if err != nil {
		if errors.Is(err, ErrAccountDisabled) {
			return nil, s.rejectRefresh(token.Reject(token.ReasonSubjectNotFound, err))
		}
		if token.ReasonOf(err) != "" {
			return nil, s.rejectRefresh(err)
		}
		s.metrics.ObserveAuth("refresh", "error")
		return nil, err
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.ObserveAuth("refresh", "error")
		return nil, err
	}
	s.metrics.ObserveAuth("refresh", "success")
	return pair, nil
}

// Authenticate resolves verified claims to an active user.
func (s *AuthService) Authenticate(ctx context.Context, claims *token.Claims) (*models.User, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, token.Reject(token.ReasonMalformed, err)
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, token.Reject(token.ReasonSubjectNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) rejectRefresh(err error) error {
	reason := token.ReasonOf(err)
	s.metrics.ObserveAuth("refresh", "rejected")
	s.metrics.ObserveTokenRejection(string(reason))
	return fmt.Errorf("%w: %w", ErrInvalidToken, err)
}

func (s *AuthService) upgradeDigest(ctx context.Context, user *models.User, plaintext string) {
	digest, err := s.hasher.Hash(plaintext)
	if err == nil {
		err = s.users.UpdatePassword(ctx, user.ID, digest)
	}
	if err != nil {
		slog.Warn("failed to upgrade password digest", "user_id", user.ID.String(), "error", err)
		return
	}
	user.Password = digest
}
