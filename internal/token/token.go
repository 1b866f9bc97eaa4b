// Package token issues and verifies the stateless session tokens handed to
// clients after login. Tokens are HS256 JWTs carrying only the subject, a
// type discriminator and timestamps.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload of both token types.
type Claims struct {
	jwt.RegisteredClaims
	TokenType Type `json:"token_type"`
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Pair is what a client receives after register, login or refresh.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Options struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if opts.AccessTTL == 0 {
		opts.AccessTTL = DefaultAccessTTL
	}
	if opts.RefreshTTL == 0 {
		opts.RefreshTTL = DefaultRefreshTTL
	}
	if opts.AccessTTL < 0 || opts.AccessTTL >= opts.RefreshTTL {
		return nil, fmt.Errorf("token: access ttl %s must be positive and shorter than refresh ttl %s", opts.AccessTTL, opts.RefreshTTL)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Manager{
		secret:     []byte(opts.Secret),
		issuer:     opts.Issuer,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			// rejects set padding bits in the last signature char
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(opts.Now),
		),
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// Issue mints a fresh access/refresh pair for subject.
func (m *Manager) Issue(subject uuid.UUID) (*Pair, error) {
	now := m.now()

	access, err := m.sign(subject, TypeAccess, now, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(subject, TypeRefresh, now, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented token
// is not invalidated.
func (m *Manager) Refresh(raw string) (*Pair, error) {
	claims, err := m.Verify(raw, TypeRefresh)
	if err != nil {
		return nil, err
	}
	subject, _ := claims.UserID() // checked by Verify
	return m.Issue(subject)
}

// Verify parses raw and checks signature, expiry and type. It touches no
// storage. Failures are *RejectionError.
func (m *Manager) Verify(raw string, want Type) (*Claims, error) {
	claims := &Claims{}
	if _, err := m.parser.ParseWithClaims(raw, claims, m.KeyFunc); err != nil {
		return nil, Classify(err)
	}
	if err := m.check(claims, want); err != nil {
		return nil, err
	}
	return claims, nil
}

// check runs the checks that follow a successful signature verification.
func (m *Manager) check(claims *Claims, want Type) error {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return reject(ReasonMalformed, errors.New("missing exp or iat"))
	}
	if !m.now().Before(claims.ExpiresAt.Time) {
		return reject(ReasonExpired, jwt.ErrTokenExpired)
	}
	if _, err := claims.UserID(); err != nil {
		return reject(ReasonMalformed, fmt.Errorf("invalid subject: %w", err))
	}
	if claims.TokenType != want {
		return reject(ReasonWrongType, fmt.Errorf("got %q token, want %q", claims.TokenType, want))
	}
	return nil
}

// KeyFunc only hands out the secret for HS256 tokens. Parsers that do not
// restrict the algorithm themselves rely on this.
func (m *Manager) KeyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return m.secret, nil
}

func (m *Manager) sign(subject uuid.UUID, typ Type, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		TokenType: typ,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}
