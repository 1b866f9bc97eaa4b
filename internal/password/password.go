// Package password hashes and verifies user credentials. Digests are
// self-describing PHC strings, so the parameters used for a stored digest
// travel with it and older digests keep verifying after a policy change.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordTooShort = errors.New("password is too short")

// Params configures argon2id.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follows the OWASP argon2id baseline (19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

const argonPrefix = "$argon2id$"

type Hasher struct {
	params    Params
	minLength int
}

func NewHasher(params Params, minLength int) *Hasher {
	if minLength < 1 {
		minLength = 1
	}
	return &Hasher{params: params, minLength: minLength}
}

func (h *Hasher) MinLength() int { return h.minLength }

// Hash returns a PHC-encoded argon2id digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if utf8.RuneCountInString(plaintext) < h.minLength {
		return "", ErrPasswordTooShort
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never
// match.
func (h *Hasher) Verify(plaintext, digest string) bool {
	switch {
	case strings.HasPrefix(digest, argonPrefix):
		d, err := decodeArgon(digest)
		if err != nil {
			return false
		}
		computed := argon2.IDKey([]byte(plaintext), d.salt, d.params.Iterations, d.params.Memory, d.params.Parallelism, d.params.KeyLength)
		return subtle.ConstantTimeCompare(computed, d.key) == 1
	case isBcrypt(digest):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
	default:
		return false
	}
}

// NeedsRehash is true for digests produced by another algorithm or with
// parameters other than the hasher's.
func (h *Hasher) NeedsRehash(digest string) bool {
	if !strings.HasPrefix(digest, argonPrefix) {
		return true
	}
	d, err := decodeArgon(digest)
	if err != nil {
		return true
	}
	p := d.params
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism ||
		p.KeyLength != h.params.KeyLength
}

type argonDigest struct {
	params Params
	salt   []byte
	key    []byte
}

// decodeArgon parses $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func decodeArgon(digest string) (*argonDigest, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return nil, errors.New("invalid argon2id digest: expected 6 parts")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("invalid argon2id digest version: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return nil, fmt.Errorf("invalid argon2id parameters: %w", err)
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return nil, errors.New("invalid argon2id parameters: zero value")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("invalid argon2id salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("invalid argon2id hash: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("invalid argon2id hash: empty")
	}

	p.SaltLength = uint32(len(salt)) // #nosec G115 -- decoded from a bounded digest
	p.KeyLength = uint32(len(key))   // #nosec G115
	return &argonDigest{params: p, salt: salt, key: key}, nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
