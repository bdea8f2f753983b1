package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iwellness/admin-users/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenConfig is loaded once at startup and never mutated afterwards.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// Claims is the token payload: subject (email), role, issued-at and expiry.
type Claims struct {
	Role       string `json:"role"`
	ProviderID int64  `json:"provider_id,omitempty"`
	jwt.RegisteredClaims
}

// ClaimOption adds optional claims at issuance.
type ClaimOption func(*Claims)

// WithProviderID embeds the provider profile id.
func WithProviderID(id int64) ClaimOption {
	return func(c *Claims) { c.ProviderID = id }
}

// TokenService signs and verifies HS256 bearer tokens.
//
// Signature mismatch, expiry and malformed input are all reported as
// domain.ErrInvalidToken so callers cannot tell them apart.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("security: empty token signing secret")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the service reading time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for subject carrying role, expiring TTL from now.
func (s *TokenService) Issue(subject, role string, opts ...ClaimOption) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	for _, opt := range opts {
		opt(claims)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate reports whether token is well formed, correctly signed and not
// expired. A token is valid strictly before its expiry instant.
func (s *TokenService) Validate(token string) bool {
	_, err := s.Parse(token)
	return err == nil
}

// Parse verifies token and returns its claims. Accessors below go through
// Parse, so they are safe to call on untrusted input.
func (s *TokenService) Parse(token string) (*Claims, error) {
	if !wellFormed(token) {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, s.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Subject returns the subject (email) claim.
func (s *TokenService) Subject(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Role returns the role claim.
func (s *TokenService) Role(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (s *TokenService) key(*jwt.Token) (interface{}, error) {
	return s.secret, nil
}

// wellFormed checks for exactly three non-empty dot-separated segments.
func wellFormed(token string) bool {
	if token == "" {
		return false
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
