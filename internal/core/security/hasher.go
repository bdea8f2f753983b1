// Package security holds the credential primitives: password hashing and
// bearer token signing.
package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher kinds accepted by NewHasher.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// PasswordHasher is a one-way password transform and its verification predicate.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// NewHasher returns the hasher registered under kind. An empty kind selects
// the legacy SHA-256 digest so existing credentials keep verifying.
func NewHasher(kind string) (PasswordHasher, error) {
	switch kind {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("security: unknown password hasher %q", kind)
	}
}

// SHA256Hasher reproduces the stored credential format: base64 of an unsalted
// SHA-256 digest, always 44 characters.
//
// The digest is unsalted and fast. Stored credentials must be migrated before
// switching to BcryptHasher; the two formats do not verify each other.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Matches(plaintext, digest string) bool {
	got, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}

// BcryptHasher is the salted, adaptive alternative.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Matches(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
