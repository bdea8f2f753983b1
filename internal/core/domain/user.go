package domain

import (
	"strings"
	"time"
)

// Role catalog. Roles are looked up by name and never created by the core.
const (
	RoleAdmin    = "Admin"
	RoleTourist  = "Turista"
	RoleProvider = "Proveedor"
)

// RoleCatalog lists every role name the service understands.
var RoleCatalog = []string{RoleAdmin, RoleTourist, RoleProvider}

// Role is the sole authorization discriminant of an identity.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Identity is the core account record.
type Identity struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar,omitempty"`
	RoleID       int64     `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserDetails is an identity together with its role-specific profile, if any.
type UserDetails struct {
	Identity *Identity        `json:"user"`
	Tourist  *TouristProfile  `json:"tourist,omitempty"`
	Provider *ProviderProfile `json:"provider,omitempty"`
}

// NormalizeEmail trims surrounding whitespace. Matching is otherwise exact
// (case-sensitive) for registration, login and password reset alike.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
