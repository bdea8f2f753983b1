// Package policy centralizes authorization decisions. Every protected
// operation calls through these primitives instead of comparing roles inline.
package policy

import (
	"slices"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// Actor is the authenticated caller of a protected operation.
type Actor struct {
	ID   int64
	Role string
}

// Authenticated reports whether the actor resolved to a known identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0 && a.Role != ""
}

// IsAdmin reports whether the actor holds the admin role.
func IsAdmin(a Actor) bool {
	return a.Role == domain.RoleAdmin
}

// IsOwner reports whether the actor is the identity that owns ownerID.
func IsOwner(a Actor, ownerID int64) bool {
	return a.ID != 0 && a.ID == ownerID
}

// Authorize allows role when it is one of required. An empty role is
// unauthenticated; an empty required list denies everyone.
func Authorize(role string, required ...string) error {
	if role == "" {
		return domain.ErrUnauthenticated
	}
	if slices.Contains(required, role) {
		return nil
	}
	return domain.ErrForbidden
}

// AdminOnly allows admins only.
func AdminOnly(a Actor) error {
	if !a.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return Authorize(a.Role, domain.RoleAdmin)
}

// AdminOrOwner allows admins and the owner of the resource.
func AdminOrOwner(a Actor, ownerID int64) error {
	if !a.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if IsAdmin(a) || IsOwner(a, ownerID) {
		return nil
	}
	return domain.ErrForbidden
}
