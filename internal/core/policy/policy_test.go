package policy

import (
	"errors"
	"testing"

	"github.com/iwellness/admin-users/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		required []string
		want     error
	}{
		{"allowed", domain.RoleTourist, []string{domain.RoleTourist, domain.RoleProvider}, nil},
		{"not in list", domain.RoleTourist, []string{domain.RoleAdmin}, domain.ErrForbidden},
		{"no role", "", []string{domain.RoleAdmin}, domain.ErrUnauthenticated},
		{"empty list denies", domain.RoleAdmin, nil, domain.ErrForbidden},
		{"exact match only", "admin", []string{domain.RoleAdmin}, domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Authorize(tc.role, tc.required...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	if err := AdminOnly(Actor{ID: 1, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
	if err := AdminOnly(Actor{ID: 2, Role: domain.RoleProvider}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := AdminOnly(Actor{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAdminOrOwner(t *testing.T) {
	owner := Actor{ID: 7, Role: domain.RoleTourist}
	other := Actor{ID: 8, Role: domain.RoleTourist}
	admin := Actor{ID: 1, Role: domain.RoleAdmin}

	if err := AdminOrOwner(owner, 7); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if err := AdminOrOwner(admin, 7); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
	if err := AdminOrOwner(other, 7); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := AdminOrOwner(Actor{Role: domain.RoleTourist}, 0); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIsOwner_ZeroID(t *testing.T) {
	if IsOwner(Actor{}, 0) {
		t.Fatalf("zero actor must not own anything")
	}
}
