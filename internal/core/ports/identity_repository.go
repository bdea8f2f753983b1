package ports

import (
	"context"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// IdentityRepository defines persistence for identity records.
type IdentityRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByEmail returns domain.ErrUserNotFound when no identity matches.
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// FindByID returns domain.ErrUserNotFound when no identity matches.
	FindByID(ctx context.Context, id int64) (*domain.Identity, error)
	// Save inserts the identity when its ID is zero and updates it otherwise.
	// A uniqueness violation on email yields domain.ErrEmailTaken.
	Save(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RoleRepository looks up roles from the catalog.
type RoleRepository interface {
	// FindByName returns domain.ErrRoleNotFound when the name is not catalogued.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// ProfileRepository persists the role-specific profile variants.
type ProfileRepository interface {
	SaveTourist(ctx context.Context, p *domain.TouristProfile) (*domain.TouristProfile, error)
	// FindTouristByIdentity returns domain.ErrProfileNotFound when absent.
	FindTouristByIdentity(ctx context.Context, identityID int64) (*domain.TouristProfile, error)
	SaveProvider(ctx context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error)
	// FindProviderByIdentity returns domain.ErrProfileNotFound when absent.
	FindProviderByIdentity(ctx context.Context, identityID int64) (*domain.ProviderProfile, error)
	DeleteByIdentity(ctx context.Context, identityID int64) error
}

// Transactor runs fn as a single unit of work. Repository calls made with the
// context passed to fn commit together or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
