package ports

import (
	"context"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/policy"
)

// AuthService authenticates identities and reads bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	RoleFromToken(token string) (string, error)
	SubjectFromToken(token string) (string, error)
	CurrentUser(ctx context.Context, token string) (*domain.UserDetails, error)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Avatar     string
	Attributes domain.ProfileAttributes
}

// RegistrationResult is returned on successful registration. Token is only
// set for roles that receive a session on sign-up.
type RegistrationResult struct {
	Message  string
	Token    string
	Identity *domain.Identity
}

// RegistrationService creates identities together with their profile.
type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput, roleName string) (*RegistrationResult, error)
}

// PasswordResetService issues and redeems single-use reset tokens.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// UserService exposes protected operations on identities.
type UserService interface {
	ResolveActor(ctx context.Context, email string) (policy.Actor, error)
	Get(ctx context.Context, actor policy.Actor, id int64) (*domain.UserDetails, error)
	Delete(ctx context.Context, actor policy.Actor, id int64) error
}
