package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
	"github.com/iwellness/admin-users/internal/core/security"
)

// AuthService implements login and token introspection.
type AuthService struct {
	users    ports.IdentityRepository
	profiles ports.ProfileRepository
	hasher   security.PasswordHasher
	tokens   *security.TokenService
	log      zerolog.Logger
}

func NewAuthService(
	users ports.IdentityRepository,
	profiles ports.ProfileRepository,
	hasher security.PasswordHasher,
	tokens *security.TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, profiles: profiles, hasher: hasher, tokens: tokens, log: log}
}

// Login verifies the credentials and issues a bearer token. Unknown accounts
// and wrong passwords are both reported as domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("identity_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

func (s *AuthService) issue(ctx context.Context, user *domain.Identity) (string, error) {
	var opts []security.ClaimOption
	if user.Role == domain.RoleProvider {
		p, err := s.profiles.FindProviderByIdentity(ctx, user.ID)
		switch {
		case err == nil:
			opts = append(opts, security.WithProviderID(p.ID))
		case !errors.Is(err, domain.ErrProfileNotFound):
			return "", err
		}
	}
	return s.tokens.Issue(user.Email, user.Role, opts...)
}

// RoleFromToken verifies token and returns its role claim.
func (s *AuthService) RoleFromToken(token string) (string, error) {
	return s.tokens.Role(token)
}

// SubjectFromToken verifies token and returns its subject claim.
func (s *AuthService) SubjectFromToken(token string) (string, error) {
	return s.tokens.Subject(token)
}

// CurrentUser resolves the identity behind token together with its profile.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.UserDetails, error) {
	email, err := s.tokens.Subject(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return loadDetails(ctx, s.profiles, user)
}

// loadDetails attaches the profile variant matching the identity's role.
func loadDetails(ctx context.Context, profiles ports.ProfileRepository, user *domain.Identity) (*domain.UserDetails, error) {
	details := &domain.UserDetails{Identity: user}

	switch user.Role {
	case domain.RoleTourist:
		p, err := profiles.FindTouristByIdentity(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("load tourist profile: %w", err)
		}
		details.Tourist = p
	case domain.RoleProvider:
		p, err := profiles.FindProviderByIdentity(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("load provider profile: %w", err)
		}
		details.Provider = p
	}
	return details, nil
}
