package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/policy"
	"github.com/iwellness/admin-users/internal/core/ports"
)

// UserService implements the protected identity operations. Every method
// authorizes through the policy package before touching the store.
type UserService struct {
	users    ports.IdentityRepository
	profiles ports.ProfileRepository
	tx       ports.Transactor
	log      zerolog.Logger
}

func NewUserService(users ports.IdentityRepository, profiles ports.ProfileRepository, tx ports.Transactor, log zerolog.Logger) *UserService {
	return &UserService{users: users, profiles: profiles, tx: tx, log: log}
}

// ResolveActor maps an authenticated subject to its identity id and stored role.
func (s *UserService) ResolveActor(ctx context.Context, email string) (policy.Actor, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return policy.Actor{}, domain.ErrUnauthenticated
		}
		return policy.Actor{}, fmt.Errorf("resolve actor: %w", err)
	}
	return policy.Actor{ID: user.ID, Role: user.Role}, nil
}

// Get returns an identity with its profile. Admins and the owner only.
func (s *UserService) Get(ctx context.Context, actor policy.Actor, id int64) (*domain.UserDetails, error) {
	if err := policy.AdminOrOwner(actor, id); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return loadDetails(ctx, s.profiles, user)
}

// Delete removes an identity and its profile. Admins only.
func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if err := policy.AdminOnly(actor); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.profiles.DeleteByIdentity(ctx, id); err != nil {
			return err
		}
		return s.users.DeleteByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Int64("identity_id", id).Int64("actor_id", actor.ID).Msg("identity deleted")
	return nil
}
