package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
	"github.com/iwellness/admin-users/internal/core/security"
)

// RegistrationSucceeded is the outcome message of a successful registration.
const RegistrationSucceeded = "Registro exitoso"

// RegistrationService creates an identity and its role profile in one
// transaction, then hands the new profile to the notifier.
type RegistrationService struct {
	users    ports.IdentityRepository
	roles    ports.RoleRepository
	profiles ports.ProfileRepository
	tx       ports.Transactor
	hasher   security.PasswordHasher
	auth     *AuthService
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewRegistrationService(
	users ports.IdentityRepository,
	roles ports.RoleRepository,
	profiles ports.ProfileRepository,
	tx ports.Transactor,
	hasher security.PasswordHasher,
	auth *AuthService,
	notifier ports.Notifier,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:    users,
		roles:    roles,
		profiles: profiles,
		tx:       tx,
		hasher:   hasher,
		auth:     auth,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Register runs validate, duplicate check, role resolution, hashing, identity
// and profile creation. Providers additionally receive a session token.
//
// The duplicate pre-check is advisory; the store's unique email index is what
// guarantees at most one of several concurrent registrations succeeds.
func (s *RegistrationService) Register(ctx context.Context, in ports.RegisterInput, roleName string) (*ports.RegistrationResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrMissingFields
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("register: resolve role: %w", err)
	}

	profile, err := domain.NewProfile(role.Name, in.Attributes)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	identity := &domain.Identity{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Avatar:       in.Avatar,
		RoleID:       role.ID,
		Role:         role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.Identity
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.users.Save(ctx, identity)
		if err != nil {
			return err
		}
		return s.createProfile(ctx, created, profile)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		s.log.Error().Err(err).Str("role", role.Name).Msg("registration failed")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("identity_id", created.ID).Str("role", role.Name).Msg("identity registered")

	result := &ports.RegistrationResult{Message: RegistrationSucceeded, Identity: created}
	s.notify(created, profile)

	// The identity is committed at this point; a failed session only means
	// the provider has to log in explicitly.
	if _, ok := profile.(*domain.ProviderProfile); ok {
		token, _, err := s.auth.Login(ctx, in.Email, in.Password)
		if err != nil {
			s.log.Warn().Err(err).Int64("identity_id", created.ID).Msg("failed to issue session after registration")
		}
		result.Token = token
	}

	return result, nil
}

func (s *RegistrationService) createProfile(ctx context.Context, identity *domain.Identity, profile domain.Profile) error {
	switch p := profile.(type) {
	case *domain.TouristProfile:
		p.IdentityID = identity.ID
		saved, err := s.profiles.SaveTourist(ctx, p)
		if err != nil {
			return fmt.Errorf("create tourist profile: %w", err)
		}
		*p = *saved
	case *domain.ProviderProfile:
		p.IdentityID = identity.ID
		saved, err := s.profiles.SaveProvider(ctx, p)
		if err != nil {
			return fmt.Errorf("create provider profile: %w", err)
		}
		*p = *saved
	case domain.AdminProfile:
	default:
		return fmt.Errorf("create profile: unsupported profile %T", profile)
	}
	return nil
}

// notify is best-effort: serialization problems are logged and the
// registration still succeeds.
func (s *RegistrationService) notify(identity *domain.Identity, profile domain.Profile) {
	var (
		kind string
		msg  any
	)
	switch p := profile.(type) {
	case *domain.TouristProfile:
		kind, msg = domain.NotificationTourist, touristMessage(identity, p)
	case *domain.ProviderProfile:
		kind, msg = domain.NotificationProvider, providerMessage(identity, p)
	default:
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("failed to encode notification")
		return
	}
	s.notifier.Notify(domain.Notification{
		Kind:    kind,
		Key:     strconv.FormatInt(identity.ID, 10),
		Payload: payload,
	})
}

func touristMessage(identity *domain.Identity, p *domain.TouristProfile) domain.TouristMessage {
	return domain.TouristMessage{
		ID:            p.ID,
		Name:          identity.Name,
		Phone:         p.Phone,
		City:          p.City,
		Country:       p.Country,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
	}
}

func providerMessage(identity *domain.Identity, p *domain.ProviderProfile) domain.ProviderMessage {
	return domain.ProviderMessage{
		ID:           identity.ID,
		Name:         identity.Name,
		CompanyName:  p.CompanyName,
		ContactRole:  p.ContactRole,
		Phone:        p.Phone,
		CompanyPhone: p.CompanyPhone,
		CoordX:       p.CoordX,
		CoordY:       p.CoordY,
	}
}
