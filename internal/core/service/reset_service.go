package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
	"github.com/iwellness/admin-users/internal/core/security"
)

const resetEmailSubject = "Recuperación de contraseña"

// PasswordResetService issues single-use reset tokens and redeems them.
type PasswordResetService struct {
	users    ports.IdentityRepository
	tokens   ports.ResetTokenRepository
	hasher   security.PasswordHasher
	mailer   ports.Mailer
	log      zerolog.Logger
	ttl      time.Duration
	linkBase string
	now      func() time.Time
	newToken func() string
}

func NewPasswordResetService(
	users ports.IdentityRepository,
	tokens ports.ResetTokenRepository,
	hasher security.PasswordHasher,
	mailer ports.Mailer,
	linkBase string,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = domain.ResetTokenTTL
	}
	return &PasswordResetService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		mailer:   mailer,
		log:      log,
		ttl:      ttl,
		linkBase: linkBase,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// RequestReset stores a fresh token for email and mails the reset link.
// Nothing about the token is returned to the caller. A mail failure is
// logged and does not fail the request.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrEmailNotFound
		}
		return fmt.Errorf("request reset: %w", err)
	}

	rt := &domain.ResetToken{
		Token:     s.newToken(),
		Email:     user.Email,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.tokens.Save(ctx, rt); err != nil {
		return fmt.Errorf("request reset: store token: %w", err)
	}

	if err := s.mailer.Send(ctx, user.Email, resetEmailSubject, s.resetBody(user.Name, rt.Token)); err != nil {
		s.log.Warn().Err(err).Int64("identity_id", user.ID).Msg("failed to send password reset email")
	}

	s.log.Info().Int64("identity_id", user.ID).Msg("password reset requested")
	return nil
}

// ResetPassword redeems token and stores the new password hash.
//
// The token record is claimed with an atomic delete right before the password
// write, so of two concurrent redemptions only one gets past the claim. If the
// write fails the record is put back.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if newPassword == "" {
		return domain.ErrMissingFields
	}

	rt, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			return domain.ErrInvalidResetToken
		}
		return fmt.Errorf("reset password: find token: %w", err)
	}
	if rt.IsExpired(s.now()) {
		return domain.ErrInvalidResetToken
	}

	user, err := s.users.FindByEmail(ctx, rt.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("reset password: find user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}

	claimed, err := s.tokens.Delete(ctx, token)
	if err != nil {
		return fmt.Errorf("reset password: claim token: %w", err)
	}
	if !claimed {
		return domain.ErrInvalidResetToken
	}

	user.PasswordHash = hash
	user.UpdatedAt = s.now().UTC()
	if _, err := s.users.Save(ctx, user); err != nil {
		if restoreErr := s.tokens.Save(ctx, rt); restoreErr != nil {
			s.log.Error().Err(restoreErr).Int64("identity_id", user.ID).Msg("failed to restore reset token")
		}
		return fmt.Errorf("reset password: update user: %w", err)
	}

	s.log.Info().Int64("identity_id", user.ID).Msg("password reset completed")
	return nil
}

func (s *PasswordResetService) resetBody(name, token string) string {
	link := s.linkBase + "?token=" + url.QueryEscape(token)
	minutes := int(s.ttl / time.Minute)
	return fmt.Sprintf("Hola %s,\n\n"+
		"Haz clic en el siguiente enlace para restablecer tu contraseña:\n%s\n\n"+
		"Este enlace expirará en %d minutos.\n\n"+
		"Saludos,\nEquipo I-Wellness", name, link, minutes)
}
