package ports

import (
	"context"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// ResetTokenRepository stores password reset tokens.
type ResetTokenRepository interface {
	Save(ctx context.Context, token *domain.ResetToken) error
	// FindByToken returns domain.ErrInvalidResetToken when the token is unknown.
	FindByToken(ctx context.Context, token string) (*domain.ResetToken, error)
	// Delete removes the token and reports whether this call removed it.
	// Exactly one of several concurrent callers observes true.
	Delete(ctx context.Context, token string) (bool, error)
}
