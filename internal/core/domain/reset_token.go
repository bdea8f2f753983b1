package domain

import "time"

// ResetTokenTTL is how long a password reset token stays redeemable.
const ResetTokenTTL = 15 * time.Minute

// ResetToken is a single-use credential authorizing one password change.
type ResetToken struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the token's window has passed at now.
// A token is still redeemable at exactly ExpiresAt.
func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
