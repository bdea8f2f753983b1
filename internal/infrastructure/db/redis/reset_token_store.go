package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// expiredRetention keeps a record around past its expiry so redemption reports
// it as expired rather than unknown. Redis evicts it afterwards.
const expiredRetention = 10 * time.Minute

// ResetTokenStore implements ports.ResetTokenRepository.
// Key format: reset:<token>
type ResetTokenStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client, now: time.Now}
}

func (s *ResetTokenStore) Save(ctx context.Context, token *domain.ResetToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode reset token: %w", err)
	}
	if err := s.client.Set(ctx, resetKey(token.Token), payload, s.ttl(token)).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

func (s *ResetTokenStore) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	raw, err := s.client.Get(ctx, resetKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("load reset token: %w", err)
	}

	var rt domain.ResetToken
	if err := json.Unmarshal(raw, &rt); err != nil {
		return nil, fmt.Errorf("decode reset token: %w", err)
	}
	return &rt, nil
}

// Delete relies on DEL being atomic: only one caller sees a count of 1.
func (s *ResetTokenStore) Delete(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Del(ctx, resetKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("delete reset token: %w", err)
	}
	return n == 1, nil
}

func (s *ResetTokenStore) ttl(token *domain.ResetToken) time.Duration {
	ttl := token.ExpiresAt.Sub(s.now()) + expiredRetention
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

func resetKey(token string) string {
	return "reset:" + token
}
