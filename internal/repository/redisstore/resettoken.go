package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

const resetTokenPrefix = "password-reset:"

// ResetTokenStore implements repository.ResetTokenStore on Redis. Keys are
// token hashes, values are user IDs, and Redis handles expiry via TTL.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a Redis-backed reset token store.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save stores a token hash for a user with the given TTL.
func (s *ResetTokenStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetTokenPrefix+tokenHash, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume resolves a token hash to a user ID and invalidates it so the
// token cannot be replayed. Unknown or expired hashes map to not-found.
func (s *ResetTokenStore) Consume(ctx context.Context, tokenHash string) (string, error) {
	key := resetTokenPrefix + tokenHash

	userID, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}

	return userID, nil
}
