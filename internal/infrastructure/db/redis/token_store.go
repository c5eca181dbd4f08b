package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/networkasro/backoffice/internal/core/domain"
)

const refreshKeyPrefix = "refresh:"

// TokenStore holds refresh tokens keyed by the opaque token string. Each
// entry maps to the owning user id and expires with the refresh TTL.
// Consume removes the token atomically so a refresh token is single use.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Set(ctx, refreshKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume returns the user id for the token and deletes it in the same
// operation. A token that is missing, expired, or already rotated yields
// domain.ErrSessionExpired.
func (s *TokenStore) Consume(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userID, err := s.client.GetDel(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionExpired
		}
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, nil
}

// Revoke drops the token. Revoking a token that no longer exists is not
// an error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
