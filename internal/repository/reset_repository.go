package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid covers unknown, expired and already-consumed tokens.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

const resetKeyPrefix = "password_reset:"

// PasswordResetRepository stores single-use reset tokens with a TTL. Expiry is
// enforced by the store itself; consuming a token removes it atomically.
type PasswordResetRepository interface {
	Create(ctx context.Context, token, accountID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type passwordResetRepository struct {
	client *redis.Client
}

// NewPasswordResetRepository returns a Redis-backed implementation.
func NewPasswordResetRepository(client *redis.Client) PasswordResetRepository {
	return &passwordResetRepository{client: client}
}

func (r *passwordResetRepository) Create(ctx context.Context, token, accountID string, ttl time.Duration) error {
	return r.client.Set(ctx, resetKeyPrefix+token, accountID, ttl).Err()
}

// Consume returns the account id bound to the token and deletes it in the same
// round trip, so a token can never authorize two resets.
func (r *passwordResetRepository) Consume(ctx context.Context, token string) (string, error) {
	accountID, err := r.client.GetDel(ctx, resetKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}
