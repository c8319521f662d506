package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenNotFound is returned when a reset token is absent or expired.
var ErrResetTokenNotFound = errors.New("reset token not found")

// PasswordResetRepository stores single-use reset tokens. Expiry is enforced
// by the store itself via key TTL.
type PasswordResetRepository interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type passwordResetRepository struct {
	client *redis.Client
}

// NewPasswordResetRepository returns a Redis-backed implementation.
func NewPasswordResetRepository(client *redis.Client) PasswordResetRepository {
	return &passwordResetRepository{client: client}
}

func resetKey(token string) string {
	return "password_reset:" + token
}

func (r *passwordResetRepository) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, resetKey(token), userID, ttl).Err()
}

// Consume returns the user id behind the token and deletes it, so a token
// can be redeemed at most once.
func (r *passwordResetRepository) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, resetKey(token)).Result()
	if err == redis.Nil {
		return "", ErrResetTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
