// Package redisotp stores pending one-time login codes in Redis.
// Codes live under otp:<phone> with a TTL; verification attempts are
// counted in a sibling key so a code can be burned after too many tries.
package redisotp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
)

type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) portsrepo.OTPStore {
	return &RedisOTPStore{client: client}
}

var _ portsrepo.OTPStore = (*RedisOTPStore)(nil)

func codeKey(phone string) string {
	return "otp:" + phone
}

func attemptsKey(phone string) string {
	return "otp:" + phone + ":attempts"
}

// SaveOTP stores the hashed code under the phone's key, replacing any pending
// code and resetting the attempt counter.
func (s *RedisOTPStore) SaveOTP(ctx context.Context, phone string, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(phone), codeHash, ttl).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to store code for verification", err)
	}
	if err := s.client.Del(ctx, attemptsKey(phone)).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to reset verification attempts", err)
	}
	return nil
}

// GetOTP returns the stored code hash, or apperrors.ErrNotFound when no code
// is pending for the phone (never issued, expired, or already consumed).
func (s *RedisOTPStore) GetOTP(ctx context.Context, phone string) (string, error) {
	codeHash, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to load pending code", err)
	}
	return codeHash, nil
}

// IncrementAttempts bumps the failed-verification counter and returns the new
// count. The counter expires alongside the code.
func (s *RedisOTPStore) IncrementAttempts(ctx context.Context, phone string) (int64, error) {
	attempts, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count verification attempt", err)
	}
	// Align the counter's lifetime with the code's remaining TTL so a stale
	// counter cannot outlive its code.
	ttl, err := s.client.TTL(ctx, codeKey(phone)).Result()
	if err == nil && ttl > 0 {
		s.client.Expire(ctx, attemptsKey(phone), ttl)
	}
	return attempts, nil
}

// DeleteOTP removes the pending code and its attempt counter.
func (s *RedisOTPStore) DeleteOTP(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, codeKey(phone), attemptsKey(phone)).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to delete pending code", err)
	}
	return nil
}
