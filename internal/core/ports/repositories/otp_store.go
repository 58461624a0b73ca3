package repositories

import (
	"context"
	"time"
)

// OTPStore defines operations for short-lived one-time code storage.
// Codes are stored hashed and expire on their own via the backing store's TTL.
type OTPStore interface {
	// SaveOTP stores the hashed code for a phone number with the given TTL,
	// replacing any previous code and resetting the attempt counter.
	SaveOTP(ctx context.Context, phone string, codeHash string, ttl time.Duration) error

	// GetOTP retrieves the stored hash for a phone number.
	// Returns apperrors.ErrNotFound when no code is pending or it has expired.
	GetOTP(ctx context.Context, phone string) (string, error)

	// IncrementAttempts bumps and returns the failed-verification counter for a phone number.
	IncrementAttempts(ctx context.Context, phone string) (int64, error)

	// DeleteOTP removes the pending code and attempt counter for a phone number.
	DeleteOTP(ctx context.Context, phone string) error
}
