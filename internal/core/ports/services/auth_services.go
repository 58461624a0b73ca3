package services

import (
	"context"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// OTPSvcFacade defines the interface for phone one-time-code sign-in.
type OTPSvcFacade interface {
	// RequestOTP generates a code for the phone number and stores its hash with a TTL.
	// The plaintext code is returned for delivery by the SMS gateway.
	RequestOTP(ctx context.Context, phone string) (string, error)

	// VerifyOTP checks a submitted code, consuming it on success and returning
	// the signed-in user (created on first sign-in).
	VerifyOTP(ctx context.Context, phone string, code string) (*domain.User, error)
}

// GoogleAuthSvcFacade defines the interface for Google ID-token sign-in.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
