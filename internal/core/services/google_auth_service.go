package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/platform/config"
)

// googleAuthService implements the GoogleAuthSvcFacade for validating Google
// ID tokens obtained by mobile and web clients.
type googleAuthService struct {
	cfg *config.Config
}

// NewGoogleAuthService creates a new instance of googleAuthService.
func NewGoogleAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{cfg: cfg}
}

// Ensure googleAuthService implements the GoogleAuthSvcFacade interface
var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
// The token audience must match the configured client ID.
func (s *googleAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", err)
	}
	return payload, nil
}
