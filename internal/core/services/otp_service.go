package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/platform/config"
	"github.com/splitmate/splitmate_backend/internal/utils"
)

const otpDigits = 6

// otpService implements phone one-time-code sign-in. Codes are bcrypt hashed
// before caching and consumed on successful verification.
type otpService struct {
	BaseService
	cfg         *config.Config
	otpStore    portsrepo.OTPStore
	userService portssvc.UserSvcFacade
}

// NewOTPService creates a new instance of otpService.
func NewOTPService(cfg *config.Config, otpStore portsrepo.OTPStore, userService portssvc.UserSvcFacade) portssvc.OTPSvcFacade {
	return &otpService{
		cfg:         cfg,
		otpStore:    otpStore,
		userService: userService,
	}
}

// Ensure otpService implements the OTPSvcFacade interface
var _ portssvc.OTPSvcFacade = (*otpService)(nil)

// RequestOTP generates a code for the phone number and stores its hash with a TTL.
// The plaintext code is returned for delivery by the SMS gateway.
func (s *otpService) RequestOTP(ctx context.Context, phone string) (string, error) {
	code, err := utils.GenerateOTPCode(otpDigits)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate OTP code")
		return "", err
	}

	codeHash, err := utils.HashOTPCode(code)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash OTP code")
		return "", err
	}

	if err := s.otpStore.SaveOTP(ctx, phone, codeHash, s.cfg.OTPExpiryDuration); err != nil {
		s.LogError(ctx, err, "Failed to store OTP code")
		return "", err
	}

	s.LogInfo(ctx, "OTP issued")
	return code, nil
}

// VerifyOTP checks a submitted code, consuming it on success and returning the
// signed-in user (created on first sign-in).
func (s *otpService) VerifyOTP(ctx context.Context, phone string, code string) (*domain.User, error) {
	codeHash, err := s.otpStore.GetOTP(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "no pending code for this phone number, or it has expired", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to read OTP code")
		return nil, err
	}

	if !utils.CheckOTPCodeHash(code, codeHash) {
		attempts, attErr := s.otpStore.IncrementAttempts(ctx, phone)
		if attErr != nil {
			s.LogError(ctx, attErr, "Failed to increment OTP attempt counter")
		} else if attempts >= int64(s.cfg.OTPMaxAttempts) {
			// Burn the code once the attempt budget is spent.
			if delErr := s.otpStore.DeleteOTP(ctx, phone); delErr != nil {
				s.LogError(ctx, delErr, "Failed to delete OTP after too many attempts")
			}
			s.LogInfo(ctx, "OTP invalidated after too many failed attempts",
				slog.Int64("attempts", attempts))
		}
		return nil, apperrors.NewAppError(401, "incorrect code", apperrors.ErrUnauthorized)
	}

	if err := s.otpStore.DeleteOTP(ctx, phone); err != nil {
		s.LogError(ctx, err, "Failed to delete consumed OTP")
	}

	user, err := s.userService.FindOrCreateUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "OTP verified, user signed in",
		slog.String("user_id", user.UserID))
	return user, nil
}
