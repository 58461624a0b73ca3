package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByPhone retrieves a user by phone number
func (s *userService) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by phone")
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// FindOrCreateUserByPhone returns the user with the given phone, creating a
// bare un-onboarded user when none exists yet.
func (s *userService) FindOrCreateUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by phone")
		return nil, err
	}

	now := time.Now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:      userID,
		Phone:       phone,
		IsOnboarded: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent first sign-in; the row exists now.
			return s.userRepo.FindUserByPhone(ctx, phone)
		}
		s.LogError(ctx, err, "Failed to save new user",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User created on first sign-in",
		slog.String("user_id", userID))
	return &newUser, nil
}

// UpdateUser updates an existing user's profile
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		s.LogDebug(ctx, "User attempted to update another user's profile",
			slog.String("target_user_id", userID),
			slog.String("requesting_user_id", requestingUserID))
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
		// A named profile counts as completed onboarding.
		user.IsOnboarded = true
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.UpiID != nil {
		user.UpiID = *req.UpiID
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated successfully",
		slog.String("user_id", userID))
	return user, nil
}

// UpdateRefreshToken updates the refresh token details for a user
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	err := s.userRepo.UpdateRefreshTokenDetails(ctx, userID, &refreshTokenHash, &refreshTokenExpiryTime)
	if err != nil {
		s.LogError(ctx, err, "Failed to update refresh token details",
			slog.String("user_id", userID))
	}
	return err
}

// ClearRefreshToken clears the refresh token for a user
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	err := s.userRepo.UpdateRefreshTokenDetails(ctx, userID, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token",
			slog.String("user_id", userID))
	}
	return err
}

// DeleteUser marks a user as deleted (soft delete)
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.ErrForbidden
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to mark user deleted",
			slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deleted successfully",
		slog.String("user_id", userID))
	return nil
}
