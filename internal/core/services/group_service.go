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
	"github.com/splitmate/splitmate_backend/internal/utils"
)

const inviteCodeLength = 8

// groupService implements the GroupSvcFacade interface
type groupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
}

// NewGroupService creates a new group service with the provided dependencies
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{
		groupRepo: groupRepo,
	}
}

// Ensure groupService implements the GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// GetGroupByID retrieves a group; the requesting user must be a member
func (s *groupService) GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by ID",
				slog.String("group_id", groupID))
		}
		return nil, err
	}
	return group, nil
}

// ListUserGroups retrieves all active groups the user belongs to
func (s *groupService) ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

// ListGroupMembers retrieves all members of a group
func (s *groupService) ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	members, err := s.groupRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group members",
			slog.String("group_id", groupID))
		return nil, err
	}
	if members == nil {
		return []domain.GroupMember{}, nil
	}
	return members, nil
}

// CreateGroup persists a new group with the creator as its admin
func (s *groupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	inviteCode, err := utils.GenerateInviteCode(inviteCodeLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invite code")
		return nil, err
	}

	now := time.Now()
	group := domain.Group{
		GroupID:     uuid.NewString(),
		Name:        req.Name,
		Emoji:       req.Emoji,
		Description: req.Description,
		InviteCode:  inviteCode,
		AdminID:     creatorUserID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	adminMembership := domain.GroupMember{
		UserID:   creatorUserID,
		GroupID:  group.GroupID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}

	if err := s.groupRepo.SaveGroup(ctx, group, adminMembership); err != nil {
		s.LogError(ctx, err, "Failed to save group",
			slog.String("group_id", group.GroupID))
		return nil, err
	}

	s.LogInfo(ctx, "Group created successfully",
		slog.String("group_id", group.GroupID),
		slog.String("creator_id", creatorUserID))
	return &group, nil
}

// UpdateGroup updates a group's details. Only the group admin may do this
func (s *groupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Emoji != nil {
		group.Emoji = *req.Emoji
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update group",
			slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Group updated successfully",
		slog.String("group_id", groupID))
	return group, nil
}

// RegenerateInviteCode replaces a group's invite code. Only the group admin may do this
func (s *groupService) RegenerateInviteCode(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode(inviteCodeLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate invite code")
		return nil, err
	}

	group.InviteCode = inviteCode
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update group invite code",
			slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Group invite code regenerated",
		slog.String("group_id", groupID))
	return group, nil
}

// DeactivateGroup marks a group as inactive. Only the group admin may do this
func (s *groupService) DeactivateGroup(ctx context.Context, groupID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
		return err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return err
	}

	group.IsActive = false
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to deactivate group",
			slog.String("group_id", groupID))
		return err
	}

	s.LogInfo(ctx, "Group deactivated",
		slog.String("group_id", groupID))
	return nil
}

// JoinGroupByInviteCode adds the user to the group matching the invite code
func (s *groupService) JoinGroupByInviteCode(ctx context.Context, inviteCode string, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByInviteCode(ctx, inviteCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by invite code")
		}
		return nil, err
	}

	// Joining twice is a no-op rather than an error.
	existing, err := s.groupRepo.FindUserGroupRole(ctx, userID, group.GroupID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing membership",
			slog.String("group_id", group.GroupID))
		return nil, err
	}
	if existing != nil {
		return group, nil
	}

	membership := domain.GroupMember{
		UserID:   userID,
		GroupID:  group.GroupID,
		Role:     domain.RoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.AddUserToGroup(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return group, nil
		}
		s.LogError(ctx, err, "Failed to add user to group",
			slog.String("group_id", group.GroupID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User joined group",
		slog.String("group_id", group.GroupID),
		slog.String("user_id", userID))
	return group, nil
}

// RemoveUserFromGroup removes a member from a group.
// Admins can remove any member; members can only remove themselves.
func (s *groupService) RemoveUserFromGroup(ctx context.Context, requestingUserID, targetUserID, groupID string) error {
	if requestingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
			s.LogDebug(ctx, "User not authorized to remove members from group",
				slog.String("requesting_user_id", requestingUserID),
				slog.String("group_id", groupID))
			return err
		}
	} else {
		if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
			return err
		}
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	// The admin cannot leave their own group; it would be orphaned.
	if targetUserID == group.AdminID {
		return apperrors.NewConflictError("group admin cannot be removed from the group")
	}

	if err := s.groupRepo.RemoveUserFromGroup(ctx, groupID, targetUserID); err != nil {
		s.LogError(ctx, err, "Failed to remove user from group",
			slog.String("group_id", groupID),
			slog.String("target_user_id", targetUserID))
		return err
	}

	s.LogInfo(ctx, "User removed from group",
		slog.String("group_id", groupID),
		slog.String("target_user_id", targetUserID))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a group
func (s *groupService) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error {
	membership, err := s.groupRepo.FindUserGroupRole(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of group",
				slog.String("user_id", userID),
				slog.String("group_id", groupID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user group role",
			slog.String("user_id", userID),
			slog.String("group_id", groupID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("group_id", groupID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.GroupRole) bool {
	switch requiredRole {
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
