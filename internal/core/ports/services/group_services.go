package services

import (
	"context"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
	"github.com/splitmate/splitmate_backend/internal/dto"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group; the requesting user must be a member.
	GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// ListUserGroups retrieves all active groups the user belongs to.
	ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error)

	// ListGroupMembers retrieves all members of a group.
	// Only members of the group can access this data.
	ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup persists a new group with the creator as its admin.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// UpdateGroup updates a group's details. Only the group admin may do this.
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error)

	// RegenerateInviteCode replaces a group's invite code. Only the group admin may do this.
	RegenerateInviteCode(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// DeactivateGroup marks a group as inactive. Only the group admin may do this.
	DeactivateGroup(ctx context.Context, groupID string, requestingUserID string) error
}

// GroupMembershipSvc defines operations for managing group membership
type GroupMembershipSvc interface {
	// JoinGroupByInviteCode adds the user to the group matching the invite code.
	JoinGroupByInviteCode(ctx context.Context, inviteCode string, userID string) (*domain.Group, error)

	// RemoveUserFromGroup removes a member from a group.
	// Admins can remove any member; members can only remove themselves.
	RemoveUserFromGroup(ctx context.Context, requestingUserID, targetUserID, groupID string) error
}

// GroupAuthorizerSvc defines operations for group authorization
type GroupAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a group.
	AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error
}

// GroupSvcFacade combines all group-related service interfaces
// This is a facade for clients that need access to all operations
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
	GroupMembershipSvc
	GroupAuthorizerSvc
}
