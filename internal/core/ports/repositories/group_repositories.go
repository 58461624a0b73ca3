package repositories

import (
	"context"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a specific group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// FindGroupByInviteCode retrieves an active group by its invite code.
	FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error)

	// ListGroupsByUserID retrieves all active groups a user belongs to.
	ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a new group and its creator's admin membership atomically.
	SaveGroup(ctx context.Context, group domain.Group, adminMembership domain.GroupMember) error

	// UpdateGroup updates an existing group's details.
	UpdateGroup(ctx context.Context, group domain.Group) error
}

// GroupMembershipManager defines operations for managing group memberships
type GroupMembershipManager interface {
	// AddUserToGroup adds a user to a group with a specific role.
	AddUserToGroup(ctx context.Context, membership domain.GroupMember) error

	// RemoveUserFromGroup removes a user's membership from a group.
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) error

	// FindUserGroupRole retrieves the membership of a user in a group.
	FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.GroupMember, error)

	// ListGroupMembers retrieves all members of a group with their user names.
	ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces
// This is a facade for clients that need access to all operations
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
	GroupMembershipManager
}

// GroupRepositoryWithTx extends GroupRepositoryFacade with transaction capabilities
type GroupRepositoryWithTx interface {
	GroupRepositoryFacade
	TransactionManager
}
