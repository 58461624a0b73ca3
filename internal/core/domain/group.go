package domain

import "time"

// Group represents a circle of users who share expenses with each other.
type Group struct {
	GroupID     string `json:"groupID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`                 // Display emoji, defaults to a generic group icon
	Description string `json:"description,omitempty"` // Optional description
	InviteCode  string `json:"inviteCode"`            // Short shareable code used to join the group
	AdminID     string `json:"adminID"`               // FK -> users.user_id
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// GroupRole defines the possible roles a user can have within a group.
type GroupRole string

const (
	RoleAdmin  GroupRole = "ADMIN"
	RoleMember GroupRole = "MEMBER"
)

// GroupMember represents the membership of a User in a Group.
type GroupMember struct {
	UserID   string    `json:"userID"` // FK -> users.user_id
	UserName string    `json:"userName"`
	GroupID  string    `json:"groupID"` // FK -> groups.group_id
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
