package models

import "time"

// GroupRole defines the role of a user within a group.
type GroupRole string

const (
	RoleAdmin  GroupRole = "ADMIN"
	RoleMember GroupRole = "MEMBER"
)

// Group represents a shared-expense group.
type Group struct {
	GroupID     string `json:"groupID" db:"group_id"`
	Name        string `json:"name" db:"name"`
	Emoji       string `json:"emoji" db:"emoji"`
	Description string `json:"description" db:"description"`
	InviteCode  string `json:"inviteCode" db:"invite_code"`
	AdminID     string `json:"adminID" db:"admin_id"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// GroupMember links a user to a group with a role.
type GroupMember struct {
	UserID   string    `json:"userID" db:"user_id"`
	UserName string    `json:"userName" db:"user_name"` // Joined from users for reads
	GroupID  string    `json:"groupID" db:"group_id"`
	Role     GroupRole `json:"role" db:"role"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}
