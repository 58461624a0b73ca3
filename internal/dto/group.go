package dto

import (
	"time"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// --- Group DTOs ---

// CreateGroupRequest defines data for creating a new group.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Emoji       string `json:"emoji" binding:"omitempty,max=16"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateGroupRequest defines the data allowed for updating a group.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Emoji       *string `json:"emoji" binding:"omitempty,max=16"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// JoinGroupRequest submits an invite code to join a group.
type JoinGroupRequest struct {
	InviteCode string `json:"inviteCode" binding:"required,len=8,alphanum"`
}

// GroupResponse defines data returned for a group.
type GroupResponse struct {
	GroupID     string    `json:"groupID"`
	Name        string    `json:"name"`
	Emoji       string    `json:"emoji,omitempty"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"inviteCode"`
	AdminID     string    `json:"adminID"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"` // UserID
}

// ToGroupResponse converts domain.Group to DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		Name:        g.Name,
		Emoji:       g.Emoji,
		Description: g.Description,
		InviteCode:  g.InviteCode,
		AdminID:     g.AdminID,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		CreatedBy:   g.CreatedBy,
	}
}

// ListGroupsResponse wraps a list of groups.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToListGroupsResponse converts a slice of domain.Group to DTO.
func ToListGroupsResponse(gs []domain.Group) ListGroupsResponse {
	list := make([]GroupResponse, len(gs))
	for i, g := range gs {
		list[i] = ToGroupResponse(&g)
	}
	return ListGroupsResponse{Groups: list}
}

// --- Group Membership DTOs ---

// GroupMemberResponse defines data returned about a group membership.
type GroupMemberResponse struct {
	UserID   string           `json:"userID"`
	UserName string           `json:"userName"`
	GroupID  string           `json:"groupID"`
	Role     domain.GroupRole `json:"role"`
	JoinedAt time.Time        `json:"joinedAt"`
}

// ToGroupMemberResponse converts domain.GroupMember to DTO.
func ToGroupMemberResponse(m *domain.GroupMember) GroupMemberResponse {
	return GroupMemberResponse{
		UserID:   m.UserID,
		UserName: m.UserName,
		GroupID:  m.GroupID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// ListGroupMembersResponse wraps a group's member list.
type ListGroupMembersResponse struct {
	Members []GroupMemberResponse `json:"members"`
}

// ToListGroupMembersResponse converts a slice of domain.GroupMember to DTO.
func ToListGroupMembersResponse(ms []domain.GroupMember) ListGroupMembersResponse {
	list := make([]GroupMemberResponse, len(ms))
	for i, m := range ms {
		list[i] = ToGroupMemberResponse(&m)
	}
	return ListGroupMembersResponse{Members: list}
}
