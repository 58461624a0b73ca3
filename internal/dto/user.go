package dto

import (
	"time"

	"github.com/splitmate/splitmate_backend/internal/core/domain"
)

// UpdateUserRequest defines the data allowed for updating a user's profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatarURL" binding:"omitempty,url"`
	UpiID     *string `json:"upiID"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Phone       string    `json:"phone"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatarURL,omitempty"`
	UpiID       string    `json:"upiID,omitempty"`
	IsOnboarded bool      `json:"isOnboarded"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Phone:       u.Phone,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		UpiID:       u.UpiID,
		IsOnboarded: u.IsOnboarded,
		CreatedAt:   u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
