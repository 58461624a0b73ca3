package domain

import "time"

// User represents a user of the application in the domain.
// Users are identified by phone number; name/avatar/UPI details are filled in
// during onboarding after the first OTP sign-in.
type User struct {
	UserID      string `json:"userID"` // Primary Key (e.g., UUID)
	Phone       string `json:"phone"`  // E.164 phone number, unique
	Name        string `json:"name"`
	AvatarURL   string `json:"avatarURL,omitempty"`
	UpiID       string `json:"upiID,omitempty"`
	IsOnboarded bool   `json:"isOnboarded"`
	// Refresh token state for session continuation. Only the SHA-256 hash is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the subset of the Google userinfo payload used for sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
