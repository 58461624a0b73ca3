package models

import (
	"database/sql"
	"time"
)

// User represents a user of the application.
// Sign-in is by phone OTP, so phone is the unique handle; there is no password.
type User struct {
	UserID      string `json:"userID" db:"user_id"`
	Phone       string `json:"phone" db:"phone"`
	Name        string `json:"name" db:"name"`
	AvatarURL   string `json:"avatarURL" db:"avatar_url"`
	UpiID       string `json:"upiID" db:"upi_id"`
	IsOnboarded bool   `json:"isOnboarded" db:"is_onboarded"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
