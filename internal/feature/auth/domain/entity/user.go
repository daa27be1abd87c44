// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role identifies the authorization level of a user.
// The set is closed: anything outside user/admin is rejected at the boundary.
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "user"

	// RoleAdmin grants access to administrative endpoints.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered marketplace account.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown to other users.
	Name string `gorm:"size:100;not null"`

	// Email is the user's email address used for authentication.
	// It is normalized to lower case and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username is the unique handle usable as an alternative login identifier.
	// Unlike Email it is matched case-sensitively.
	Username string `gorm:"uniqueIndex;size:30;not null"`

	// Password is the bcrypt hash for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Role is the authorization level of the account.
	Role Role `gorm:"size:16;not null;default:user"`

	// IsVerified reports whether the account's email has been verified.
	IsVerified bool `gorm:"not null;default:false"`

	// PasswordChangedAt records the last password change. Tokens issued
	// before this instant are rejected by the auth middleware.
	PasswordChangedAt *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
