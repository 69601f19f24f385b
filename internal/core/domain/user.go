package domain

import "time"

// User represents a user of the application in the domain.
// IsStaff marks administrative identities allowed to mutate the catalog and
// manage other users' borrowings.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	IsStaff      bool   `json:"isStaff"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token fields; the raw token is never stored, only its hash.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
