package auth

import "time"

// User is a credential-store record joined to its role.
type User struct {
	UserID       int64
	Email        string
	Username     string
	PasswordHash string
	RoleID       *int64
	IsLocked     bool
	LastLoginAt  *time.Time
	RoleCode     string
	RoleName     string
}
