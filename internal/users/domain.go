package users

import "time"

// AppUser is an administrative account row with the role name joined in.
// Password hashes never leave the repository layer.
type AppUser struct {
	UserID      int64      `json:"user_id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	RoleID      *int64     `json:"role_id"`
	RoleName    *string    `json:"role_name,omitempty"`
	IsLocked    bool       `json:"is_locked"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CreateUserInput carries the fields for account creation.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	RoleID   *int64 `json:"role_id"`
	IsLocked bool   `json:"is_locked"`
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string `json:"email"`
	RoleID   *int64  `json:"role_id"`
	IsLocked *bool   `json:"is_locked"`
	Password *string `json:"password"`
}

// Empty reports whether the update changes anything.
func (in UpdateUserInput) Empty() bool {
	return in.Email == nil && in.RoleID == nil && in.IsLocked == nil && in.Password == nil
}
