package apikeys

import "time"

// Key statuses. Revocation is one-way.
const (
	StatusActive  = "ACTIVE"
	StatusRevoked = "REVOKED"
)

// Key is an issued API credential bound to an employee.
type Key struct {
	KeyID     int64      `json:"key_id"`
	EmpNo     int64      `json:"empno"`
	EName     *string    `json:"ename,omitempty"`
	APIKey    string     `json:"api_key"`
	KeyName   *string    `json:"key_name"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
