package tasks

import "time"

// Task statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task is a tracked to-do item, optionally assigned to an employee.
type Task struct {
	TaskID       int64      `json:"task_id"`
	Todo         string     `json:"todo"`
	Status       string     `json:"status"`
	EmpNo        *int64     `json:"empno"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// TaskInput carries writable fields.
type TaskInput struct {
	Todo   string `json:"todo" validate:"required"`
	Status string `json:"status"`
	EmpNo  *int64 `json:"empno"`
}
