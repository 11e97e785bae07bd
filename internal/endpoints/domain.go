package endpoints

import "time"

// Endpoint is a row of the api_endpoints registry.
type Endpoint struct {
	APIID        int64      `json:"api_id"`
	APIName      string     `json:"api_name"`
	Method       string     `json:"method"`
	EndpointPath string     `json:"endpoint_path"`
	Description  *string    `json:"description"`
	Remarks      *string    `json:"remarks"`
	Version      string     `json:"version"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// EndpointInput carries writable fields.
type EndpointInput struct {
	APIName      string  `json:"api_name" validate:"required"`
	Method       string  `json:"method" validate:"required"`
	EndpointPath string  `json:"endpoint_path" validate:"required"`
	Description  *string `json:"description"`
	Remarks      *string `json:"remarks"`
	Version      string  `json:"version"`
	IsActive     *bool   `json:"is_active"`
}
