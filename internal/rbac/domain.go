package rbac

import "time"

// Role groups users for menu authorization.
type Role struct {
	RoleID      int64      `json:"role_id"`
	RoleCode    string     `json:"role_code"`
	RoleName    string     `json:"role_name"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Menu is a navigable administrative resource node in a parent/child tree.
type Menu struct {
	MenuID     int64      `json:"menu_id"`
	MenuName   string     `json:"menu_name"`
	URL        *string    `json:"url"`
	ParentID   *int64     `json:"parent_id"`
	ParentName *string    `json:"parent_name,omitempty"`
	SortOrder  int        `json:"sort_order"`
	IsUse      bool       `json:"is_use"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Capabilities is the per-role capability set attached to a menu.
type Capabilities struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
	CanPrint  bool `json:"can_print"`
}

// MenuPermission is an upsert row for role_menu_permissions.
type MenuPermission struct {
	MenuID int64 `json:"menu_id"`
	Capabilities
}

// RoleMenuRow is a menu with the effective capability flags for one role.
// Flags are nil when no permission row exists for the pair.
type RoleMenuRow struct {
	MenuID     int64   `json:"menu_id"`
	MenuName   string  `json:"menu_name"`
	ParentID   *int64  `json:"parent_id"`
	ParentName *string `json:"parent_name"`
	SortOrder  int     `json:"sort_order"`
	CanView    *bool   `json:"can_view"`
	CanCreate  *bool   `json:"can_create"`
	CanUpdate  *bool   `json:"can_update"`
	CanDelete  *bool   `json:"can_delete"`
	CanPrint   *bool   `json:"can_print"`
}

// NavItem is a viewable menu entry for the signed-in user's sidebar.
type NavItem struct {
	MenuID    int64   `json:"menu_id"`
	MenuName  string  `json:"menu_name"`
	URL       *string `json:"url"`
	ParentID  *int64  `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
}
