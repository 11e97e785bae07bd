package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/platform/db"
	"github.com/coderslab/hr-console/internal/shared"
)

// Repository defines persistence operations for roles, menus and permissions.
type Repository interface {
	CurrentRoleID(ctx context.Context, userID int64) (int64, error)
	AllowedURLs(ctx context.Context, roleID int64) ([]string, error)
	NavMenus(ctx context.Context, roleID int64) ([]NavItem, error)

	PermissionsForRole(ctx context.Context, roleID int64) ([]RoleMenuRow, error)
	UpsertPermission(ctx context.Context, roleID int64, perm MenuPermission) error
	BulkUpsertPermissions(ctx context.Context, roleID int64, perms []MenuPermission) error

	ListMenus(ctx context.Context) ([]Menu, error)
	CreateMenu(ctx context.Context, m Menu) (Menu, error)
	UpdateMenu(ctx context.Context, m Menu) (Menu, error)
	DeleteMenu(ctx context.Context, menuID int64) error

	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, role Role) (Role, error)
	UpdateRole(ctx context.Context, role Role) (Role, error)
	DeleteRole(ctx context.Context, roleID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CurrentRoleID re-reads the user's role from the credential store so
// administrative permission edits apply on the next check.
func (r *PGRepository) CurrentRoleID(ctx context.Context, userID int64) (int64, error) {
	var roleID *int64
	err := r.pool.QueryRow(ctx, `SELECT role_id FROM app_users WHERE user_id = $1`, userID).Scan(&roleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	if roleID == nil {
		return 0, nil
	}
	return *roleID, nil
}

// AllowedURLs returns every menu URL the role may view.
func (r *PGRepository) AllowedURLs(ctx context.Context, roleID int64) ([]string, error) {
	const query = `
		SELECT m.url
		FROM menus m
		JOIN role_menu_permissions rmp ON m.menu_id = rmp.menu_id
		WHERE rmp.role_id = $1 AND rmp.can_view = true AND m.url IS NOT NULL`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// NavMenus returns the viewable, enabled menus for a role.
func (r *PGRepository) NavMenus(ctx context.Context, roleID int64) ([]NavItem, error) {
	const query = `
		SELECT m.menu_id, m.menu_name, m.url, m.parent_id, m.sort_order
		FROM menus m
		JOIN role_menu_permissions rmp ON m.menu_id = rmp.menu_id
		WHERE rmp.role_id = $1 AND rmp.can_view = true AND m.is_use = true
		ORDER BY COALESCE(m.parent_id, m.menu_id), m.sort_order`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NavItem
	for rows.Next() {
		var item NavItem
		if err := rows.Scan(&item.MenuID, &item.MenuName, &item.URL, &item.ParentID, &item.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// PermissionsForRole lists every menu with the role's capability flags,
// nil where no permission row exists.
func (r *PGRepository) PermissionsForRole(ctx context.Context, roleID int64) ([]RoleMenuRow, error) {
	const query = `
		SELECT m.menu_id, m.menu_name, m.parent_id, p.menu_name AS parent_name, m.sort_order,
		       rmp.can_view, rmp.can_create, rmp.can_update, rmp.can_delete, rmp.can_print
		FROM menus m
		LEFT JOIN menus p ON m.parent_id = p.menu_id
		LEFT JOIN role_menu_permissions rmp ON m.menu_id = rmp.menu_id AND rmp.role_id = $1
		ORDER BY COALESCE(m.parent_id, m.menu_id), m.sort_order`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []RoleMenuRow
	for rows.Next() {
		var row RoleMenuRow
		if err := rows.Scan(&row.MenuID, &row.MenuName, &row.ParentID, &row.ParentName, &row.SortOrder,
			&row.CanView, &row.CanCreate, &row.CanUpdate, &row.CanDelete, &row.CanPrint); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

const upsertPermissionSQL = `
	INSERT INTO role_menu_permissions (role_id, menu_id, can_view, can_create, can_update, can_delete, can_print)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (role_id, menu_id) DO UPDATE
	SET can_view = EXCLUDED.can_view, can_create = EXCLUDED.can_create,
	    can_update = EXCLUDED.can_update, can_delete = EXCLUDED.can_delete,
	    can_print = EXCLUDED.can_print`

// UpsertPermission writes a single capability row.
func (r *PGRepository) UpsertPermission(ctx context.Context, roleID int64, perm MenuPermission) error {
	_, err := r.pool.Exec(ctx, upsertPermissionSQL,
		roleID, perm.MenuID, perm.CanView, perm.CanCreate, perm.CanUpdate, perm.CanDelete, perm.CanPrint)
	return err
}

// BulkUpsertPermissions writes a batch of capability rows atomically.
func (r *PGRepository) BulkUpsertPermissions(ctx context.Context, roleID int64, perms []MenuPermission) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, perm := range perms {
			if _, err := tx.Exec(ctx, upsertPermissionSQL,
				roleID, perm.MenuID, perm.CanView, perm.CanCreate, perm.CanUpdate, perm.CanDelete, perm.CanPrint); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListMenus returns the flat menu list with parent names.
func (r *PGRepository) ListMenus(ctx context.Context) ([]Menu, error) {
	const query = `
		SELECT m.menu_id, m.menu_name, m.url, m.sort_order, m.is_use, m.parent_id,
		       p.menu_name AS parent_name, m.created_at
		FROM menus m
		LEFT JOIN menus p ON m.parent_id = p.menu_id
		ORDER BY COALESCE(m.parent_id, m.menu_id), m.sort_order`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var menus []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.MenuID, &m.MenuName, &m.URL, &m.SortOrder, &m.IsUse, &m.ParentID, &m.ParentName, &m.CreatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// CreateMenu inserts a menu node.
func (r *PGRepository) CreateMenu(ctx context.Context, m Menu) (Menu, error) {
	const query = `
		INSERT INTO menus (parent_id, menu_name, url, sort_order, is_use)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING menu_id, menu_name, url, sort_order, is_use, parent_id, created_at`
	var created Menu
	err := r.pool.QueryRow(ctx, query, m.ParentID, m.MenuName, m.URL, m.SortOrder, m.IsUse).Scan(
		&created.MenuID, &created.MenuName, &created.URL, &created.SortOrder, &created.IsUse, &created.ParentID, &created.CreatedAt)
	return created, err
}

// UpdateMenu rewrites a menu node.
func (r *PGRepository) UpdateMenu(ctx context.Context, m Menu) (Menu, error) {
	const query = `
		UPDATE menus
		SET parent_id = $1, menu_name = $2, url = $3, sort_order = $4, is_use = $5
		WHERE menu_id = $6
		RETURNING menu_id, menu_name, url, sort_order, is_use, parent_id, created_at`
	var updated Menu
	err := r.pool.QueryRow(ctx, query, m.ParentID, m.MenuName, m.URL, m.SortOrder, m.IsUse, m.MenuID).Scan(
		&updated.MenuID, &updated.MenuName, &updated.URL, &updated.SortOrder, &updated.IsUse, &updated.ParentID, &updated.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Menu{}, shared.ErrNotFound
	}
	return updated, err
}

// DeleteMenu removes a menu node.
func (r *PGRepository) DeleteMenu(ctx context.Context, menuID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE menu_id = $1`, menuID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListRoles returns all roles ordered by ID.
func (r *PGRepository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT role_id, role_code, role_name, description, created_at FROM roles ORDER BY role_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.RoleID, &role.RoleCode, &role.RoleName, &role.Description, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateRole inserts a role.
func (r *PGRepository) CreateRole(ctx context.Context, role Role) (Role, error) {
	const query = `
		INSERT INTO roles (role_code, role_name, description)
		VALUES ($1, $2, $3)
		RETURNING role_id, role_code, role_name, description, created_at`
	var created Role
	err := r.pool.QueryRow(ctx, query, role.RoleCode, role.RoleName, role.Description).Scan(
		&created.RoleID, &created.RoleCode, &created.RoleName, &created.Description, &created.CreatedAt)
	return created, err
}

// UpdateRole rewrites a role.
func (r *PGRepository) UpdateRole(ctx context.Context, role Role) (Role, error) {
	const query = `
		UPDATE roles SET role_code = $1, role_name = $2, description = $3
		WHERE role_id = $4
		RETURNING role_id, role_code, role_name, description, created_at`
	var updated Role
	err := r.pool.QueryRow(ctx, query, role.RoleCode, role.RoleName, role.Description, role.RoleID).Scan(
		&updated.RoleID, &updated.RoleCode, &updated.RoleName, &updated.Description, &updated.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, shared.ErrNotFound
	}
	return updated, err
}

// DeleteRole removes a role. Referential integrity for assigned users is
// left to the database's constraints.
func (r *PGRepository) DeleteRole(ctx context.Context, roleID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE role_id = $1`, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
