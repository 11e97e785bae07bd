package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// ErrDuplicateAccount indicates an email or username collision.
var ErrDuplicateAccount = shared.E(shared.KindConflict, "Email or Username already exists")

// Repository defines persistence for administrative accounts.
type Repository interface {
	List(ctx context.Context, page, limit int) ([]AppUser, int, error)
	Create(ctx context.Context, in CreateUserInput, passwordHash string) (AppUser, error)
	Update(ctx context.Context, userID int64, in UpdateUserInput, passwordHash *string) (AppUser, error)
	Delete(ctx context.Context, userID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) List(ctx context.Context, page, limit int) ([]AppUser, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	const query = `
		SELECT u.user_id, u.email, u.username, u.role_id, r.role_name, u.is_locked, u.last_login_at
		FROM app_users u
		LEFT JOIN roles r ON u.role_id = r.role_id
		ORDER BY u.user_id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []AppUser
	for rows.Next() {
		var u AppUser
		if err := rows.Scan(&u.UserID, &u.Email, &u.Username, &u.RoleID, &u.RoleName, &u.IsLocked, &u.LastLoginAt); err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, in CreateUserInput, passwordHash string) (AppUser, error) {
	var one int
	err := r.pool.QueryRow(ctx,
		`SELECT 1 FROM app_users WHERE email = $1 OR username = $2`,
		in.Email, in.Username).Scan(&one)
	if err == nil {
		return AppUser{}, ErrDuplicateAccount
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AppUser{}, err
	}

	const query = `
		INSERT INTO app_users (email, username, password_hash, role_id, is_locked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, email, username, role_id, is_locked, created_at`
	var u AppUser
	err = r.pool.QueryRow(ctx, query, in.Email, in.Username, passwordHash, in.RoleID, in.IsLocked).Scan(
		&u.UserID, &u.Email, &u.Username, &u.RoleID, &u.IsLocked, &u.CreatedAt)
	if shared.IsUniqueViolation(err) {
		return AppUser{}, ErrDuplicateAccount
	}
	return u, err
}

// Update applies only the provided fields.
func (r *PGRepository) Update(ctx context.Context, userID int64, in UpdateUserInput, passwordHash *string) (AppUser, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if in.Email != nil {
		add("email", *in.Email)
	}
	if in.RoleID != nil {
		add("role_id", *in.RoleID)
	}
	if in.IsLocked != nil {
		add("is_locked", *in.IsLocked)
	}
	if passwordHash != nil {
		add("password_hash", *passwordHash)
	}
	if len(sets) == 0 {
		return AppUser{}, nil
	}

	args = append(args, userID)
	query := fmt.Sprintf(
		`UPDATE app_users SET %s WHERE user_id = $%d
		 RETURNING user_id, email, username, role_id, is_locked, last_login_at, created_at`,
		strings.Join(sets, ", "), len(args))

	var u AppUser
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.UserID, &u.Email, &u.Username, &u.RoleID, &u.IsLocked, &u.LastLoginAt, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AppUser{}, shared.ErrNotFound
	}
	if shared.IsUniqueViolation(err) {
		return AppUser{}, ErrDuplicateAccount
	}
	return u, err
}

func (r *PGRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_users WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
