package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetPasswordHash(ctx context.Context, userID int64) (string, error)
	RecordLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user with its joined role.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT u.user_id, u.email, u.username, u.password_hash, u.role_id, u.is_locked,
		       u.last_login_at, COALESCE(r.role_code, ''), COALESCE(r.role_name, '')
		FROM app_users u
		LEFT JOIN roles r ON u.role_id = r.role_id
		WHERE u.email = $1`
	var user User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.UserID, &user.Email, &user.Username, &user.PasswordHash,
		&user.RoleID, &user.IsLocked, &user.LastLoginAt, &user.RoleCode, &user.RoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetPasswordHash reads the stored hash for a user.
func (r *PGRepository) GetPasswordHash(ctx context.Context, userID int64) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx, `SELECT password_hash FROM app_users WHERE user_id = $1`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return hash, nil
}

// RecordLogin stamps last_login_at and clears the failed-attempt counter.
// Nothing increments failed_attempts; the column is legacy schema.
func (r *PGRepository) RecordLogin(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_users SET last_login_at = NOW(), failed_attempts = 0 WHERE user_id = $1`, userID)
	return err
}

// UpdatePassword overwrites the stored hash.
func (r *PGRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_users SET password_hash = $1 WHERE user_id = $2`, passwordHash, userID)
	return err
}

var _ Repository = (*PGRepository)(nil)
