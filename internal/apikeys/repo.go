package apikeys

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// Repository defines persistence for issued API keys.
type Repository interface {
	// FindActive resolves a presented key value to its record, only when
	// the key is ACTIVE and not past its expiry.
	FindActive(ctx context.Context, apiKey string) (Key, error)

	List(ctx context.Context) ([]Key, error)
	Create(ctx context.Context, empNo int64, apiKey string, keyName *string, expiresAt *time.Time) (Key, error)
	Revoke(ctx context.Context, keyID int64) (Key, error)
	Delete(ctx context.Context, keyID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) FindActive(ctx context.Context, apiKey string) (Key, error) {
	const query = `
		SELECT key_id, empno, api_key, key_name, status, expires_at, created_at
		FROM api_keys
		WHERE api_key = $1
		  AND status = 'ACTIVE'
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)`
	var k Key
	err := r.pool.QueryRow(ctx, query, apiKey).Scan(
		&k.KeyID, &k.EmpNo, &k.APIKey, &k.KeyName, &k.Status, &k.ExpiresAt, &k.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Key{}, shared.ErrNotFound
	}
	return k, err
}

func (r *PGRepository) List(ctx context.Context) ([]Key, error) {
	const query = `
		SELECT k.key_id, k.empno, e.ename, k.api_key, k.key_name, k.status,
		       k.expires_at, k.created_at
		FROM api_keys k
		LEFT JOIN emp e ON k.empno = e.empno
		ORDER BY k.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []Key
	for rows.Next() {
		var k Key
		if err := rows.Scan(&k.KeyID, &k.EmpNo, &k.EName, &k.APIKey, &k.KeyName, &k.Status, &k.ExpiresAt, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, empNo int64, apiKey string, keyName *string, expiresAt *time.Time) (Key, error) {
	const query = `
		INSERT INTO api_keys (empno, api_key, key_name, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING key_id, empno, api_key, key_name, status, expires_at, created_at`
	var k Key
	err := r.pool.QueryRow(ctx, query, empNo, apiKey, keyName, expiresAt).Scan(
		&k.KeyID, &k.EmpNo, &k.APIKey, &k.KeyName, &k.Status, &k.ExpiresAt, &k.CreatedAt)
	return k, err
}

func (r *PGRepository) Revoke(ctx context.Context, keyID int64) (Key, error) {
	const query = `
		UPDATE api_keys
		SET status = 'REVOKED', updated_at = CURRENT_TIMESTAMP
		WHERE key_id = $1
		RETURNING key_id, empno, api_key, key_name, status, expires_at, created_at, updated_at`
	var k Key
	err := r.pool.QueryRow(ctx, query, keyID).Scan(
		&k.KeyID, &k.EmpNo, &k.APIKey, &k.KeyName, &k.Status, &k.ExpiresAt, &k.CreatedAt, &k.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Key{}, shared.ErrNotFound
	}
	return k, err
}

func (r *PGRepository) Delete(ctx context.Context, keyID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM api_keys WHERE key_id = $1`, keyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
