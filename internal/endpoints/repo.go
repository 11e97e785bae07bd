package endpoints

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// ErrDuplicatePath indicates an endpoint_path collision.
var ErrDuplicatePath = shared.E(shared.KindConflict, "Endpoint path already exists")

// Repository defines persistence for the API endpoint registry.
type Repository interface {
	ListAll(ctx context.Context) ([]Endpoint, error)
	ListPage(ctx context.Context, page, limit int) ([]Endpoint, int, error)
	Create(ctx context.Context, in EndpointInput) (Endpoint, error)
	Update(ctx context.Context, apiID int64, in EndpointInput) (Endpoint, error)
	Delete(ctx context.Context, apiID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectEndpoint = `
	SELECT api_id, api_name, method, endpoint_path, description, remarks,
	       version, is_active, created_at, updated_at
	FROM api_endpoints`

func scanEndpoints(rows pgx.Rows) ([]Endpoint, error) {
	defer rows.Close()
	var list []Endpoint
	for rows.Next() {
		var e Endpoint
		if err := rows.Scan(&e.APIID, &e.APIName, &e.Method, &e.EndpointPath, &e.Description,
			&e.Remarks, &e.Version, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGRepository) ListAll(ctx context.Context) ([]Endpoint, error) {
	rows, err := r.pool.Query(ctx, selectEndpoint+" ORDER BY endpoint_path")
	if err != nil {
		return nil, err
	}
	return scanEndpoints(rows)
}

func (r *PGRepository) ListPage(ctx context.Context, page, limit int) ([]Endpoint, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM api_endpoints`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, selectEndpoint+" ORDER BY endpoint_path LIMIT $1 OFFSET $2",
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanEndpoints(rows)
	return list, total, err
}

func (r *PGRepository) Create(ctx context.Context, in EndpointInput) (Endpoint, error) {
	version := in.Version
	if version == "" {
		version = "1.0.0"
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	const query = `
		INSERT INTO api_endpoints (api_name, method, endpoint_path, description, remarks, version, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING api_id, api_name, method, endpoint_path, description, remarks, version, is_active, created_at, updated_at`
	var e Endpoint
	err := r.pool.QueryRow(ctx, query,
		in.APIName, in.Method, in.EndpointPath, in.Description, in.Remarks, version, isActive).Scan(
		&e.APIID, &e.APIName, &e.Method, &e.EndpointPath, &e.Description,
		&e.Remarks, &e.Version, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if shared.IsUniqueViolation(err) {
		return Endpoint{}, ErrDuplicatePath
	}
	return e, err
}

func (r *PGRepository) Update(ctx context.Context, apiID int64, in EndpointInput) (Endpoint, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	const query = `
		UPDATE api_endpoints
		SET api_name = $1, method = $2, endpoint_path = $3, description = $4,
		    remarks = $5, version = $6, is_active = $7, updated_at = CURRENT_TIMESTAMP
		WHERE api_id = $8
		RETURNING api_id, api_name, method, endpoint_path, description, remarks, version, is_active, created_at, updated_at`
	var e Endpoint
	err := r.pool.QueryRow(ctx, query,
		in.APIName, in.Method, in.EndpointPath, in.Description, in.Remarks, in.Version, isActive, apiID).Scan(
		&e.APIID, &e.APIName, &e.Method, &e.EndpointPath, &e.Description,
		&e.Remarks, &e.Version, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Endpoint{}, shared.ErrNotFound
	}
	if shared.IsUniqueViolation(err) {
		return Endpoint{}, ErrDuplicatePath
	}
	return e, err
}

func (r *PGRepository) Delete(ctx context.Context, apiID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM api_endpoints WHERE api_id = $1`, apiID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
