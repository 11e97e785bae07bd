package images

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/platform/db"
	"github.com/coderslab/hr-console/internal/shared"
)

// Repository defines persistence for stored images.
type Repository interface {
	List(ctx context.Context) ([]Image, error)
	Store(ctx context.Context, fileName, contentType string, data []byte) (Image, error)
	Fetch(ctx context.Context, imageID int64) (ImageData, error)
	Delete(ctx context.Context, imageID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) List(ctx context.Context) ([]Image, error) {
	const query = `
		SELECT image_id, file_name, content_type, file_size, created_at
		FROM image_storage
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ImageID, &img.FileName, &img.ContentType, &img.FileSize, &img.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

func (r *PGRepository) Store(ctx context.Context, fileName, contentType string, data []byte) (Image, error) {
	const query = `
		INSERT INTO image_storage (file_name, content_type, file_size, image_data)
		VALUES ($1, $2, $3, $4)
		RETURNING image_id, file_name, content_type, file_size, created_at`
	var img Image
	err := r.pool.QueryRow(ctx, query, fileName, contentType, len(data), data).Scan(
		&img.ImageID, &img.FileName, &img.ContentType, &img.FileSize, &img.CreatedAt)
	return img, err
}

func (r *PGRepository) Fetch(ctx context.Context, imageID int64) (ImageData, error) {
	var payload ImageData
	err := r.pool.QueryRow(ctx,
		`SELECT content_type, image_data FROM image_storage WHERE image_id = $1`,
		imageID).Scan(&payload.ContentType, &payload.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return ImageData{}, shared.ErrNotFound
	}
	return payload, err
}

// Delete removes an image after clearing department references, in one
// transaction so a failed delete leaves the references intact.
func (r *PGRepository) Delete(ctx context.Context, imageID int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE DEPT SET image_id = NULL WHERE image_id = $1`, imageID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM image_storage WHERE image_id = $1`, imageID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ Repository = (*PGRepository)(nil)
