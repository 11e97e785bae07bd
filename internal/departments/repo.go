package departments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// ErrDuplicateName indicates a case-insensitive dname collision.
var ErrDuplicateName = shared.E(shared.KindConflict, "Duplicate DNAME")

// Repository defines persistence for departments.
type Repository interface {
	ListAll(ctx context.Context) ([]Department, error)
	ListPage(ctx context.Context, page, limit int) ([]Department, int, error)
	Create(ctx context.Context, in DepartmentInput) (Department, error)
	Update(ctx context.Context, deptNo int64, in DepartmentInput) (Department, error)
	Delete(ctx context.Context, deptNo int64) (Department, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) ListAll(ctx context.Context) ([]Department, error) {
	rows, err := r.pool.Query(ctx, `SELECT DEPTNO, DNAME, LOC FROM DEPT ORDER BY DEPTNO`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.DeptNo, &d.DName, &d.Loc); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *PGRepository) ListPage(ctx context.Context, page, limit int) ([]Department, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM DEPT`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT DEPTNO, DNAME, LOC FROM DEPT ORDER BY DEPTNO LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.DeptNo, &d.DName, &d.Loc); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func (r *PGRepository) nameTaken(ctx context.Context, dname string, excludeDeptNo *int64) (bool, error) {
	query := `SELECT 1 FROM DEPT WHERE UPPER(DNAME) = UPPER($1)`
	args := []any{dname}
	if excludeDeptNo != nil {
		query += ` AND DEPTNO != $2`
		args = append(args, *excludeDeptNo)
	}
	var one int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a department with a generated number (MAX+10, SCOTT style).
func (r *PGRepository) Create(ctx context.Context, in DepartmentInput) (Department, error) {
	taken, err := r.nameTaken(ctx, in.DName, nil)
	if err != nil {
		return Department{}, err
	}
	if taken {
		return Department{}, ErrDuplicateName
	}

	var newDeptNo int64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(DEPTNO), 0) + 10 FROM DEPT`).Scan(&newDeptNo); err != nil {
		return Department{}, err
	}

	var d Department
	err = r.pool.QueryRow(ctx,
		`INSERT INTO DEPT (DEPTNO, DNAME, LOC) VALUES ($1, $2, $3) RETURNING DEPTNO, DNAME, LOC`,
		newDeptNo, in.DName, in.Loc).Scan(&d.DeptNo, &d.DName, &d.Loc)
	if shared.IsUniqueViolation(err) {
		return Department{}, ErrDuplicateName
	}
	return d, err
}

func (r *PGRepository) Update(ctx context.Context, deptNo int64, in DepartmentInput) (Department, error) {
	taken, err := r.nameTaken(ctx, in.DName, &deptNo)
	if err != nil {
		return Department{}, err
	}
	if taken {
		return Department{}, ErrDuplicateName
	}

	var d Department
	err = r.pool.QueryRow(ctx,
		`UPDATE DEPT SET DNAME = $1, LOC = $2 WHERE DEPTNO = $3 RETURNING DEPTNO, DNAME, LOC`,
		in.DName, in.Loc, deptNo).Scan(&d.DeptNo, &d.DName, &d.Loc)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, shared.ErrNotFound
	}
	if shared.IsUniqueViolation(err) {
		return Department{}, ErrDuplicateName
	}
	return d, err
}

func (r *PGRepository) Delete(ctx context.Context, deptNo int64) (Department, error) {
	var d Department
	err := r.pool.QueryRow(ctx,
		`DELETE FROM DEPT WHERE DEPTNO = $1 RETURNING DEPTNO, DNAME, LOC`,
		deptNo).Scan(&d.DeptNo, &d.DName, &d.Loc)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, shared.ErrNotFound
	}
	return d, err
}

var _ Repository = (*PGRepository)(nil)
