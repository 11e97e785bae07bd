package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository computes dashboard aggregates.
type Repository interface {
	TotalEmployees(ctx context.Context) (CountStat, error)
	TotalDepartments(ctx context.Context) (CountStat, error)
	AverageSalary(ctx context.Context) (AvgSalStat, error)
	EmployeesPerDept(ctx context.Context) ([]DeptCount, error)
	EmployeesPerJob(ctx context.Context) ([]JobCount, error)
	SalaryPerDept(ctx context.Context) ([]DeptTotal, error)
	SalaryPerJob(ctx context.Context) ([]JobTotal, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) TotalEmployees(ctx context.Context) (CountStat, error) {
	var s CountStat
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM EMP`).Scan(&s.Count)
	return s, err
}

func (r *PGRepository) TotalDepartments(ctx context.Context) (CountStat, error) {
	var s CountStat
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM DEPT`).Scan(&s.Count)
	return s, err
}

func (r *PGRepository) AverageSalary(ctx context.Context) (AvgSalStat, error) {
	var s AvgSalStat
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(ROUND(AVG(SAL), 0), 0) FROM EMP`).Scan(&s.AvgSal)
	return s, err
}

func (r *PGRepository) EmployeesPerDept(ctx context.Context) ([]DeptCount, error) {
	const query = `
		SELECT D.DNAME, COUNT(E.EMPNO)
		FROM DEPT D
		LEFT JOIN EMP E ON D.DEPTNO = E.DEPTNO
		GROUP BY D.DNAME`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []DeptCount
	for rows.Next() {
		var s DeptCount
		if err := rows.Scan(&s.DName, &s.Count); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PGRepository) EmployeesPerJob(ctx context.Context) ([]JobCount, error) {
	const query = `
		SELECT JOB, COUNT(EMPNO)
		FROM EMP
		WHERE JOB IS NOT NULL
		GROUP BY JOB`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []JobCount
	for rows.Next() {
		var s JobCount
		if err := rows.Scan(&s.Job, &s.Count); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PGRepository) SalaryPerDept(ctx context.Context) ([]DeptTotal, error) {
	const query = `
		SELECT D.DNAME, SUM(COALESCE(E.SAL, 0))
		FROM DEPT D
		LEFT JOIN EMP E ON D.DEPTNO = E.DEPTNO
		GROUP BY D.DNAME`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []DeptTotal
	for rows.Next() {
		var s DeptTotal
		if err := rows.Scan(&s.DName, &s.Total); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PGRepository) SalaryPerJob(ctx context.Context) ([]JobTotal, error) {
	const query = `
		SELECT JOB, SUM(SAL)
		FROM EMP
		WHERE JOB IS NOT NULL
		GROUP BY JOB`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []JobTotal
	for rows.Next() {
		var s JobTotal
		if err := rows.Scan(&s.Job, &s.Total); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
