package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/platform/db"
	"github.com/coderslab/hr-console/internal/shared"
)

// sortColumns whitelists user supplied sort fields.
var sortColumns = map[string]string{
	"empno":    "E.EMPNO",
	"ename":    "E.ENAME",
	"job":      "E.JOB",
	"hiredate": "E.HIREDATE",
	"sal":      "E.SAL",
	"deptno":   "E.DEPTNO",
}

// ListParams controls pagination and ordering of the employee list.
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	SortDesc  bool
}

// Repository defines persistence for employee records and the org tree.
type Repository interface {
	List(ctx context.Context, p ListParams) ([]Employee, int, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, in EmployeeInput) (Employee, error)
	Update(ctx context.Context, empNo int64, in EmployeeInput) (Employee, error)
	Delete(ctx context.Context, empNo int64) (Employee, error)

	Tree(ctx context.Context) ([]TreeNode, error)
	Move(ctx context.Context, empNos []int64, targetMgr *int64) error
	SalaryStats(ctx context.Context, empNo int64) (SalaryStats, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectEmployee = `
	SELECT E.EMPNO, E.ENAME, E.JOB, E.MGR, M.ENAME AS M_NAME,
	       TO_CHAR(E.HIREDATE, 'YYYY-MM-DD') AS HIREDATE_STR,
	       E.SAL, E.COMM, E.DEPTNO, D.DNAME
	FROM EMP E
	LEFT JOIN DEPT D ON E.DEPTNO = D.DEPTNO
	LEFT JOIN EMP M ON E.MGR = M.EMPNO`

func scanEmployees(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	var list []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmpNo, &e.EName, &e.Job, &e.Mgr, &e.MgrName,
			&e.HireDateStr, &e.Sal, &e.Comm, &e.DeptNo, &e.DName); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// List returns a page of employees plus the total row count. Unknown sort
// fields fall back to EMPNO.
func (r *PGRepository) List(ctx context.Context, p ListParams) ([]Employee, int, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	orderBy, ok := sortColumns[p.SortField]
	if !ok {
		orderBy = "E.EMPNO"
	}
	direction := "ASC"
	if p.SortDesc {
		direction = "DESC"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM EMP`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s ORDER BY %s %s LIMIT $1 OFFSET $2", selectEmployee, orderBy, direction)
	rows, err := r.pool.Query(ctx, query, p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanEmployees(rows)
	return list, total, err
}

// ListAll returns every employee ordered by number.
func (r *PGRepository) ListAll(ctx context.Context) ([]Employee, error) {
	rows, err := r.pool.Query(ctx, selectEmployee+" ORDER BY E.EMPNO")
	if err != nil {
		return nil, err
	}
	return scanEmployees(rows)
}

// Create inserts an employee with a generated number (MAX+1, floor 7901).
func (r *PGRepository) Create(ctx context.Context, in EmployeeInput) (Employee, error) {
	var newEmpNo int64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(EMPNO), 7900) + 1 FROM EMP`).Scan(&newEmpNo); err != nil {
		return Employee{}, err
	}
	const query = `
		INSERT INTO EMP (EMPNO, ENAME, JOB, MGR, HIREDATE, SAL, COMM, DEPTNO)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.pool.Exec(ctx, query,
		newEmpNo, in.EName, in.Job, in.Mgr, in.HireDate, in.Sal, in.Comm, in.DeptNo); err != nil {
		return Employee{}, err
	}
	return r.get(ctx, newEmpNo)
}

// Update rewrites an employee's mutable fields.
func (r *PGRepository) Update(ctx context.Context, empNo int64, in EmployeeInput) (Employee, error) {
	const query = `
		UPDATE EMP
		SET ENAME = $1, JOB = $2, MGR = $3, HIREDATE = $4, SAL = $5, COMM = $6, DEPTNO = $7
		WHERE EMPNO = $8`
	tag, err := r.pool.Exec(ctx, query,
		in.EName, in.Job, in.Mgr, in.HireDate, in.Sal, in.Comm, in.DeptNo, empNo)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, shared.ErrNotFound
	}
	return r.get(ctx, empNo)
}

// Delete removes an employee, returning the deleted record.
func (r *PGRepository) Delete(ctx context.Context, empNo int64) (Employee, error) {
	deleted, err := r.get(ctx, empNo)
	if err != nil {
		return Employee{}, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM EMP WHERE EMPNO = $1`, empNo); err != nil {
		return Employee{}, err
	}
	return deleted, nil
}

func (r *PGRepository) get(ctx context.Context, empNo int64) (Employee, error) {
	var e Employee
	err := r.pool.QueryRow(ctx, selectEmployee+" WHERE E.EMPNO = $1", empNo).Scan(
		&e.EmpNo, &e.EName, &e.Job, &e.Mgr, &e.MgrName,
		&e.HireDateStr, &e.Sal, &e.Comm, &e.DeptNo, &e.DName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, shared.ErrNotFound
	}
	return e, err
}

// Tree flattens the reporting hierarchy depth-first, siblings ordered by
// name via an array path accumulated in the recursive CTE.
func (r *PGRepository) Tree(ctx context.Context) ([]TreeNode, error) {
	const query = `
		WITH RECURSIVE org AS (
			SELECT empno, ename, job, mgr,
			       1::int AS level,
			       ARRAY[ename::text] AS path_sort
			FROM emp
			WHERE mgr IS NULL
			UNION ALL
			SELECT e.empno, e.ename, e.job, e.mgr,
			       o.level + 1,
			       o.path_sort || e.ename::text
			FROM emp e
			JOIN org o ON e.mgr = o.empno
		)
		SELECT o.empno, o.ename, o.level, o.mgr,
		       (SELECT COUNT(*) = 0 FROM emp e WHERE e.mgr = o.empno) AS is_leaf
		FROM org o
		ORDER BY path_sort`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var nodes []TreeNode
	for rows.Next() {
		var (
			node   TreeNode
			isLeaf bool
		)
		if err := rows.Scan(&node.Value, &node.Title, &node.Level, &node.Mgr, &isLeaf); err != nil {
			return nil, err
		}
		node.IsLeaf = isLeaf
		switch {
		case node.Level == 1:
			node.Status = 1
		case isLeaf:
			node.Status = 0
		default:
			node.Status = -1
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

// Move reassigns a batch of employees to a new manager in one transaction.
// A nil target makes them roots.
func (r *PGRepository) Move(ctx context.Context, empNos []int64, targetMgr *int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE EMP SET MGR = $1 WHERE EMPNO = ANY($2::int[])`, targetMgr, empNos)
		return err
	})
}

// SalaryStats returns the salaries of everyone in the employee's department,
// highest first. Employees without a department compare only to themselves.
func (r *PGRepository) SalaryStats(ctx context.Context, empNo int64) (SalaryStats, error) {
	var (
		deptNo *int64
		ename  string
	)
	err := r.pool.QueryRow(ctx, `SELECT deptno, ename FROM emp WHERE empno = $1`, empNo).Scan(&deptNo, &ename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalaryStats{}, shared.ErrNotFound
		}
		return SalaryStats{}, err
	}

	query := `SELECT ename, sal FROM emp WHERE deptno = $1 ORDER BY sal DESC`
	arg := any(deptNo)
	if deptNo == nil {
		query = `SELECT ename, sal FROM emp WHERE empno = $1`
		arg = empNo
	}
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return SalaryStats{}, err
	}
	defer rows.Close()
	stats := SalaryStats{Department: deptNo, Target: ename}
	for rows.Next() {
		var entry SalaryEntry
		if err := rows.Scan(&entry.EName, &entry.Sal); err != nil {
			return SalaryStats{}, err
		}
		stats.Data = append(stats.Data, entry)
	}
	return stats, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
