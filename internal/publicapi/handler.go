// Package publicapi serves the versioned, API-key gated read endpoints
// consumed by external integrations.
package publicapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// PublicEmployee is the externally visible employee shape.
type PublicEmployee struct {
	EmpNo    int64    `json:"empno"`
	EName    string   `json:"ename"`
	Job      *string  `json:"job"`
	Mgr      *int64   `json:"mgr"`
	HireDate *string  `json:"hiredate"`
	Sal      *float64 `json:"sal"`
	Comm     *float64 `json:"comm"`
	DeptNo   *int64   `json:"deptno"`
}

// PublicDepartment is a department with its employees aggregated inline.
type PublicDepartment struct {
	DeptNo    int64           `json:"deptno"`
	DName     string          `json:"dname"`
	Loc       *string         `json:"loc"`
	Employees json.RawMessage `json:"employees"`
}

// Repository defines the public read queries.
type Repository interface {
	Employees(ctx context.Context) ([]PublicEmployee, error)
	Departments(ctx context.Context) ([]PublicDepartment, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Employees(ctx context.Context) ([]PublicEmployee, error) {
	const query = `
		SELECT empno, ename, job, mgr,
		       TO_CHAR(hiredate, 'YYYY-MM-DD') AS hiredate,
		       sal, comm, deptno
		FROM emp
		ORDER BY empno`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []PublicEmployee
	for rows.Next() {
		var e PublicEmployee
		if err := rows.Scan(&e.EmpNo, &e.EName, &e.Job, &e.Mgr, &e.HireDate, &e.Sal, &e.Comm, &e.DeptNo); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Departments aggregates each department's employees into a JSON array in
// the database, keeping the transfer to a single round trip.
func (r *PGRepository) Departments(ctx context.Context) ([]PublicDepartment, error) {
	const query = `
		SELECT d.deptno, d.dname, d.loc,
		       COALESCE(
		           JSON_AGG(
		               JSON_BUILD_OBJECT(
		                   'empno', e.empno,
		                   'ename', e.ename,
		                   'job', e.job,
		                   'mgr', e.mgr,
		                   'hiredate', TO_CHAR(e.hiredate, 'YYYY-MM-DD'),
		                   'sal', e.sal,
		                   'comm', e.comm
		               ) ORDER BY e.empno
		           ) FILTER (WHERE e.empno IS NOT NULL),
		           '[]'::json
		       ) AS employees
		FROM dept d
		LEFT JOIN emp e ON d.deptno = e.deptno
		GROUP BY d.deptno, d.dname, d.loc
		ORDER BY d.deptno`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []PublicDepartment
	for rows.Next() {
		var d PublicDepartment
		if err := rows.Scan(&d.DeptNo, &d.DName, &d.Loc, &d.Employees); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

var _ Repository = (*PGRepository)(nil)

// Handler serves the v1 endpoints.
type Handler struct {
	logger *slog.Logger
	repo   Repository
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers the versioned routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/employees", h.employees)
	r.Get("/departments", h.departments)
}

func (h *Handler) employees(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.Employees(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []PublicEmployee{}
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(list),
		"data":    list,
	})
}

func (h *Handler) departments(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.Departments(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []PublicDepartment{}
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(list),
		"data":    list,
	})
}
