package departments

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubDeptRepo struct {
	Repository

	createErr error
	created   Department
	deleteErr error
	deleted   Department
	all       []Department
	page      []Department
	total     int
}

func (s *stubDeptRepo) ListAll(_ context.Context) ([]Department, error) {
	return s.all, nil
}

func (s *stubDeptRepo) ListPage(_ context.Context, _, _ int) ([]Department, int, error) {
	return s.page, s.total, nil
}

func (s *stubDeptRepo) Create(_ context.Context, _ DepartmentInput) (Department, error) {
	return s.created, s.createErr
}

func (s *stubDeptRepo) Delete(_ context.Context, _ int64) (Department, error) {
	return s.deleted, s.deleteErr
}

func newDeptRouter(repo Repository) chi.Router {
	h := NewHandler(testLogger(), repo)
	r := chi.NewRouter()
	r.Route("/api/departments", h.MountRoutes)
	return r
}

func TestListWithoutPageReturnsBareArray(t *testing.T) {
	repo := &stubDeptRepo{all: []Department{{DeptNo: 10, DName: "ACCOUNTING"}}}
	router := newDeptRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/departments", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))
}

func TestListWithPageReturnsEnvelope(t *testing.T) {
	repo := &stubDeptRepo{page: []Department{{DeptNo: 10, DName: "ACCOUNTING"}}, total: 4}
	router := newDeptRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/departments?page=1&limit=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":4`)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	repo := &stubDeptRepo{createErr: ErrDuplicateName}
	router := newDeptRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/departments", strings.NewReader(`{"dname":"accounting","loc":"SEOUL"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Duplicate DNAME")
}

func TestDeleteWithEmployeesIsRejected(t *testing.T) {
	repo := &stubDeptRepo{deleteErr: &pgconn.PgError{Code: "23503"}}
	router := newDeptRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/departments/20", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot delete department with existing employees")
}

func TestDeleteUnknownDepartment(t *testing.T) {
	repo := &stubDeptRepo{deleteErr: shared.ErrNotFound}
	router := newDeptRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/departments/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Department not found")
}
