package employees

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubEmpRepo struct {
	Repository

	listParams ListParams
	listResult []Employee
	listTotal  int
	allResult  []Employee

	moved      []int64
	movedMgr   *int64
	updated    Employee
	updateErr  error
	deleteErr  error
	deletedEmp Employee
}

func (s *stubEmpRepo) List(_ context.Context, p ListParams) ([]Employee, int, error) {
	s.listParams = p
	return s.listResult, s.listTotal, nil
}

func (s *stubEmpRepo) ListAll(_ context.Context) ([]Employee, error) {
	return s.allResult, nil
}

func (s *stubEmpRepo) Update(_ context.Context, _ int64, _ EmployeeInput) (Employee, error) {
	return s.updated, s.updateErr
}

func (s *stubEmpRepo) Delete(_ context.Context, _ int64) (Employee, error) {
	return s.deletedEmp, s.deleteErr
}

func (s *stubEmpRepo) Move(_ context.Context, empNos []int64, targetMgr *int64) error {
	s.moved = empNos
	s.movedMgr = targetMgr
	return nil
}

func newEmpRouter(repo Repository) chi.Router {
	h := NewHandler(testLogger(), repo)
	r := chi.NewRouter()
	r.Route("/api/employees", h.MountRoutes)
	r.Route("/api/tree", h.MountTreeRoutes)
	return r
}

func TestListPassesPaginationAndSort(t *testing.T) {
	repo := &stubEmpRepo{listTotal: 14}
	router := newEmpRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/employees?page=2&limit=5&sortField=SAL&sortOrder=DESC", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ListParams{Page: 2, Limit: 5, SortField: "sal", SortDesc: true}, repo.listParams)

	var body struct {
		Data  []Employee `json:"data"`
		Total int        `json:"total"`
		Page  int        `json:"page"`
		Limit int        `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 14, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.NotNil(t, body.Data)
}

func TestListAllReturnsBareArray(t *testing.T) {
	repo := &stubEmpRepo{allResult: []Employee{{EmpNo: 7839, EName: "KING"}}}
	router := newEmpRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/employees?all=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))
}

func TestUpdateNotFound(t *testing.T) {
	repo := &stubEmpRepo{updateErr: shared.ErrNotFound}
	router := newEmpRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/employees/9999", strings.NewReader(`{"ename":"NOBODY"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee not found")
}

func TestMoveRequiresSelection(t *testing.T) {
	router := newEmpRouter(&stubEmpRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/tree/move", strings.NewReader(`{"empnos":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No employees selected")
}

func TestMoveReassignsBatch(t *testing.T) {
	repo := &stubEmpRepo{}
	router := newEmpRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/tree/move", strings.NewReader(`{"empnos":[7499,7521],"targetMgr":7839}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{7499, 7521}, repo.moved)
	require.NotNil(t, repo.movedMgr)
	assert.Equal(t, int64(7839), *repo.movedMgr)
	assert.Contains(t, rec.Body.String(), "Updated 2 employees")
}
