package users

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/auth"
	"github.com/coderslab/hr-console/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubUserRepo struct {
	Repository

	createIn   CreateUserInput
	createHash string
	createErr  error
	created    AppUser

	updateIn   UpdateUserInput
	updateHash *string
	updated    AppUser
	updateErr  error
}

func (s *stubUserRepo) Create(_ context.Context, in CreateUserInput, passwordHash string) (AppUser, error) {
	s.createIn = in
	s.createHash = passwordHash
	return s.created, s.createErr
}

func (s *stubUserRepo) Update(_ context.Context, _ int64, in UpdateUserInput, passwordHash *string) (AppUser, error) {
	s.updateIn = in
	s.updateHash = passwordHash
	return s.updated, s.updateErr
}

func newUsersRouter(repo Repository) chi.Router {
	h := NewHandler(testLogger(), repo, auth.NewPasswordHasher(auth.StaticSalt))
	r := chi.NewRouter()
	r.Route("/api/app_users", h.MountRoutes)
	return r
}

func TestCreateLowercasesEmailAndHashesPassword(t *testing.T) {
	repo := &stubUserRepo{created: AppUser{UserID: 1, Email: "scott@example.com"}}
	router := newUsersRouter(repo)

	body := `{"email":"Scott@Example.COM","username":"scott","password":"tiger"}`
	req := httptest.NewRequest(http.MethodPost, "/api/app_users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "scott@example.com", repo.createIn.Email)
	assert.Equal(t, auth.NewPasswordHasher(auth.StaticSalt).Hash("tiger"), repo.createHash)
	assert.NotEqual(t, "tiger", repo.createHash)
}

func TestCreateMissingFields(t *testing.T) {
	router := newUsersRouter(&stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/app_users", strings.NewReader(`{"email":"a@b.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required fields")
}

func TestCreateDuplicateAccount(t *testing.T) {
	repo := &stubUserRepo{createErr: ErrDuplicateAccount}
	router := newUsersRouter(repo)

	body := `{"email":"scott@example.com","username":"scott","password":"tiger"}`
	req := httptest.NewRequest(http.MethodPost, "/api/app_users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email or Username already exists")
}

func TestUpdateEmptyBodyIsNoop(t *testing.T) {
	repo := &stubUserRepo{}
	router := newUsersRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/app_users/3", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No changes")
}

func TestUpdateHashesNewPassword(t *testing.T) {
	repo := &stubUserRepo{updated: AppUser{UserID: 3}}
	router := newUsersRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/app_users/3", strings.NewReader(`{"password":"newpass"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.updateHash)
	assert.Equal(t, auth.NewPasswordHasher(auth.StaticSalt).Hash("newpass"), *repo.updateHash)
}

func TestUpdateUnknownUser(t *testing.T) {
	repo := &stubUserRepo{updateErr: shared.ErrNotFound}
	router := newUsersRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/app_users/99", strings.NewReader(`{"is_locked":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}
