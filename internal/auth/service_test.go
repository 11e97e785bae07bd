package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/shared"
)

type stubAuthRepo struct {
	Repository

	users       map[string]User
	lookups     []string
	recorded    []int64
	recordErr   error
	storedHash  string
	updatedHash string
}

func (s *stubAuthRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	s.lookups = append(s.lookups, email)
	u, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (s *stubAuthRepo) RecordLogin(_ context.Context, userID int64) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, userID)
	return nil
}

func (s *stubAuthRepo) GetPasswordHash(_ context.Context, _ int64) (string, error) {
	return s.storedHash, nil
}

func (s *stubAuthRepo) UpdatePassword(_ context.Context, _ int64, hash string) error {
	s.updatedHash = hash
	return nil
}

func newAuthService(repo Repository) *Service {
	return NewService(repo, NewPasswordHasher(StaticSalt))
}

func seededUser(t *testing.T) (User, string) {
	t.Helper()
	hasher := NewPasswordHasher(StaticSalt)
	roleID := int64(2)
	return User{
		UserID:       1,
		Email:        "scott@example.com",
		Username:     "scott",
		PasswordHash: hasher.Hash("tiger"),
		RoleID:       &roleID,
		RoleCode:     "ADMIN",
		RoleName:     "Administrator",
	}, "tiger"
}

func TestAuthenticateSuccess(t *testing.T) {
	user, password := seededUser(t)
	repo := &stubAuthRepo{users: map[string]User{user.Email: user}}
	svc := newAuthService(repo)

	principal, err := svc.Authenticate(context.Background(), "Scott@Example.COM ", password)
	require.NoError(t, err)

	assert.Equal(t, []string{"scott@example.com"}, repo.lookups)
	assert.Equal(t, []int64{1}, repo.recorded)
	assert.Equal(t, int64(1), principal.UserID)
	assert.Equal(t, "scott", principal.Username)
	assert.Equal(t, int64(2), principal.RoleID)
	assert.Equal(t, "ADMIN", principal.RoleCode)
	assert.Equal(t, "Administrator", principal.RoleName)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := newAuthService(&stubAuthRepo{users: map[string]User{}})

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, shared.ErrUnknownEmail)
	assert.Equal(t, "Invalid Email", err.Error())
	assert.Equal(t, http.StatusUnauthorized, shared.StatusCode(shared.KindOf(err)))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	user, _ := seededUser(t)
	repo := &stubAuthRepo{users: map[string]User{user.Email: user}}
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), user.Email, "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidPassword)
	assert.Equal(t, "Invalid Password", err.Error())
	assert.Empty(t, repo.recorded, "failed logins must not touch last_login_at")
}

func TestAuthenticateLockedAccount(t *testing.T) {
	user, password := seededUser(t)
	user.IsLocked = true
	repo := &stubAuthRepo{users: map[string]User{user.Email: user}}
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), user.Email, password)
	require.ErrorIs(t, err, shared.ErrAccountLocked)
	assert.Equal(t, "Account is locked. Contact administrator.", err.Error())
	assert.Equal(t, http.StatusForbidden, shared.StatusCode(shared.KindOf(err)))
	assert.Empty(t, repo.recorded)
}

func TestAuthenticateNilRoleDefaultsToZero(t *testing.T) {
	user, password := seededUser(t)
	user.RoleID = nil
	user.RoleCode = ""
	repo := &stubAuthRepo{users: map[string]User{user.Email: user}}
	svc := newAuthService(repo)

	principal, err := svc.Authenticate(context.Background(), user.Email, password)
	require.NoError(t, err)
	assert.Zero(t, principal.RoleID)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	hasher := NewPasswordHasher(StaticSalt)
	repo := &stubAuthRepo{storedHash: hasher.Hash("tiger")}
	svc := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), 1, "nottiger", "newpass")
	require.Error(t, err)
	assert.Equal(t, "Incorrect current password", err.Error())
	assert.Empty(t, repo.updatedHash)

	require.NoError(t, svc.ChangePassword(context.Background(), 1, "tiger", "newpass"))
	assert.Equal(t, hasher.Hash("newpass"), repo.updatedHash)
}
