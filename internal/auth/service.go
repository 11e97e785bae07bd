package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/coderslab/hr-console/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Authenticate validates email/password credentials and materializes the
// session principal from the user and its joined role.
//
// Unknown email and wrong password both collapse to 401, with message text
// that differs on purpose to match the existing clients.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*shared.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnknownEmail
		}
		return nil, shared.Wrap(shared.KindInternal, "lookup user", err)
	}
	if user.IsLocked {
		return nil, shared.ErrAccountLocked
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, shared.ErrInvalidPassword
	}
	if err := s.repo.RecordLogin(ctx, user.UserID); err != nil {
		return nil, shared.Wrap(shared.KindInternal, "record login", err)
	}

	principal := &shared.Principal{
		UserID:   user.UserID,
		Email:    user.Email,
		Username: user.Username,
		RoleCode: user.RoleCode,
		RoleName: user.RoleName,
	}
	if user.RoleID != nil {
		principal.RoleID = *user.RoleID
	}
	return principal, nil
}

// ChangePassword verifies the current password and overwrites the hash.
// Other active sessions for the same user stay valid.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	stored, err := s.repo.GetPasswordHash(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.E(shared.KindNotFound, "User not found")
		}
		return shared.Wrap(shared.KindInternal, "lookup password hash", err)
	}
	if !s.hasher.Compare(stored, currentPassword) {
		return shared.E(shared.KindUnauthenticated, "Incorrect current password")
	}
	if err := s.repo.UpdatePassword(ctx, userID, s.hasher.Hash(newPassword)); err != nil {
		return shared.Wrap(shared.KindInternal, "update password", err)
	}
	return nil
}
