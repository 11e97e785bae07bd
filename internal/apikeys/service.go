package apikeys

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Service issues and manages API keys.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// generateKey returns a fresh 256-bit key as 64 hex characters.
func generateKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Issue creates a key for an employee and returns the record together with
// the plain key value. The plain value is only available here; listings show
// the stored value as-is since the schema keeps it in clear text.
func (s *Service) Issue(ctx context.Context, empNo int64, keyName *string, expiresAt *time.Time) (Key, string, error) {
	plain, err := generateKey()
	if err != nil {
		return Key{}, "", err
	}
	key, err := s.repo.Create(ctx, empNo, plain, keyName, expiresAt)
	if err != nil {
		return Key{}, "", err
	}
	return key, plain, nil
}

// List returns all issued keys with employee names joined in.
func (s *Service) List(ctx context.Context) ([]Key, error) {
	return s.repo.List(ctx)
}

// Revoke flips a key to REVOKED. There is no way back to ACTIVE.
func (s *Service) Revoke(ctx context.Context, keyID int64) (Key, error) {
	return s.repo.Revoke(ctx, keyID)
}

// Delete removes a key record entirely.
func (s *Service) Delete(ctx context.Context, keyID int64) error {
	return s.repo.Delete(ctx, keyID)
}
