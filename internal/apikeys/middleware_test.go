package apikeys

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/shared"
)

type stubKeyRepo struct {
	Repository

	keys    map[string]Key
	findErr error
}

func (s *stubKeyRepo) FindActive(_ context.Context, apiKey string) (Key, error) {
	if s.findErr != nil {
		return Key{}, s.findErr
	}
	k, ok := s.keys[apiKey]
	if !ok {
		return Key{}, shared.ErrNotFound
	}
	return k, nil
}

func gateRequest(t *testing.T, gate Gate, apiKey string) (*httptest.ResponseRecorder, *Key) {
	t.Helper()

	var seen *Key
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = KeyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/employees", nil)
	if apiKey != "" {
		req.Header.Set(HeaderName, apiKey)
	}
	rec := httptest.NewRecorder()
	gate.Require(next).ServeHTTP(rec, req)
	return rec, seen
}

func assertGenericUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized: Invalid or expired API Key", body["message"])
}

func TestGateAcceptsActiveKey(t *testing.T) {
	repo := &stubKeyRepo{keys: map[string]Key{
		"good-key": {KeyID: 7, EmpNo: 7839, Status: StatusActive, CreatedAt: time.Now()},
	}}
	gate := Gate{Repo: repo, Logger: slog.Default()}

	rec, seen := gateRequest(t, gate, "good-key")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.KeyID)
}

func TestGateRejectsMissingHeader(t *testing.T) {
	gate := Gate{Repo: &stubKeyRepo{}, Logger: slog.Default()}

	rec, seen := gateRequest(t, gate, "")
	assertGenericUnauthorized(t, rec)
	assert.Nil(t, seen)
}

func TestGateRejectsUnknownKey(t *testing.T) {
	gate := Gate{Repo: &stubKeyRepo{keys: map[string]Key{}}, Logger: slog.Default()}

	rec, _ := gateRequest(t, gate, "no-such-key")
	assertGenericUnauthorized(t, rec)
}

// Revoked and expired keys never come back from FindActive, so from the
// gate's point of view they are indistinguishable from unknown keys.
func TestGateRejectsRevokedKeyWithSameMessage(t *testing.T) {
	repo := &stubKeyRepo{keys: map[string]Key{}}
	gate := Gate{Repo: repo, Logger: slog.Default()}

	missing, _ := gateRequest(t, gate, "")
	revoked, _ := gateRequest(t, gate, "was-revoked")

	assertGenericUnauthorized(t, missing)
	assertGenericUnauthorized(t, revoked)
	assert.JSONEq(t, missing.Body.String(), revoked.Body.String())
}

func TestGateStoreErrorIs500NotLeak(t *testing.T) {
	repo := &stubKeyRepo{findErr: errors.New("connection refused")}
	gate := Gate{Repo: repo, Logger: slog.Default()}

	rec, seen := gateRequest(t, gate, "any-key")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, seen)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
