package app

import (
	"bytes"
	"context"
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

type failingSessionStore struct {
	setErr error
}

func (s *failingSessionStore) Get(context.Context, string) (*shared.Principal, error) {
	return nil, shared.ErrNoSession
}

func (s *failingSessionStore) Set(context.Context, string, *shared.Principal, time.Duration) error {
	return s.setErr
}

func (s *failingSessionStore) Destroy(context.Context, string) error {
	return nil
}

func stackHandler(cfg MiddlewareConfig, final http.Handler) http.Handler {
	mws := MiddlewareStack(cfg)
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestSessionCommitFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := &failingSessionStore{setErr: errors.New("redis write refused")}
	manager := shared.NewSessionManager(store, "sid", 10*time.Minute, false)

	handler := stackHandler(MiddlewareConfig{
		Logger:         logger,
		SessionManager: manager,
	}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		require.NotNil(t, sess)
		sess.SetPrincipal(&shared.Principal{UserID: 1, Username: "scott"})
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "session commit failed")
	assert.Contains(t, buf.String(), "redis write refused")
}

func TestSessionCommitSuccessLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	manager := shared.NewSessionManager(&failingSessionStore{}, "sid", 10*time.Minute, false)

	handler := stackHandler(MiddlewareConfig{
		Logger:         logger,
		SessionManager: manager,
	}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		require.NotNil(t, sess)
		sess.SetPrincipal(&shared.Principal{UserID: 1, Username: "scott"})
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, buf.String(), "session commit failed")
	assert.NotEmpty(t, rec.Result().Cookies(), "a committed session must set the cookie")
}
