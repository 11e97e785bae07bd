package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFixture(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisSessionStore(client)
	return NewSessionManager(store, "sid", 30*time.Minute, false), mr
}

func principalFixture() *Principal {
	return &Principal{UserID: 1, Email: "scott@example.com", Username: "scott", RoleID: 2, RoleCode: "ADMIN"}
}

func TestLoadWithoutCookieYieldsAnonymousSession(t *testing.T) {
	sm, _ := sessionFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	sess, err := sm.Load(context.Background(), r)
	require.NoError(t, err)

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.Principal())
}

func TestCommitPersistsAndLoadRestoresPrincipal(t *testing.T) {
	sm, _ := sessionFixture(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	require.NoError(t, err)
	sess.SetPrincipal(principalFixture())

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "sid", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(30*time.Minute/time.Second), cookie.MaxAge)

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	next.AddCookie(cookie)
	restored, err := sm.Load(ctx, next)
	require.NoError(t, err)
	require.True(t, restored.Authenticated())
	assert.Equal(t, "scott", restored.Principal().Username)
	assert.Equal(t, int64(2), restored.Principal().RoleID)
}

func TestAnonymousSessionIsNeverPersisted(t *testing.T) {
	sm, mr := sessionFixture(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/login.html", nil))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, sess))

	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, mr.Keys())
}

func TestExpiredSessionLoadsAsAnonymous(t *testing.T) {
	sm, mr := sessionFixture(t)
	ctx := context.Background()

	sess := NewSession("")
	sess.SetPrincipal(principalFixture())
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, sess))
	cookie := rec.Result().Cookies()[0]

	mr.FastForward(31 * time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, r)
	require.NoError(t, err)
	assert.False(t, reloaded.Authenticated())
}

func TestDestroyClearsStoreAndCookie(t *testing.T) {
	sm, mr := sessionFixture(t)
	ctx := context.Background()

	sess := NewSession("")
	sess.SetPrincipal(principalFixture())
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, sess))
	cookie := rec.Result().Cookies()[0]
	require.NotEmpty(t, mr.Keys())

	sm.Destroy(sess)
	assert.False(t, sess.Authenticated())

	rec = httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, sess))
	assert.Empty(t, mr.Keys(), "logout must remove the stored session")

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, r)
	require.NoError(t, err)
	assert.False(t, reloaded.Authenticated(), "old token must not restore access after logout")
}

func TestTamperedTokenLoadsAsAnonymous(t *testing.T) {
	sm, _ := sessionFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-real-token"})

	sess, err := sm.Load(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}
