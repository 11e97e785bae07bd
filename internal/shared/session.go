package shared

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession indicates the store holds no payload for a token.
var ErrNoSession = errors.New("session not found")

// Principal is the authenticated identity materialized at login time.
// Role fields are a snapshot; authorization checks re-read the current
// role from the credential store instead of trusting these.
type Principal struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	RoleID   int64  `json:"role_id"`
	RoleCode string `json:"role_code"`
	RoleName string `json:"role_name"`
}

// SessionStore persists session payloads keyed by an opaque token.
type SessionStore interface {
	Get(ctx context.Context, token string) (*Principal, error)
	Set(ctx context.Context, token string, p *Principal, ttl time.Duration) error
	Destroy(ctx context.Context, token string) error
}

// RedisSessionStore implements SessionStore on top of Redis.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore constructs a Redis backed store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) key(token string) string {
	return "session:" + token
}

// Get loads the payload for a token.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Principal, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var p Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Set stores the payload with the given lifetime.
func (s *RedisSessionStore) Set(ctx context.Context, token string, p *Principal, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(token), data, ttl).Err()
}

// Destroy removes the payload. Missing tokens are not an error.
func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

var _ SessionStore = (*RedisSessionStore)(nil)

// SessionManager orchestrates cookie based sessions over a SessionStore.
type SessionManager struct {
	store      SessionStore
	cookieName string
	ttl        time.Duration
	secure     bool
}

// Session holds per-request session state.
type Session struct {
	ID        string
	principal *Principal
	isNew     bool
	dirty     bool
	destroyed bool
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(store SessionStore, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Load resolves the session for a request, creating an empty one when the
// cookie is absent or its token has expired out of the store.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return sm.newSession(), nil
		}
		return nil, err
	}

	principal, err := sm.store.Get(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			sess := sm.newSession()
			sess.ID = cookie.Value
			return sess, nil
		}
		return nil, err
	}

	return &Session{ID: cookie.Value, principal: principal}, nil
}

// Commit persists the session and writes cookie headers as needed.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *Session) error {
	if sess == nil {
		return nil
	}

	if sess.destroyed {
		if err := sm.store.Destroy(ctx, sess.ID); err != nil {
			return err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sm.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   sm.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	// Anonymous sessions are never persisted.
	if sess.principal == nil {
		return nil
	}

	if sess.dirty || sess.isNew {
		if sess.ID == "" {
			sess.ID = generateToken()
		}
		if err := sm.store.Set(ctx, sess.ID, sess.principal, sm.ttl); err != nil {
			return err
		}
		sess.dirty = false
		sess.isNew = false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sm.ttl / time.Second),
	})
	return nil
}

// Destroy marks the session for deletion on commit.
func (sm *SessionManager) Destroy(sess *Session) {
	if sess == nil {
		return
	}
	sess.principal = nil
	sess.destroyed = true
}

// TTL exposes the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// SetPrincipal binds an authenticated identity to the session.
func (s *Session) SetPrincipal(p *Principal) {
	s.principal = p
	s.dirty = true
}

// Principal returns the authenticated identity, nil when anonymous.
func (s *Session) Principal() *Principal {
	if s == nil {
		return nil
	}
	return s.principal
}

// Authenticated reports whether a principal is bound to the session.
func (s *Session) Authenticated() bool {
	return s != nil && s.principal != nil
}

func (sm *SessionManager) newSession() *Session {
	return &Session{isNew: true}
}

// NewSession builds a detached session with the given token. Request
// handling goes through SessionManager.Load; this exists for wiring
// sessions up directly in tests.
func NewSession(id string) *Session {
	return &Session{ID: id, isNew: true}
}

func generateToken() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
