package folio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is the fixed session lifetime.
const DefaultSessionTTL = 24 * time.Hour

// Session binds an opaque token to an account until expiry.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
}

// SessionStore persists sessions. Implementations must treat Get on a
// missing or expired token as not found.
type SessionStore interface {
	Set(ctx context.Context, session Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Sessions issues and resolves opaque session tokens over a SessionStore.
type Sessions struct {
	Store SessionStore
	TTL   time.Duration
	Now   func() time.Time
}

// NewSessions creates a session manager with the default TTL.
func NewSessions(store SessionStore) *Sessions {
	return &Sessions{Store: store, TTL: DefaultSessionTTL, Now: time.Now}
}

// Issue creates a session for an account and returns its token.
func (s *Sessions) Issue(ctx context.Context, accountID int64) (Session, error) {
	if s == nil || s.Store == nil {
		return Session{}, NewError(KindInternal, "session store not configured", nil)
	}

	session := Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		ExpiresAt: s.now().Add(s.ttl()),
	}
	if err := s.Store.Set(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Resolve returns the account bound to a token, or KindUnauthorized when
// the token is missing, unknown or expired.
func (s *Sessions) Resolve(ctx context.Context, token string) (int64, error) {
	if s == nil || s.Store == nil {
		return 0, NewError(KindInternal, "session store not configured", nil)
	}
	if token == "" {
		return 0, NewError(KindUnauthorized, "missing session", nil)
	}

	session, err := s.Store.Get(ctx, token)
	if err != nil {
		if KindFromError(err) == KindNotFound {
			return 0, NewError(KindUnauthorized, "invalid session", nil)
		}
		return 0, err
	}
	if !session.ExpiresAt.After(s.now()) {
		_ = s.Store.Delete(ctx, token)
		return 0, NewError(KindUnauthorized, "session expired", nil)
	}
	return session.AccountID, nil
}

// Revoke invalidates a session immediately. Revoking an unknown token is
// not an error.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	if s == nil || s.Store == nil {
		return NewError(KindInternal, "session store not configured", nil)
	}
	if token == "" {
		return nil
	}
	return s.Store.Delete(ctx, token)
}

func (s *Sessions) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

func (s *Sessions) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// MemorySessionStore keeps sessions in an in-process map. Expired entries
// are dropped on read.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	Now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session), Now: time.Now}
}

func (m *MemorySessionStore) Set(ctx context.Context, session Session) error {
	_ = ctx
	if session.Token == "" {
		return NewError(KindValidation, "session token is required", nil)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions == nil {
		m.sessions = make(map[string]Session)
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, token string) (Session, error) {
	_ = ctx
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return Session{}, NewError(KindNotFound, "session not found", nil)
	}
	if !session.ExpiresAt.After(m.now()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return Session{}, NewError(KindNotFound, "session not found", nil)
	}
	return session, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, token string) error {
	_ = ctx
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
