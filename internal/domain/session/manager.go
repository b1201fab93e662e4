package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/shophub/internal/toast"
)

// Manager is the single owner of the current session. Everything else reads
// it through the Gate and TokenSource views.
type Manager struct {
	auth   Authenticator
	store  Store
	notify toast.Notifier

	mu      sync.RWMutex
	current *Session
}

// NewManager creates a Manager. store may be nil when durable restore is
// disabled.
func NewManager(auth Authenticator, store Store, notify toast.Notifier) *Manager {
	return &Manager{auth: auth, store: store, notify: notify}
}

// Login exchanges credentials for a bearer token, installs the session, and
// persists it for restart restore.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return errors.Wrap(err, "login")
	}

	s := Session{Identity: username, Token: token}
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(s); err != nil {
			return errors.Wrap(err, "persist session")
		}
	}

	m.notify.Emit("Welcome back!", toast.Success)
	return nil
}

// Register creates an account and immediately logs in with the new
// credentials.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	if err := m.auth.Register(ctx, username, email, password); err != nil {
		return errors.Wrap(err, "register")
	}
	m.notify.Emit("Account created!", toast.Success)
	return m.Login(ctx, username, password)
}

// Logout destroys the session and its durable copy. It never fails the user:
// a broken store only means the next restart will not restore a session.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if m.store != nil {
		_ = m.store.Clear()
	}
	m.notify.Emit("Logged out", toast.Info)
}

// Restore loads a persisted session, if any. It reports whether a session
// was installed.
func (m *Manager) Restore() (bool, error) {
	if m.store == nil {
		return false, nil
	}
	s, ok, err := m.store.Load()
	if err != nil {
		return false, errors.Wrap(err, "load session")
	}
	if !ok {
		return false, nil
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return true, nil
}

// Active reports whether a session exists.
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Token returns the current bearer credential, or "" without a session.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Current returns a copy of the session and whether one exists.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}
