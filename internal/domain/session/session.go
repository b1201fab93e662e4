// Package session owns the authenticated identity and bearer credential that
// gate every mutating storefront operation.
package session

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrUnauthenticated is returned when an operation requires an active
// session. Callers are expected to prompt for login, not retry.
var ErrUnauthenticated = errors.New("login required")

// Session is the authenticated identity and its bearer credential.
type Session struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// Authenticator exchanges credentials for a bearer token at the gateway.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Register(ctx context.Context, username, email, password string) error
}

// Store persists a session across process restarts. It is the only place a
// credential may outlive the process.
type Store interface {
	Save(s Session) error
	Load() (Session, bool, error)
	Clear() error
}

// Gate is the read-side view stores use to guard mutating operations.
type Gate interface {
	Active() bool
}

// TokenSource supplies the current bearer credential to the gateway
// transport. An empty string means no session.
type TokenSource interface {
	Token() string
}
