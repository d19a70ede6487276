package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNoSession is returned when a request carries no usable session.
var ErrNoSession = errors.New("session: no active session")

// Session identifies the logged-in user to the backend.
type Session struct {
	UserID      string
	AccessToken string
}

// HasToken reports whether an access token is present. Route guarding keys
// off the token alone.
func (s Session) HasToken() bool { return s.AccessToken != "" }

// Valid reports whether both the user id and the token are present.
func (s Session) Valid() bool { return s.UserID != "" && s.AccessToken != "" }

// Key is a stable identifier for per-session state that does not reveal the
// token. It is empty for invalid sessions.
func (s Session) Key() string {
	if !s.Valid() {
		return ""
	}
	sum := sha256.Sum256([]byte(s.UserID + "\x00" + s.AccessToken))
	return hex.EncodeToString(sum[:16])
}

// ContextKey is the context key under which the session is stored.
// Handler contexts that only expose SetValue use it directly.
type ContextKey struct{}

// WithContext returns a copy of ctx carrying s.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ContextKey{}, s)
}

// FromContext returns the session stored by WithContext.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ContextKey{}).(Session)
	return s, ok
}
