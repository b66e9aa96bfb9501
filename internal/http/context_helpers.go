package httpx

import (
	"context"

	domainauth "github.com/target/timetracker/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// requestIDKey carries the request id assigned by RequestID.
type requestIDKey struct{}

// SessionState is the per-request view of the session cookie.
// Handlers mutate it with Set or Clear; the Sessions middleware writes the cookie back.
type SessionState struct {
	identity domainauth.Identity
	present  bool
	dirty    bool
	cleared  bool
}

// Identity returns the decoded identity and whether one is present.
func (s *SessionState) Identity() (domainauth.Identity, bool) {
	if s == nil || !s.present {
		return domainauth.Identity{}, false
	}
	return s.identity, true
}

// Set replaces the identity; the cookie is re-issued with the response.
func (s *SessionState) Set(id domainauth.Identity) {
	s.identity = id
	s.present = true
	s.dirty = true
	s.cleared = false
}

// Clear drops the identity; the cookie is expired with the response.
func (s *SessionState) Clear() {
	s.identity = domainauth.Identity{}
	s.present = false
	s.dirty = false
	s.cleared = true
}

// Dirty reports whether the response must rewrite the session cookie.
func (s *SessionState) Dirty() bool { return s.dirty || s.cleared }

// SetSessionInContext returns a child context that carries the given session state.
// If state is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, state *SessionState) context.Context {
	if state == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, state)
}

// SessionFromContext returns the session state installed by Sessions.
func SessionFromContext(ctx context.Context) (*SessionState, bool) {
	if s, ok := ctx.Value(sessionKey{}).(*SessionState); ok && s != nil {
		return s, true
	}
	return nil, false
}

// IdentityFromContext returns the decoded session identity, if any.
func IdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return domainauth.Identity{}, false
	}
	return s.Identity()
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
