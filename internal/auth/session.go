package auth

import "context"

// Session is the explicit authenticated-session object handed to handlers
// through the request context. There is exactly one admin identity, so the
// session carries only what the handlers need: who logged in and which
// token they hold.
type Session struct {
	Email   string
	TokenID string
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext extracts the session placed by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}
