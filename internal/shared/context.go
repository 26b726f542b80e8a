package shared

import (
	"context"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ActorFromContext extracts the authenticated actor from the session in
// context, or nil when unauthenticated.
func ActorFromContext(ctx context.Context) *authz.Actor {
	return SessionFromContext(ctx).Actor()
}
