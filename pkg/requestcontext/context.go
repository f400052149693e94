// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them. The package has no net/http
// dependency so services and background workers can import it freely.
//
// Usage in services (read values):
//
//	actor := requestcontext.UserID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithActor(ctx, userID, domain.RoleAdmin)
package requestcontext

import (
	"context"
	"time"

	"greentax/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	userIDKey      struct{}
	roleKey        struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyUserID      = userIDKey{}
	ContextKeyRole        = roleKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Actor
// -----------------------------------------------------------------------------

// UserID retrieves the authenticated user ID from the context.
// Returns the zero value (nil UUID) if not set.
func UserID(ctx context.Context) domain.UserID {
	if userID, ok := ctx.Value(ContextKeyUserID).(domain.UserID); ok {
		return userID
	}
	return domain.UserID{}
}

// Role retrieves the authenticated actor's role, or "" when unauthenticated.
func Role(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(ContextKeyRole).(domain.Role); ok {
		return role
	}
	return ""
}

// WithActor injects the authenticated user and role into the context.
func WithActor(ctx context.Context, userID domain.UserID, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	return context.WithValue(ctx, ContextKeyRole, role)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that don't run the full HTTP middleware chain
//   - Background recomputation that evaluates at a fixed instant
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// Detach returns a context that carries the request ID of ctx but none of
// its cancellation, actor or request time. Background work scheduled by a
// request uses it so the work outlives the request.
func Detach(ctx context.Context) context.Context {
	out := context.Background()
	if id := RequestID(ctx); id != "" {
		out = WithRequestID(out, id)
	}
	return out
}
