package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/platform/httputil"
	"greentax/pkg/requestcontext"
)

// ActorValidator validates a bearer token and returns the actor it names.
type ActorValidator interface {
	ValidateActor(tokenString string) (domain.UserID, domain.Role, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor in the request context.
func RequireAuth(validator ActorValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			userID, role, err := validator.ValidateActor(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			ctx = requestcontext.WithActor(ctx, userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole admits only actors holding one of roles. It must run after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := requestcontext.Role(ctx)
			if role == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
				return
			}
			if !slices.Contains(roles, role) {
				logger.WarnContext(ctx, "forbidden - role not permitted",
					"request_id", requestcontext.RequestID(ctx),
					"user_id", requestcontext.UserID(ctx),
					"role", role,
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role not permitted for this operation"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleGuard builds a RequireRole middleware for a route group. Handlers take
// one so their Register methods can declare per-route roles.
type RoleGuard func(roles ...domain.Role) func(http.Handler) http.Handler

// NewRoleGuard binds RequireRole to logger.
func NewRoleGuard(logger *slog.Logger) RoleGuard {
	return func(roles ...domain.Role) func(http.Handler) http.Handler {
		return RequireRole(logger, roles...)
	}
}
