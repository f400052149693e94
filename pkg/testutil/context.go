package testutil

import (
	"net/http"

	"github.com/google/uuid"

	"greentax/pkg/domain"
	"greentax/pkg/requestcontext"
)

// WithActor adds a user and role to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithActor(req *http.Request, userID domain.UserID, role domain.Role) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), userID, role))
}

// AsRole adds a freshly generated user with the given role to the request context.
func AsRole(req *http.Request, role domain.Role) *http.Request {
	return WithActor(req, domain.UserID(uuid.New()), role)
}
