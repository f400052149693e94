package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "greentax/internal/jwt_token"
	"greentax/pkg/attrs"
	"greentax/pkg/domain"
	"greentax/pkg/platform/middleware/metadata"
	"greentax/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	jwtSvc := jwttoken.NewJWTService("test-key", "greentax")
	userID := domain.UserID(uuid.New())

	var seenUser domain.UserID
	var seenRole domain.Role
	h := RequireAuth(jwtSvc, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = requestcontext.UserID(r.Context())
		seenRole = requestcontext.Role(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token injects actor", func(t *testing.T) {
		token, err := jwtSvc.GenerateAccessToken(userID, domain.RoleAdmin, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seenUser)
		assert.Equal(t, domain.RoleAdmin, seenRole)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(discardLogger(), domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(role domain.Role) int {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		if role != "" {
			req = req.WithContext(requestcontext.WithActor(req.Context(), domain.UserID(uuid.New()), role))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(domain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(domain.RoleSecretary))
	assert.Equal(t, http.StatusUnauthorized, serve(""))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

// capturingHandler keeps each record's attributes as a flat key/value list.
type capturingHandler struct {
	records [][]any
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	var kv []any
	r.Attrs(func(a slog.Attr) bool {
		kv = append(kv, a.Key, a.Value.Any())
		return true
	})
	h.records = append(h.records, kv)
	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

func TestLoggerIncludesClientMetadata(t *testing.T) {
	capture := &capturingHandler{}
	h := RequestID(metadata.Middleware(Logger(slog.New(capture))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))))

	req := httptest.NewRequest(http.MethodPost, "/proofs", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("User-Agent", "secretary-app")
	req.Header.Set(RequestIDHeader, "req-9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, capture.records, 1)
	kv := capture.records[0]
	assert.Equal(t, "203.0.113.7", attrs.ExtractString(kv, "client_ip"))
	assert.Equal(t, "secretary-app", attrs.ExtractString(kv, "user_agent"))
	assert.Equal(t, "req-9", attrs.ExtractString(kv, "request_id"))
	assert.Equal(t, "/proofs", attrs.ExtractString(kv, "path"))
}
