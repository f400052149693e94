package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greentax/internal/admin"
	compliancehandler "greentax/internal/compliance/handler"
	jwttoken "greentax/internal/jwt_token"
	"greentax/internal/platform/config"
	"greentax/internal/platform/middleware"
	proofhandler "greentax/internal/proof/handler"
	"greentax/internal/proof/imagestore"
	societyhandler "greentax/internal/society/handler"
	"greentax/pkg/domain"
)

const testSigningKey = "router-test-key"

var (
	routerOnce sync.Once
	testRouter http.Handler
	imageDir   string
)

// sharedRouter builds the router once; the HTTP metrics register on the
// default Prometheus registry.
func sharedRouter(t *testing.T) http.Handler {
	t.Helper()
	routerOnce.Do(func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		dir, err := os.MkdirTemp("", "greentax-router")
		require.NoError(t, err)
		imageDir = dir
		images, err := imagestore.NewFileSystem(dir, "/uploads")
		require.NoError(t, err)

		guard := middleware.NewRoleGuard(log)
		cfg := config.Server{JWTSigningKey: testSigningKey, Images: config.ImageConfig{Dir: dir, BaseURL: "/uploads"}}
		testRouter = newRouter(cfg, log, images, routes{
			societies:  societyhandler.New(nil, log, guard),
			proofs:     proofhandler.New(nil, log, guard),
			compliance: compliancehandler.New(nil, log, guard),
			admin:      admin.NewHandler(nil, guard),
		}, &infra{log: log})
	})
	return testRouter
}

func bearer(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := jwttoken.NewJWTService(testSigningKey, tokenIssuer).
		GenerateAccessToken(domain.UserID(uuid.New()), role, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	sharedRouter(t).ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterRequiresBearerToken(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/heatmap/wards", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/heatmap/wards", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = serve(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterEnforcesRoles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, domain.RoleResident))
	rec := serve(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterServesStoredImages(t *testing.T) {
	sharedRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "abc.jpg"), []byte("jpeg"), 0o600))

	rec := serve(t, httptest.NewRequest(http.MethodGet, "/uploads/abc.jpg", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())
}

func TestLateEvaluatorBeforeBind(t *testing.T) {
	var e lateEvaluator
	_, err := e.Evaluate(context.Background(), domain.NewSocietyID())
	assert.Error(t, err)
}
