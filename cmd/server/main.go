package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"greentax/internal/admin"
	"greentax/internal/admin/adapters"
	"greentax/internal/audit"
	compliancecache "greentax/internal/compliance/cache"
	compliancehandler "greentax/internal/compliance/handler"
	compliancemetrics "greentax/internal/compliance/metrics"
	compliancemodels "greentax/internal/compliance/models"
	"greentax/internal/compliance/recompute"
	complianceservice "greentax/internal/compliance/service"
	jwttoken "greentax/internal/jwt_token"
	"greentax/internal/platform/config"
	"greentax/internal/platform/httpserver"
	"greentax/internal/platform/logger"
	"greentax/internal/platform/metrics"
	"greentax/internal/platform/middleware"
	proofhandler "greentax/internal/proof/handler"
	"greentax/internal/proof/imagestore"
	proofmetrics "greentax/internal/proof/metrics"
	proofservice "greentax/internal/proof/service"
	"greentax/internal/proof/validation"
	societyhandler "greentax/internal/society/handler"
	societyservice "greentax/internal/society/service"
	"greentax/pkg/domain"
	"greentax/pkg/platform/httputil"
	"greentax/pkg/platform/middleware/metadata"
	"greentax/pkg/platform/middleware/requesttime"
)

const (
	shutdownGrace = 15 * time.Second
	tokenIssuer   = "greentax"
	auditBuffer   = 1024
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	backends, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.Close()

	repos := newStores(backends)

	// Audit events leave the request path through a buffered channel; the
	// worker forwards them to Kafka when configured, memory otherwise.
	inbox := make(chan audit.Event, auditBuffer)
	publisher := audit.NewPublisher(audit.NewChannelSink(inbox), audit.WithPublisherLogger(log))
	var auditSink audit.Sink = audit.NewInMemoryStore()
	if backends.kafka != nil {
		auditSink = backends.kafka
	}
	auditWorker := audit.NewWorker(auditSink, inbox, log)

	images, err := imagestore.NewFileSystem(cfg.Images.Dir, cfg.Images.BaseURL)
	if err != nil {
		return err
	}

	societies := societyservice.New(repos.societies,
		societyservice.WithLogger(log),
		societyservice.WithAuditPublisher(publisher),
	)

	cm := compliancemetrics.New()
	complianceOpts := []complianceservice.Option{
		complianceservice.WithLogger(log),
		complianceservice.WithAuditPublisher(publisher),
		complianceservice.WithMetrics(cm),
	}
	if backends.redis != nil {
		complianceOpts = append(complianceOpts, complianceservice.WithRebateCache(
			compliancecache.NewRedis(backends.redis.Client, compliancecache.WithTTL(cfg.Redis.RebateTTL)),
		))
	}
	if repos.tx != nil {
		complianceOpts = append(complianceOpts, complianceservice.WithTransactor(repos.tx))
	}

	// The proof service and the compliance service depend on each other only
	// through the recompute queue, which is bound once both exist.
	var evaluator lateEvaluator
	queue := recompute.NewQueue(&evaluator,
		recompute.WithWorkers(cfg.Recompute.Workers),
		recompute.WithBuffer(cfg.Recompute.Buffer),
		recompute.WithTimeout(cfg.Recompute.Timeout),
		recompute.WithLogger(log),
		recompute.WithMetrics(cm),
	)

	pm := proofmetrics.New()
	proofs, err := proofservice.New(repos.proofs, societies, images,
		validation.New(repos.proofs, validation.WithLogger(log), validation.WithMetrics(pm)),
		proofservice.WithLogger(log),
		proofservice.WithAuditPublisher(publisher),
		proofservice.WithMetrics(pm),
		proofservice.WithScheduler(queue),
	)
	if err != nil {
		return err
	}

	compliance, err := complianceservice.New(repos.compliance, societies, proofs, complianceOpts...)
	if err != nil {
		return err
	}
	evaluator.bind(compliance)

	dashboard := admin.NewService(societies,
		adapters.NewComplianceAdapter(compliance),
		adapters.NewProofStatsAdapter(proofs),
		log,
	)

	router := newRouter(cfg, log, images, routes{
		societies:  societyhandler.New(societies, log, middleware.NewRoleGuard(log)),
		proofs:     proofhandler.New(proofs, log, middleware.NewRoleGuard(log)),
		compliance: compliancehandler.New(compliance, log, middleware.NewRoleGuard(log)),
		admin:      admin.NewHandler(dashboard, middleware.NewRoleGuard(log)),
	}, backends)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting greentax",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"postgres", backends.db != nil,
		"redis", backends.redis != nil,
		"kafka", backends.kafka != nil,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpserver.Run(gctx, srv, shutdownGrace) })
	g.Go(func() error { return queue.Run(gctx) })
	g.Go(func() error { return auditWorker.Run(gctx) })
	return g.Wait()
}

type routes struct {
	societies  *societyhandler.Handler
	proofs     *proofhandler.Handler
	compliance *compliancehandler.Handler
	admin      *admin.Handler
}

func newRouter(cfg config.Server, log *slog.Logger, images *imagestore.FileSystem, h routes, backends *infra) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(metrics.New().Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := backends.Health(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	if base := strings.TrimSuffix(cfg.Images.BaseURL, "/"); strings.HasPrefix(base, "/") {
		r.Handle(base+"/*", http.StripPrefix(base+"/", http.FileServer(http.Dir(images.Dir()))))
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, log))
		h.societies.Register(r)
		h.proofs.Register(r)
		h.compliance.Register(r)
		h.admin.Register(r)
	})
	return r
}

// lateEvaluator lets the recompute queue exist before the compliance service
// it drives. Schedules that run before bind fail and are logged by the queue.
type lateEvaluator struct {
	svc *complianceservice.Service
}

func (e *lateEvaluator) bind(svc *complianceservice.Service) { e.svc = svc }

func (e *lateEvaluator) Evaluate(ctx context.Context, societyID domain.SocietyID) (*compliancemodels.Record, error) {
	if e.svc == nil {
		return nil, errors.New("compliance service not ready")
	}
	return e.svc.Evaluate(ctx, societyID)
}
