package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"greentax/internal/audit"
	"greentax/internal/compliance/metrics"
	"greentax/internal/compliance/models"
	proofmodels "greentax/internal/proof/models"
	societymodels "greentax/internal/society/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/period"
	"greentax/pkg/platform/sentinel"
	"greentax/pkg/requestcontext"
)

// RecentProofLimit is how many proofs the resident summary shows.
const RecentProofLimit = 10

// Store is the persistence port for compliance records.
type Store interface {
	Upsert(ctx context.Context, record *models.Record) (*models.Record, error)
	FindByPeriod(ctx context.Context, societyID domain.SocietyID, key period.Key) (*models.Record, error)
	LatestBySociety(ctx context.Context, societyID domain.SocietyID) (*models.Record, error)
	LatestPerSociety(ctx context.Context) (map[domain.SocietyID]*models.Record, error)
	Count(ctx context.Context) (int, error)
}

// SocietyLookup reads the society registry.
type SocietyLookup interface {
	Get(ctx context.Context, id domain.SocietyID) (*societymodels.Society, error)
	ListActive(ctx context.Context) ([]*societymodels.Society, error)
}

// ProofHistory reads a society's proof log, newest capture first.
type ProofHistory interface {
	History(ctx context.Context, societyID domain.SocietyID) ([]*proofmodels.Proof, error)
	Recent(ctx context.Context, societyID domain.SocietyID, limit int) ([]*proofmodels.Proof, error)
}

// RebateCache caches rebate projections. Implementations report a miss with
// ok=false and a nil error.
type RebateCache interface {
	Get(ctx context.Context, id domain.SocietyID) (rebate *models.Rebate, ok bool, err error)
	Set(ctx context.Context, rebate *models.Rebate) error
	Invalidate(ctx context.Context, id domain.SocietyID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Transactor runs fn in one storage transaction. The context passed to fn
// carries the transaction for stores that honour it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Service evaluates compliance and serves the derived read models.
type Service struct {
	records        Store
	societies      SocietyLookup
	proofs         ProofHistory
	cache          RebateCache
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	tx             Transactor
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRebateCache serves Rebate through cache. Evaluations invalidate it.
func WithRebateCache(cache RebateCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithTransactor makes the history read and the upsert of an evaluation
// share one transaction.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func New(records Store, societies SocietyLookup, proofs ProofHistory, opts ...Option) (*Service, error) {
	if records == nil {
		return nil, errors.New("compliance store is required")
	}
	if societies == nil {
		return nil, errors.New("society lookup is required")
	}
	if proofs == nil {
		return nil, errors.New("proof history is required")
	}
	s := &Service{
		records:   records,
		societies: societies,
		proofs:    proofs,
		logger:    slog.Default(),
		tracer:    otel.Tracer("greentax/compliance"),
		tx:        noTx{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Evaluate recomputes the society's record for the current period.
func (s *Service) Evaluate(ctx context.Context, societyID domain.SocietyID) (*models.Record, error) {
	return s.EvaluateAt(ctx, societyID, requestcontext.Now(ctx))
}

// EvaluateAt recomputes and upserts the record for the period containing now.
// Counts cover the society's full proof history; the tier depends only on the
// days since the latest proof. An unknown society aborts before any write.
func (s *Service) EvaluateAt(ctx context.Context, societyID domain.SocietyID, now time.Time) (record *models.Record, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "compliance.Evaluate", trace.WithAttributes(
		attribute.String("society_id", societyID.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.MessageOf(err))
		} else {
			span.SetAttributes(attribute.String("compliance.tier", record.Tier.String()))
		}
		span.End()
	}()

	if _, err := s.loadSociety(ctx, societyID); err != nil {
		return nil, err
	}

	var days int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		record, days, txErr = s.evaluate(ctx, societyID, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, societyID)
	s.metrics.ObserveEvaluation(record.Tier.String(), time.Since(start))
	s.logger.InfoContext(ctx, "compliance evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"society_id", societyID,
		"tier", record.Tier,
		"days_since_last_proof", days,
	)
	if s.auditPublisher != nil {
		event := audit.Event{
			Type:      audit.EventComplianceEvaluated,
			SocietyID: societyID,
			Status:    record.Tier.String(),
		}
		if actor := requestcontext.UserID(ctx); !actor.IsNil() {
			event.ActorID = &actor
		}
		_ = s.auditPublisher.Emit(ctx, event)
	}
	return record, nil
}

// evaluate reads the history and upserts the period record.
func (s *Service) evaluate(ctx context.Context, societyID domain.SocietyID, now time.Time) (*models.Record, int, error) {
	proofs, err := s.proofs.History(ctx, societyID)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proof history")
	}

	var (
		lastProofAt *time.Time
		counts      models.Counts
	)
	for _, p := range proofs {
		if lastProofAt == nil || p.CapturedAt.After(*lastProofAt) {
			captured := p.CapturedAt
			lastProofAt = &captured
		}
		switch p.Status {
		case proofmodels.StatusVerified:
			counts.Verified++
		case proofmodels.StatusFlagged:
			counts.Flagged++
		case proofmodels.StatusRejected:
			counts.Rejected++
		}
	}
	days := models.DaysSince(lastProofAt, now)
	tier, rebate, score := models.Classify(days)

	record, err := s.records.Upsert(ctx, &models.Record{
		SocietyID:          societyID,
		Period:             period.KeyFor(now),
		Tier:               tier,
		RebatePercent:      rebate,
		Score:              score,
		ProofCount:         len(proofs),
		LastProofAt:        lastProofAt,
		DaysSinceLastProof: days,
		Counts:             counts,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, 0, dErrors.New(dErrors.CodeNotFound, "society not found")
		}
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store compliance record")
	}
	return record, days, nil
}

// Current returns the society's record for the period containing the request
// time, or CodeNotFound when it has not been evaluated this period.
func (s *Service) Current(ctx context.Context, societyID domain.SocietyID) (*models.Record, error) {
	if _, err := s.loadSociety(ctx, societyID); err != nil {
		return nil, err
	}
	record, err := s.records.FindByPeriod(ctx, societyID, period.KeyFor(requestcontext.Now(ctx)))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "society has not been evaluated this period")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance record")
	}
	return record, nil
}

// EvaluatedCount is the number of stored compliance records.
func (s *Service) EvaluatedCount(ctx context.Context) (int, error) {
	n, err := s.records.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count compliance records")
	}
	return n, nil
}

// Rebate projects the society's latest record. A society that was never
// evaluated gets RED with a zero rebate and an explanatory message.
func (s *Service) Rebate(ctx context.Context, societyID domain.SocietyID) (*models.Rebate, error) {
	society, err := s.loadSociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, societyID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "rebate cache read failed",
				"society_id", societyID,
				"error", err,
			)
		case ok:
			s.metrics.IncrementCacheHit()
			return cached, nil
		default:
			s.metrics.IncrementCacheMiss()
		}
	}

	rebate := &models.Rebate{
		SocietyID:   society.ID,
		SocietyName: society.Name,
		Ward:        society.Ward,
	}
	latest, err := s.records.LatestBySociety(ctx, societyID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		rebate.Tier = models.TierRed
		rebate.RebatePercent = models.TierRebate(models.TierRed)
		rebate.DaysSinceLastProof = models.NeverSubmittedDays
		rebate.Message = models.NoDataMessage
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance record")
	default:
		key := latest.Period
		rebate.Tier = latest.Tier
		rebate.RebatePercent = models.TierRebate(latest.Tier)
		rebate.Score = latest.Score
		rebate.ProofCount = latest.ProofCount
		rebate.LastProofAt = latest.LastProofAt
		rebate.DaysSinceLastProof = latest.DaysSinceLastProof
		rebate.Period = &key
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rebate); err != nil {
			s.logger.WarnContext(ctx, "rebate cache write failed",
				"society_id", societyID,
				"error", err,
			)
		}
	}
	return rebate, nil
}

// ResidentSummary is what a resident sees for their society.
type ResidentSummary struct {
	Society      *societymodels.Society
	Rebate       *models.Rebate
	RecentProofs []*proofmodels.Proof
}

// ResidentSummary returns the society, its rebate and its most recent proofs.
func (s *Service) ResidentSummary(ctx context.Context, societyID domain.SocietyID) (*ResidentSummary, error) {
	society, err := s.loadSociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	rebate, err := s.Rebate(ctx, societyID)
	if err != nil {
		return nil, err
	}
	recent, err := s.proofs.Recent(ctx, societyID, RecentProofLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recent proofs")
	}
	return &ResidentSummary{Society: society, Rebate: rebate, RecentProofs: recent}, nil
}

// Heatmap aggregates every active society's latest record by ward.
func (s *Service) Heatmap(ctx context.Context) (*models.Heatmap, error) {
	societies, err := s.societies.ListActive(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list societies")
	}
	latest, err := s.records.LatestPerSociety(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance records")
	}

	points := make([]models.SocietyHeat, 0, len(societies))
	for _, society := range societies {
		points = append(points, models.HeatFor(society.ID, society.Name, society.Ward, society.Location, latest[society.ID]))
	}
	heatmap := models.BuildHeatmap(points)
	return &heatmap, nil
}

// TierBreakdown counts active societies by the tier of their latest record.
// Societies never evaluated count as RED.
func (s *Service) TierBreakdown(ctx context.Context) (map[models.Tier]int, error) {
	heatmap, err := s.Heatmap(ctx)
	if err != nil {
		return nil, err
	}
	out := map[models.Tier]int{models.TierGreen: 0, models.TierYellow: 0, models.TierRed: 0}
	for _, point := range heatmap.Societies {
		out[point.Tier]++
	}
	return out, nil
}

func (s *Service) loadSociety(ctx context.Context, societyID domain.SocietyID) (*societymodels.Society, error) {
	society, err := s.societies.Get(ctx, societyID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "society not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load society")
	}
	return society, nil
}

func (s *Service) invalidate(ctx context.Context, societyID domain.SocietyID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, societyID); err != nil {
		s.logger.WarnContext(ctx, "rebate cache invalidation failed",
			"society_id", societyID,
			"error", err,
		)
	}
}
