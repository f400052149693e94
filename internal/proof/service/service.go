package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"greentax/internal/audit"
	"greentax/internal/proof/metrics"
	"greentax/internal/proof/models"
	"greentax/internal/proof/validation"
	societymodels "greentax/internal/society/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
	"greentax/pkg/platform/sentinel"
	"greentax/pkg/requestcontext"
)

// Store is the persistence port for the proof log. Review is the only
// mutation and it reaches just the overlay.
type Store interface {
	Create(ctx context.Context, proof *models.Proof) error
	FindByID(ctx context.Context, id domain.ProofID) (*models.Proof, error)
	FindOriginalByFingerprint(ctx context.Context, fingerprint string) (*models.Proof, error)
	ListBySociety(ctx context.Context, societyID domain.SocietyID, limit int) ([]*models.Proof, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Proof, error)
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
	Review(ctx context.Context, id domain.ProofID, validate func(*models.Proof) error, mutate func(*models.Review)) (*models.Proof, error)
}

// SocietyLookup resolves the society a proof is submitted for.
type SocietyLookup interface {
	Get(ctx context.Context, id domain.SocietyID) (*societymodels.Society, error)
}

// ImageStore persists the uploaded photo and returns its URL.
type ImageStore interface {
	Save(ctx context.Context, fingerprint, fileName string, content []byte) (string, error)
}

// Validator produces the verdict for a candidate proof.
type Validator interface {
	Validate(ctx context.Context, c validation.Candidate, society geo.Coordinate, now time.Time) (models.Verdict, error)
}

// Scheduler requests a background compliance recompute. It must not block.
type Scheduler interface {
	Schedule(ctx context.Context, societyID domain.SocietyID)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs proof submission and manual review.
type Service struct {
	proofs         Store
	societies      SocietyLookup
	images         ImageStore
	validator      Validator
	scheduler      Scheduler
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
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

// WithScheduler sets where compliance recomputes are requested after a
// submission or review.
func WithScheduler(scheduler Scheduler) Option {
	return func(s *Service) {
		s.scheduler = scheduler
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(proofs Store, societies SocietyLookup, images ImageStore, validator Validator, opts ...Option) (*Service, error) {
	if proofs == nil {
		return nil, errors.New("proof store is required")
	}
	if societies == nil {
		return nil, errors.New("society lookup is required")
	}
	if images == nil {
		return nil, errors.New("image store is required")
	}
	if validator == nil {
		return nil, errors.New("validator is required")
	}
	s := &Service{
		proofs:    proofs,
		societies: societies,
		images:    images,
		validator: validator,
		logger:    slog.Default(),
		tracer:    otel.Tracer("greentax/proof"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SubmitRequest is one uploaded proof. The capture time is never taken from
// the client; Submit stamps it from the request clock.
type SubmitRequest struct {
	SocietyID   domain.SocietyID
	Coordinate  geo.Coordinate
	Image       []byte
	FileName    string
	SubmittedBy *domain.UserID
}

// SubmitResult is the stored proof and the verdict that produced it.
type SubmitResult struct {
	Proof   *models.Proof
	Verdict models.Verdict
}

// Fingerprint is the hex SHA-256 of the raw image bytes.
func Fingerprint(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// Submit validates and records a proof, then requests a compliance recompute
// for the society. The recompute is fire-and-forget.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (result *SubmitResult, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "proof.Submit", trace.WithAttributes(
		attribute.String("society_id", req.SocietyID.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.MessageOf(err))
		} else {
			span.SetAttributes(attribute.String("proof.status", result.Verdict.Status.String()))
		}
		span.End()
		s.metrics.ObserveSubmitLatency(time.Since(start))
	}()

	society, err := s.societies.Get(ctx, req.SocietyID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "society not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load society")
	}
	if !society.Active {
		return nil, dErrors.New(dErrors.CodeValidation, "society is not active")
	}
	if len(req.Image) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "image is required")
	}

	now := requestcontext.Now(ctx)
	fingerprint := Fingerprint(req.Image)
	verdict, err := s.validator.Validate(ctx, validation.Candidate{
		Coordinate:  req.Coordinate,
		CapturedAt:  now,
		Fingerprint: fingerprint,
	}, society.Location, now)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.Save(ctx, fingerprint, req.FileName, req.Image)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store image")
	}

	core := models.Core{
		SocietyID:   society.ID,
		ImageURL:    imageURL,
		Fingerprint: fingerprint,
		CapturedAt:  now,
		Coordinate:  req.Coordinate,
		SubmittedBy: req.SubmittedBy,
	}
	proof, verdict, err := s.persist(ctx, core, verdict)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "proof submitted",
		"request_id", requestcontext.RequestID(ctx),
		"society_id", proof.SocietyID,
		"proof_id", proof.ID,
		"status", proof.Status,
	)
	s.emit(ctx, audit.Event{
		Type:      audit.EventProofSubmitted,
		SocietyID: proof.SocietyID,
		ProofID:   &proof.ID,
		Status:    proof.Status.String(),
		Reason:    proof.Reason,
	})
	s.schedule(ctx, proof.SocietyID)

	return &SubmitResult{Proof: proof, Verdict: verdict}, nil
}

// persist writes the proof. When another upload of the same image won the
// race for the original slot after validation ran, the proof is re-recorded
// as a duplicate of the winner.
func (s *Service) persist(ctx context.Context, core models.Core, verdict models.Verdict) (*models.Proof, models.Verdict, error) {
	const maxAttempts = 3
	for attempt := 1; ; attempt++ {
		core.ID = domain.NewProofID()
		proof, err := models.NewProof(core, verdict)
		if err != nil {
			return nil, models.Verdict{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build proof")
		}

		err = s.proofs.Create(ctx, proof)
		if err == nil {
			return proof, verdict, nil
		}
		if !errors.Is(err, sentinel.ErrAlreadyUsed) || attempt == maxAttempts {
			return nil, models.Verdict{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store proof")
		}

		original, findErr := s.proofs.FindOriginalByFingerprint(ctx, core.Fingerprint)
		if findErr != nil {
			if errors.Is(findErr, sentinel.ErrNotFound) {
				// Slot was freed again; retry with the original verdict.
				continue
			}
			return nil, models.Verdict{}, dErrors.Wrap(findErr, dErrors.CodeInternal, "failed to resolve original proof")
		}
		s.metrics.IncrementDuplicateRace()
		s.logger.WarnContext(ctx, "duplicate image detected at write time",
			"request_id", requestcontext.RequestID(ctx),
			"society_id", core.SocietyID,
			"original_proof_id", original.ID,
		)
		verdict = validation.DuplicateVerdict(original.ID)
	}
}

// Get returns a proof by ID.
func (s *Service) Get(ctx context.Context, id domain.ProofID) (*models.Proof, error) {
	proof, err := s.proofs.FindByID(ctx, id)
	if err != nil {
		return nil, wrapProofErr(err, "failed to load proof")
	}
	return proof, nil
}

// ListPending returns FLAGGED proofs awaiting review, newest first.
func (s *Service) ListPending(ctx context.Context) ([]*models.Proof, error) {
	proofs, err := s.proofs.ListByStatus(ctx, models.StatusFlagged)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending proofs")
	}
	return proofs, nil
}

// Recent returns up to limit of the society's proofs, newest capture first.
func (s *Service) Recent(ctx context.Context, societyID domain.SocietyID, limit int) ([]*models.Proof, error) {
	proofs, err := s.proofs.ListBySociety(ctx, societyID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list proofs")
	}
	return proofs, nil
}

// History returns every proof the society has submitted, newest first.
func (s *Service) History(ctx context.Context, societyID domain.SocietyID) ([]*models.Proof, error) {
	return s.Recent(ctx, societyID, 0)
}

// Stats counts proofs per status across all societies.
func (s *Service) Stats(ctx context.Context) (map[models.Status]int, error) {
	counts, err := s.proofs.CountByStatus(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count proofs")
	}
	return counts, nil
}

// Approve overrides a FLAGGED verdict to VERIFIED.
func (s *Service) Approve(ctx context.Context, id domain.ProofID, reviewer domain.UserID) (*models.Proof, error) {
	now := requestcontext.Now(ctx)
	return s.review(ctx, id, func(r *models.Review) {
		models.ApplyApproval(r, reviewer, now)
	})
}

// Reject overrides a FLAGGED verdict to REJECTED. An empty reason records
// the default manual-rejection reason.
func (s *Service) Reject(ctx context.Context, id domain.ProofID, reviewer domain.UserID, reason string) (*models.Proof, error) {
	now := requestcontext.Now(ctx)
	return s.review(ctx, id, func(r *models.Review) {
		models.ApplyRejection(r, reviewer, reason, now)
	})
}

func (s *Service) review(ctx context.Context, id domain.ProofID, mutate func(*models.Review)) (*models.Proof, error) {
	proof, err := s.proofs.Review(ctx, id,
		func(p *models.Proof) error {
			if err := p.CanReview(); err != nil {
				return dErrors.Wrap(err, dErrors.CodeConflict, "only flagged proofs awaiting review can be approved or rejected")
			}
			return nil
		},
		mutate,
	)
	if err != nil {
		return nil, wrapProofErr(err, "failed to review proof")
	}

	s.metrics.IncrementReview(proof.Status.String())
	s.logger.InfoContext(ctx, "proof reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"society_id", proof.SocietyID,
		"proof_id", proof.ID,
		"status", proof.Status,
	)
	s.emit(ctx, audit.Event{
		Type:      audit.EventProofReviewed,
		SocietyID: proof.SocietyID,
		ProofID:   &proof.ID,
		Status:    proof.Status.String(),
		Reason:    proof.Reason,
	})
	s.schedule(ctx, proof.SocietyID)
	return proof, nil
}

func (s *Service) schedule(ctx context.Context, societyID domain.SocietyID) {
	if s.scheduler == nil {
		return
	}
	s.scheduler.Schedule(ctx, societyID)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if actor := requestcontext.UserID(ctx); !actor.IsNil() {
		event.ActorID = &actor
	}
	_ = s.auditPublisher.Emit(ctx, event)
}

func wrapProofErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "proof not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
