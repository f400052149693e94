package service

import (
	"context"
	"errors"
	"log/slog"

	"greentax/internal/audit"
	"greentax/internal/society/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/platform/sentinel"
	"greentax/pkg/requestcontext"
)

// Store is the persistence port for societies.
type Store interface {
	Create(ctx context.Context, society *models.Society) error
	FindByID(ctx context.Context, id domain.SocietyID) (*models.Society, error)
	ListActive(ctx context.Context) ([]*models.Society, error)
	Execute(ctx context.Context, id domain.SocietyID, validate func(*models.Society) error, mutate func(*models.Society)) (*models.Society, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the society registry.
type Service struct {
	societies      Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(s *Service)

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

// New constructs a Service.
func New(societies Store, opts ...Option) *Service {
	s := &Service{societies: societies, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new active society.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.Society, error) {
	society, err := models.NewSociety(domain.NewSocietyID(), reg, requestcontext.Now(ctx))
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.societies.Create(ctx, society); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "a society with this tax number is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register society")
	}

	s.logger.InfoContext(ctx, "society registered",
		"request_id", requestcontext.RequestID(ctx),
		"society_id", society.ID,
		"ward", society.Ward,
	)
	s.emit(ctx, audit.Event{Type: audit.EventSocietyRegistered, SocietyID: society.ID})
	return society, nil
}

// Get returns a society by ID regardless of its active flag.
func (s *Service) Get(ctx context.Context, id domain.SocietyID) (*models.Society, error) {
	society, err := s.societies.FindByID(ctx, id)
	if err != nil {
		return nil, wrapSocietyErr(err, "failed to load society")
	}
	return society, nil
}

// ListActive returns every active society ordered by ward and name.
func (s *Service) ListActive(ctx context.Context) ([]*models.Society, error) {
	societies, err := s.societies.ListActive(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list societies")
	}
	return societies, nil
}

// Deactivate soft-deletes a society. Deactivating twice is a conflict.
//
// Uses the Execute callback pattern for atomic validate-then-mutate.
func (s *Service) Deactivate(ctx context.Context, id domain.SocietyID) (*models.Society, error) {
	now := requestcontext.Now(ctx)
	society, err := s.societies.Execute(ctx, id,
		func(m *models.Society) error {
			if err := m.CanDeactivate(); err != nil {
				return dErrors.New(dErrors.CodeConflict, "society is already inactive")
			}
			return nil
		},
		func(m *models.Society) {
			m.ApplyDeactivation(now)
		},
	)
	if err != nil {
		return nil, wrapSocietyErr(err, "failed to deactivate society")
	}

	s.logger.InfoContext(ctx, "society deactivated",
		"request_id", requestcontext.RequestID(ctx),
		"society_id", society.ID,
	)
	s.emit(ctx, audit.Event{Type: audit.EventSocietyDeactivated, SocietyID: society.ID})
	return society, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if actor := requestcontext.UserID(ctx); !actor.IsNil() {
		event.ActorID = &actor
	}
	// Publisher logs sink failures; the registry change already happened.
	_ = s.auditPublisher.Emit(ctx, event)
}

func wrapSocietyErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "society not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
