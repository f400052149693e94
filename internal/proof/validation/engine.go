// Package validation decides whether a submitted proof is trustworthy.
//
// The engine runs three checks in a fixed order. Geo-fence and freshness
// failures accumulate into a single FLAGGED verdict; a duplicate fingerprint
// overrides everything with REJECTED. Verdicts are business outcomes, not
// errors: Validate only returns an error when its inputs break the contract
// (bad coordinate, missing fingerprint) or the duplicate lookup fails.
package validation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"greentax/internal/proof/metrics"
	"greentax/internal/proof/models"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
	"greentax/pkg/period"
	"greentax/pkg/platform/sentinel"
)

const (
	// DefaultRadiusKm is the geo-fence around a society's registered point.
	DefaultRadiusKm = 0.5
	// DefaultFreshness bounds |now - capture time|.
	DefaultFreshness = 30 * time.Minute
)

// Verdict reasons.
const (
	ReasonPassed          = "All validation checks passed"
	ReasonOutsideRadius   = "Location is outside acceptable radius (500m)"
	ReasonNotFresh        = "Timestamp is not fresh (>30 minutes old)"
	reasonNotFreshAppend  = "; Timestamp not fresh"
	ReasonDuplicateUpload = "Duplicate image detected. This proof was already submitted."
)

// Input-contract violations. Both surface as CodeValidation domain errors.
var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrMissingFingerprint = errors.New("missing image fingerprint")
)

// FingerprintLookup finds the original proof for a fingerprint, returning
// sentinel.ErrNotFound when the image has never been submitted.
type FingerprintLookup interface {
	FindOriginalByFingerprint(ctx context.Context, fingerprint string) (*models.Proof, error)
}

// Candidate is what the engine needs from one submission. CapturedAt is the
// server-assigned time; client-reported timestamps never reach the engine.
type Candidate struct {
	Coordinate  geo.Coordinate
	CapturedAt  time.Time
	Fingerprint string
}

// Engine validates proof submissions.
type Engine struct {
	lookup    FingerprintLookup
	radiusKm  float64
	freshness time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRadiusKm overrides the geo-fence radius.
func WithRadiusKm(km float64) Option {
	return func(e *Engine) {
		if km > 0 {
			e.radiusKm = km
		}
	}
}

// WithFreshness overrides the freshness window.
func WithFreshness(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.freshness = d
		}
	}
}

func New(lookup FingerprintLookup, opts ...Option) *Engine {
	e := &Engine{
		lookup:    lookup,
		radiusKm:  DefaultRadiusKm,
		freshness: DefaultFreshness,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks c against the society's registered location at instant now.
func (e *Engine) Validate(ctx context.Context, c Candidate, society geo.Coordinate, now time.Time) (models.Verdict, error) {
	if c.Coordinate.Validate() != nil || society.Validate() != nil {
		return models.Verdict{}, dErrors.Wrap(ErrInvalidCoordinate, dErrors.CodeValidation,
			"coordinates must have lat in [-90,90] and lng in [-180,180]")
	}
	if c.Fingerprint == "" {
		return models.Verdict{}, dErrors.Wrap(ErrMissingFingerprint, dErrors.CodeValidation, "image fingerprint is required")
	}

	verdict := models.Verdict{Status: models.StatusVerified, Reason: ReasonPassed}

	if distance := geo.Distance(c.Coordinate, society); distance > e.radiusKm {
		verdict = models.Verdict{Status: models.StatusFlagged, Reason: ReasonOutsideRadius}
		e.logger.DebugContext(ctx, "proof outside geo-fence",
			"distance_km", distance,
			"radius_km", e.radiusKm,
		)
	}

	if elapsed := period.MinutesBetween(now, c.CapturedAt); elapsed > e.freshness.Minutes() {
		if verdict.Status == models.StatusFlagged {
			verdict.Reason += reasonNotFreshAppend
		} else {
			verdict = models.Verdict{Status: models.StatusFlagged, Reason: ReasonNotFresh}
		}
		e.logger.DebugContext(ctx, "proof timestamp not fresh",
			"elapsed_minutes", elapsed,
		)
	}

	original, err := e.lookup.FindOriginalByFingerprint(ctx, c.Fingerprint)
	switch {
	case err == nil:
		originalID := original.ID
		verdict = models.Verdict{
			Status:      models.StatusRejected,
			Reason:      ReasonDuplicateUpload,
			DuplicateOf: &originalID,
		}
		e.logger.DebugContext(ctx, "duplicate image fingerprint",
			"original_proof_id", originalID,
		)
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return models.Verdict{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check for duplicate image")
	}

	e.metrics.IncrementVerdict(verdict.Status.String())
	return verdict, nil
}

// DuplicateVerdict is the verdict for an upload whose fingerprint belongs to original.
func DuplicateVerdict(original domain.ProofID) models.Verdict {
	return models.Verdict{
		Status:      models.StatusRejected,
		Reason:      ReasonDuplicateUpload,
		DuplicateOf: &original,
	}
}
