package models

import (
	"strings"
	"time"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
	"greentax/pkg/platform/sentinel"
)

// Status is a proof's verdict.
type Status string

const (
	StatusVerified Status = "VERIFIED"
	StatusFlagged  Status = "FLAGGED"
	StatusRejected Status = "REJECTED"
)

// Review reasons written by an administrator's override.
const (
	ReasonManuallyApproved = "Manually approved by admin"
	ReasonManuallyRejected = "Rejected by admin"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusVerified, StatusFlagged, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus validates a status string (case-insensitive).
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status must be one of VERIFIED, FLAGGED, REJECTED")
	}
	return status, nil
}

// Verdict is the outcome of validating one submission.
type Verdict struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
	// DuplicateOf is the original proof when the image was seen before.
	DuplicateOf *domain.ProofID `json:"duplicate_of,omitempty"`
}

// Core holds the fields fixed at creation. Nothing updates them afterwards.
type Core struct {
	ID          domain.ProofID
	SocietyID   domain.SocietyID
	ImageURL    string
	Fingerprint string
	CapturedAt  time.Time
	Coordinate  geo.Coordinate
	SubmittedBy *domain.UserID
	// DuplicateOf links a rejected re-upload to the original proof with the
	// same fingerprint. Originals leave it nil.
	DuplicateOf *domain.ProofID
}

// Review is the only mutable part of a proof: the verdict and who last set it.
type Review struct {
	Status     Status
	Reason     string
	ReviewedBy *domain.UserID
	ReviewedAt *time.Time
}

// Proof is one append-only submission log entry.
//
// Invariants:
//   - Core is immutable after construction
//   - Review changes at most once, and only from FLAGGED to VERIFIED or REJECTED
//   - Among proofs sharing a fingerprint, exactly one has DuplicateOf == nil
type Proof struct {
	Core
	Review
}

// NewProof builds a proof from its core fields and the validation verdict.
func NewProof(core Core, verdict Verdict) (*Proof, error) {
	if core.ID.IsNil() || core.SocietyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "proof and society IDs are required")
	}
	if core.Fingerprint == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "image fingerprint is required")
	}
	if !verdict.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "verdict status is invalid")
	}
	core.DuplicateOf = verdict.DuplicateOf
	return &Proof{
		Core:   core,
		Review: Review{Status: verdict.Status, Reason: verdict.Reason},
	}, nil
}

// IsDuplicate reports whether the proof re-uploaded an earlier image.
func (p *Proof) IsDuplicate() bool {
	return p.DuplicateOf != nil
}

// CanReview checks the proof is awaiting its single manual review.
func (p *Proof) CanReview() error {
	if p.Status != StatusFlagged || p.ReviewedAt != nil {
		return dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeInvariantViolation, "only unreviewed FLAGGED proofs can be reviewed")
	}
	return nil
}

// ApplyApproval marks the review overlay VERIFIED. Call CanReview first.
func ApplyApproval(r *Review, reviewer domain.UserID, now time.Time) {
	r.Status = StatusVerified
	r.Reason = ReasonManuallyApproved
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
}

// ApplyRejection marks the review overlay REJECTED. An empty reason falls
// back to ReasonManuallyRejected. Call CanReview first.
func ApplyRejection(r *Review, reviewer domain.UserID, reason string, now time.Time) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = ReasonManuallyRejected
	}
	r.Status = StatusRejected
	r.Reason = reason
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &now
}
