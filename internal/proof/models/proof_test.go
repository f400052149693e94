package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
	"greentax/pkg/platform/sentinel"
)

func newCore() Core {
	return Core{
		ID:          domain.NewProofID(),
		SocietyID:   domain.NewSocietyID(),
		ImageURL:    "/uploads/abc.jpg",
		Fingerprint: "abc",
		CapturedAt:  time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC),
		Coordinate:  geo.Coordinate{Lat: 19.1, Lng: 72.8},
	}
}

func TestNewProof(t *testing.T) {
	original := domain.NewProofID()
	p, err := NewProof(newCore(), Verdict{Status: StatusRejected, Reason: "dup", DuplicateOf: &original})
	require.NoError(t, err)
	assert.True(t, p.IsDuplicate())
	assert.Equal(t, original, *p.DuplicateOf)
	assert.Equal(t, StatusRejected, p.Status)

	core := newCore()
	core.Fingerprint = ""
	_, err = NewProof(core, Verdict{Status: StatusVerified})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewProof(newCore(), Verdict{Status: "MAYBE"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestReviewTransitions(t *testing.T) {
	now := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)
	reviewer := domain.UserID(uuid.New())

	for _, status := range []Status{StatusVerified, StatusRejected} {
		p, err := NewProof(newCore(), Verdict{Status: status})
		require.NoError(t, err)
		assert.Error(t, p.CanReview(), "%s proofs are not reviewable", status)
	}

	p, err := NewProof(newCore(), Verdict{Status: StatusFlagged, Reason: "far"})
	require.NoError(t, err)
	require.NoError(t, p.CanReview())

	ApplyApproval(&p.Review, reviewer, now)
	assert.Equal(t, StatusVerified, p.Status)
	assert.Equal(t, ReasonManuallyApproved, p.Reason)
	assert.Equal(t, reviewer, *p.ReviewedBy)
	assert.Equal(t, now, *p.ReviewedAt)
	assert.ErrorIs(t, p.CanReview(), sentinel.ErrInvalidState, "a proof is reviewed at most once")
}

func TestApplyRejectionDefaultReason(t *testing.T) {
	var r Review
	ApplyRejection(&r, domain.UserID(uuid.New()), "  ", time.Now())
	assert.Equal(t, ReasonManuallyRejected, r.Reason)

	ApplyRejection(&r, domain.UserID(uuid.New()), "blurry photo", time.Now())
	assert.Equal(t, "blurry photo", r.Reason)
	assert.Equal(t, StatusRejected, r.Status)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("flagged")
	require.NoError(t, err)
	assert.Equal(t, StatusFlagged, s)

	_, err = ParseStatus("pending")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
