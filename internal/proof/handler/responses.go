package handler

import (
	"time"

	"greentax/internal/proof/models"
	"greentax/pkg/geo"
)

// ProofResponse is the wire form of a proof.
type ProofResponse struct {
	ID          string         `json:"id"`
	SocietyID   string         `json:"society_id"`
	ImageURL    string         `json:"image_url"`
	Fingerprint string         `json:"image_fingerprint"`
	CapturedAt  time.Time      `json:"captured_at"`
	GeoLocation geo.Coordinate `json:"geo_location"`
	SubmittedBy string         `json:"submitted_by,omitempty"`
	DuplicateOf string         `json:"duplicate_of,omitempty"`
	Status      string         `json:"status"`
	Reason      string         `json:"reason"`
	ReviewedBy  string         `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
}

// ValidationResponse reports the verdict for a fresh submission.
type ValidationResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// SubmitResponse is returned by POST /proofs.
type SubmitResponse struct {
	Proof      ProofResponse      `json:"proof"`
	Validation ValidationResponse `json:"validation"`
}

// PendingResponse lists FLAGGED proofs awaiting review.
type PendingResponse struct {
	Proofs []ProofResponse `json:"proofs"`
	Count  int             `json:"count"`
}

func FromProof(p *models.Proof) ProofResponse {
	resp := ProofResponse{
		ID:          p.ID.String(),
		SocietyID:   p.SocietyID.String(),
		ImageURL:    p.ImageURL,
		Fingerprint: p.Fingerprint,
		CapturedAt:  p.CapturedAt,
		GeoLocation: p.Coordinate,
		Status:      p.Status.String(),
		Reason:      p.Reason,
		ReviewedAt:  p.ReviewedAt,
	}
	if p.SubmittedBy != nil {
		resp.SubmittedBy = p.SubmittedBy.String()
	}
	if p.DuplicateOf != nil {
		resp.DuplicateOf = p.DuplicateOf.String()
	}
	if p.ReviewedBy != nil {
		resp.ReviewedBy = p.ReviewedBy.String()
	}
	return resp
}

func FromVerdict(v models.Verdict) ValidationResponse {
	return ValidationResponse{Status: v.Status.String(), Reason: v.Reason}
}

func FromProofs(proofs []*models.Proof) []ProofResponse {
	out := make([]ProofResponse, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, FromProof(p))
	}
	return out
}
