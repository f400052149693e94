package handler

import (
	"strings"

	"greentax/pkg/domain"
)

// EvaluateRequest is the body of POST /compliance/evaluate.
type EvaluateRequest struct {
	SocietyID string `json:"society_id"`

	societyID domain.SocietyID
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	id, err := domain.ParseSocietyID(strings.TrimSpace(r.SocietyID))
	if err != nil {
		return err
	}
	r.societyID = id
	return nil
}
