package handler

import (
	"strings"

	"greentax/internal/society/models"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
)

// RegisterRequest is the HTTP request body for POST /societies.
type RegisterRequest struct {
	Name       string          `json:"name"`
	Ward       string          `json:"ward"`
	Location   *geo.Coordinate `json:"location"`
	TaxNumber  string          `json:"tax_number"`
	Address    string          `json:"address"`
	TotalUnits int             `json:"total_units"`
}

// Validate normalises and checks the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.Name) > 200 || len(r.Ward) > 64 || len(r.TaxNumber) > 64 || len(r.Address) > 500 {
		return dErrors.New(dErrors.CodeValidation, "one or more fields exceed their maximum length")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Ward = strings.TrimSpace(r.Ward)
	r.TaxNumber = strings.TrimSpace(r.TaxNumber)
	r.Address = strings.TrimSpace(r.Address)

	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Ward == "" {
		return dErrors.New(dErrors.CodeValidation, "ward is required")
	}
	if r.TaxNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "tax_number is required")
	}
	if r.Location == nil {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	if err := r.Location.Validate(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "location must have lat in [-90,90] and lng in [-180,180]")
	}
	if r.TotalUnits < 0 {
		return dErrors.New(dErrors.CodeValidation, "total_units cannot be negative")
	}
	return nil
}

// Registration converts the validated request into the domain input.
func (r *RegisterRequest) Registration() models.Registration {
	return models.Registration{
		Name:       r.Name,
		Ward:       r.Ward,
		Location:   *r.Location,
		TaxNumber:  r.TaxNumber,
		Address:    r.Address,
		TotalUnits: r.TotalUnits,
	}
}
