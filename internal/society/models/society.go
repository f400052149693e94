package models

import (
	"strings"
	"time"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
)

// Society is a registered housing society: the compliance subject.
//
// Invariants:
//   - Name, Ward and TaxNumber are non-empty
//   - Location is a valid coordinate; it is the geo-fence centre for proofs
//   - Societies are never deleted; deactivation is a soft flag
//   - Deactivation happens at most once (active → inactive)
type Society struct {
	ID         domain.SocietyID `json:"id"`
	Name       string           `json:"name"`
	Ward       string           `json:"ward"`
	Location   geo.Coordinate   `json:"location"`
	TaxNumber  string           `json:"tax_number"`
	Address    string           `json:"address,omitempty"`
	TotalUnits int              `json:"total_units"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Registration holds the caller-supplied fields of a new society.
type Registration struct {
	Name       string
	Ward       string
	Location   geo.Coordinate
	TaxNumber  string
	Address    string
	TotalUnits int
}

// NewSociety validates a registration and returns an active society.
func NewSociety(societyID domain.SocietyID, reg Registration, now time.Time) (*Society, error) {
	name := strings.TrimSpace(reg.Name)
	ward := strings.TrimSpace(reg.Ward)
	taxNumber := strings.ToUpper(strings.TrimSpace(reg.TaxNumber))

	switch {
	case name == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "society name is required")
	case len(name) > 200:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "society name must be 200 characters or less")
	case ward == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "ward is required")
	case taxNumber == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tax number is required")
	case reg.TotalUnits < 0:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "total units cannot be negative")
	}
	if err := reg.Location.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "society location is not a valid coordinate")
	}

	return &Society{
		ID:         societyID,
		Name:       name,
		Ward:       ward,
		Location:   reg.Location,
		TaxNumber:  taxNumber,
		Address:    strings.TrimSpace(reg.Address),
		TotalUnits: reg.TotalUnits,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanDeactivate checks if the society can transition to inactive.
// Use with ApplyDeactivation in Execute callbacks.
func (s *Society) CanDeactivate() error {
	if !s.Active {
		return dErrors.New(dErrors.CodeInvariantViolation, "society is already inactive")
	}
	return nil
}

// ApplyDeactivation marks the society inactive. Call CanDeactivate first.
func (s *Society) ApplyDeactivation(now time.Time) {
	s.Active = false
	s.UpdatedAt = now
}
