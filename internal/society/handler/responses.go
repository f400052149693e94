package handler

import (
	"time"

	"greentax/internal/society/models"
	"greentax/pkg/geo"
)

// SocietyResponse is the wire form of a society.
type SocietyResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Ward       string         `json:"ward"`
	Location   geo.Coordinate `json:"location"`
	TaxNumber  string         `json:"tax_number"`
	Address    string         `json:"address,omitempty"`
	TotalUnits int            `json:"total_units"`
	Active     bool           `json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func FromSociety(s *models.Society) SocietyResponse {
	return SocietyResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		Ward:       s.Ward,
		Location:   s.Location,
		TaxNumber:  s.TaxNumber,
		Address:    s.Address,
		TotalUnits: s.TotalUnits,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
