package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/geo"
)

// SubmitForm holds the text fields of a multipart proof upload.
type SubmitForm struct {
	SocietyID   string
	GeoLocation string
	Lat         string
	Lng         string
}

// Parse resolves the society and the coordinate. geo_location (a JSON
// object) wins over separate lat/lng fields when both are sent.
func (f SubmitForm) Parse() (domain.SocietyID, geo.Coordinate, error) {
	societyID, err := domain.ParseSocietyID(strings.TrimSpace(f.SocietyID))
	if err != nil {
		return domain.SocietyID{}, geo.Coordinate{}, err
	}

	var coord geo.Coordinate
	switch {
	case strings.TrimSpace(f.GeoLocation) != "":
		var raw struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if err := json.Unmarshal([]byte(f.GeoLocation), &raw); err != nil {
			return domain.SocietyID{}, geo.Coordinate{}, dErrors.Wrap(err, dErrors.CodeValidation, "geo_location must be a JSON object with lat and lng")
		}
		// missing keys and null decode to nil; a zero coordinate must be explicit
		if raw.Lat == nil || raw.Lng == nil {
			return domain.SocietyID{}, geo.Coordinate{}, dErrors.New(dErrors.CodeValidation, "geo_location must include both lat and lng")
		}
		coord = geo.Coordinate{Lat: *raw.Lat, Lng: *raw.Lng}
	case f.Lat != "" && f.Lng != "":
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(f.Lat), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(f.Lng), 64)
		if latErr != nil || lngErr != nil {
			return domain.SocietyID{}, geo.Coordinate{}, dErrors.New(dErrors.CodeValidation, "lat and lng must be numbers")
		}
		coord = geo.Coordinate{Lat: lat, Lng: lng}
	default:
		return domain.SocietyID{}, geo.Coordinate{}, dErrors.New(dErrors.CodeValidation, "geo_location is required")
	}

	if err := coord.Validate(); err != nil {
		return domain.SocietyID{}, geo.Coordinate{}, dErrors.Wrap(err, dErrors.CodeValidation, "geo_location must have lat in [-90,90] and lng in [-180,180]")
	}
	return societyID, coord, nil
}

// RejectRequest is the optional body of POST /admin/proofs/{proofID}/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RejectRequest) Validate() error {
	if r == nil {
		return nil
	}
	if len(r.Reason) > 500 {
		return dErrors.New(dErrors.CodeValidation, "reason must be at most 500 characters")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}
