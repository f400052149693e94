// Package geo holds the coordinate type and great-circle helpers shared by
// the society registry and the proof validation engine.
package geo

import (
	"errors"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate enforces lat ∈ [-90,90] and lng ∈ [-180,180].
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return ErrInvalidCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance returns the haversine great-circle distance between a and b in km.
func Distance(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// WithinRadius reports whether b lies within radiusKm of a (inclusive).
func WithinRadius(a, b Coordinate, radiusKm float64) bool {
	return Distance(a, b) <= radiusKm
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
