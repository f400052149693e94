package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	mumbai := Coordinate{Lat: 19.0760, Lng: 72.8777}

	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(mumbai, mumbai))
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		d := Distance(Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 1, Lng: 0})
		assert.InDelta(t, 111.19, d, 0.01)
	})

	t.Run("symmetric", func(t *testing.T) {
		pune := Coordinate{Lat: 18.5204, Lng: 73.8567}
		assert.InDelta(t, Distance(mumbai, pune), Distance(pune, mumbai), 1e-9)
		assert.InDelta(t, 120, Distance(mumbai, pune), 5)
	})
}

func TestWithinRadius(t *testing.T) {
	origin := Coordinate{Lat: 19.0760, Lng: 72.8777}
	// 0.004 degrees of latitude is roughly 445 m, 0.005 roughly 556 m.
	near := Coordinate{Lat: origin.Lat + 0.004, Lng: origin.Lng}
	far := Coordinate{Lat: origin.Lat + 0.005, Lng: origin.Lng}

	assert.True(t, WithinRadius(origin, origin, 0.5))
	assert.True(t, WithinRadius(origin, near, 0.5))
	assert.False(t, WithinRadius(origin, far, 0.5))
}

func TestCoordinateValidate(t *testing.T) {
	valid := []Coordinate{{0, 0}, {90, 180}, {-90, -180}, {19.07, 72.87}}
	for _, c := range valid {
		assert.NoError(t, c.Validate(), "%v", c)
	}

	invalid := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
	}
	for _, c := range invalid {
		assert.ErrorIs(t, c.Validate(), ErrInvalidCoordinate, "%v", c)
	}
}
