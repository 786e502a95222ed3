package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKnownPair(t *testing.T) {
	// Two points roughly 1 km apart in Mato Grosso, Brazil.
	a := Point{Latitude: -13.083428636250812, Longitude: -55.93346064778029}
	b := Point{Latitude: -13.077074752983124, Longitude: -55.92686241358865}

	d := Distance(a, b)
	assert.InDelta(t, 1004.93, d, 0.5)
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Latitude: 51.5074, Longitude: -0.1278}
	b := Point{Latitude: 48.8566, Longitude: 2.3522}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 0.0001)
}

func TestDistanceZero(t *testing.T) {
	p := Point{Latitude: 40.7128, Longitude: -74.0060}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestBoundingBoxAround(t *testing.T) {
	center := Point{Latitude: 10, Longitude: 20}
	box := BoundingBoxAround(center, 111) // one degree of latitude

	assert.InDelta(t, 9, box.MinLat, 1e-9)
	assert.InDelta(t, 11, box.MaxLat, 1e-9)

	// Longitude span widens by 1/cos(lat).
	expectedLonDelta := 1 / math.Cos(10*math.Pi/180)
	assert.InDelta(t, 20-expectedLonDelta, box.MinLon, 1e-9)
	assert.InDelta(t, 20+expectedLonDelta, box.MaxLon, 1e-9)
}

func TestBoundingBoxContains(t *testing.T) {
	center := Point{Latitude: 52.52, Longitude: 13.405}
	box := BoundingBoxAround(center, 10)

	assert.True(t, box.Contains(center))
	assert.True(t, box.Contains(Point{Latitude: 52.55, Longitude: 13.45}))
	assert.False(t, box.Contains(Point{Latitude: 53.0, Longitude: 13.405}))
	assert.False(t, box.Contains(Point{Latitude: 52.52, Longitude: 14.0}))
}

func TestBoundingBoxEnclosesRadius(t *testing.T) {
	// Any point within radius must fall inside the box (the box is the coarse
	// filter, so it must never cut off an admissible candidate).
	center := Point{Latitude: -23.55, Longitude: -46.63}
	radiusKm := 15.0
	box := BoundingBoxAround(center, radiusKm)

	offsets := []Point{
		{Latitude: center.Latitude + 0.1, Longitude: center.Longitude},
		{Latitude: center.Latitude - 0.1, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude + 0.1},
		{Latitude: center.Latitude, Longitude: center.Longitude - 0.1},
	}
	for _, p := range offsets {
		if Distance(center, p) <= radiusKm*1000 {
			assert.True(t, box.Contains(p), "point within radius must be inside box: %+v", p)
		}
	}
}
