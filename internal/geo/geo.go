// internal/geo/geo.go
// Geographic primitives for candidate discovery: bounding boxes as a cheap
// pre-filter, haversine for exact distances.

package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// kmPerDegree approximates the length of one degree of latitude (and of
// longitude at the equator).
const kmPerDegree = 111.0

// Point is a WGS84 coordinate pair. Values are assumed to be in valid range;
// this package does not validate them.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BoundingBox is a rectangular latitude/longitude range in degrees.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBoxAround computes the box that encloses a circle of radiusKm around
// center. One degree of latitude is treated as 111 km and one degree of
// longitude as 111 km scaled by cos(latitude). This is an approximation, not a
// geodesic: near the poles cos(latitude) approaches zero and the longitude
// bounds blow up. Acceptable here because the box is only a coarse admission
// filter, tightened later by Distance.
func BoundingBoxAround(center Point, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegree
	lonDelta := radiusKm / (kmPerDegree * math.Cos(center.Latitude*math.Pi/180))

	return BoundingBox{
		MinLat: center.Latitude - latDelta,
		MaxLat: center.Latitude + latDelta,
		MinLon: center.Longitude - lonDelta,
		MaxLon: center.Longitude + lonDelta,
	}
}

// Contains reports whether p falls inside the box.
func (b BoundingBox) Contains(p Point) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula. Deterministic and symmetric.
func Distance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180)*math.Cos(b.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
