// Package geo holds the great-circle distance and patrol-proximity logic used
// by attendance and patrol check-ins. Pure computation; coordinates are WGS84
// degrees and all distances are meters.
package geo

import "math"

// Mean Earth radius in meters. Good enough at the tens-to-hundreds of meters
// this system operates at; no ellipsoidal correction.
const earthRadiusMeters = 6371000

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PatrolPoint is a location a guard is expected to physically visit, with its
// own acceptance radius. Seq is the display order of the patrol route.
type PatrolPoint struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Point        Point   `json:"point"`
	RadiusMeters float64 `json:"radius_meters"`
	Seq          int     `json:"seq"`
}

// ProximityResult describes how a live position relates to a patrol route.
// Computed fresh from each position reading, never retained.
type ProximityResult struct {
	WithinRange    bool         `json:"within_range"`
	DistanceMeters float64      `json:"distance_meters"`
	Nearest        *PatrolPoint `json:"nearest_point"`
}

// DistanceMeters returns the Haversine distance between two points.
func DistanceMeters(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// IsWithinGeofence reports whether the position is inside the circular fence.
// The boundary itself counts as inside.
func IsWithinGeofence(position, center Point, radiusMeters float64) bool {
	return DistanceMeters(position, center) <= radiusMeters
}

// NearestPatrolPoint finds the closest point of the route and checks the
// position against that point's own radius. An exact distance tie keeps the
// earlier point in the slice. An empty route is a normal operating condition
// ("no patrol configured") and yields a nil Nearest with +Inf distance.
func NearestPatrolPoint(position Point, points []PatrolPoint) ProximityResult {
	result := ProximityResult{DistanceMeters: math.Inf(1)}
	for i := range points {
		d := DistanceMeters(position, points[i].Point)
		if d < result.DistanceMeters {
			result.DistanceMeters = d
			result.Nearest = &points[i]
		}
	}
	if result.Nearest != nil {
		result.WithinRange = result.DistanceMeters <= result.Nearest.RadiusMeters
	}
	return result
}
