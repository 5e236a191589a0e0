package geo

import (
	"math"
	"testing"
)

// meters of one degree of latitude on the sphere used by DistanceMeters
const metersPerLatDegree = earthRadiusMeters * math.Pi / 180

func TestDistanceMeters(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		p := Point{Lat: 42.6977, Lng: 23.3219}
		if d := DistanceMeters(p, p); d != 0 {
			t.Errorf("distance to self = %v, want 0", d)
		}
	})

	t.Run("small latitude offset at equator", func(t *testing.T) {
		a := Point{Lat: 0, Lng: 0}
		b := Point{Lat: 0.0001, Lng: 0}
		d := DistanceMeters(a, b)
		want := 0.0001 * metersPerLatDegree // ~11.12 m
		if math.Abs(d-want)/want > 0.01 {
			t.Errorf("distance = %v, want %v within 1%%", d, want)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Lat: 42.6977, Lng: 23.3219}
		b := Point{Lat: 42.6980, Lng: 23.3225}
		if ab, ba := DistanceMeters(a, b), DistanceMeters(b, a); ab != ba {
			t.Errorf("DistanceMeters(a, b) = %v, DistanceMeters(b, a) = %v", ab, ba)
		}
	})
}

func TestIsWithinGeofence(t *testing.T) {
	center := Point{Lat: 0, Lng: 0}
	position := Point{Lat: 0.0001, Lng: 0}
	d := DistanceMeters(position, center)

	tests := []struct {
		name   string
		radius float64
		want   bool
	}{
		{"exactly on the boundary", d, true},
		{"one meter short", d - 1, false},
		{"one meter over", d + 1, true},
		{"center itself", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinGeofence(position, center, tt.radius); got != tt.want {
				t.Errorf("IsWithinGeofence(radius=%v) = %v, want %v", tt.radius, got, tt.want)
			}
		})
	}

	t.Run("position at center always inside", func(t *testing.T) {
		if !IsWithinGeofence(center, center, 0) {
			t.Error("center with zero radius should be inside")
		}
	})
}

// northOf places a point the given number of meters north of the origin.
func northOf(meters float64) Point {
	return Point{Lat: meters / metersPerLatDegree, Lng: 0}
}

func TestNearestPatrolPoint(t *testing.T) {
	position := Point{Lat: 0, Lng: 0}

	t.Run("picks closest of three", func(t *testing.T) {
		route := []PatrolPoint{
			{ID: 1, Name: "gate-a", Point: northOf(10), RadiusMeters: 15},
			{ID: 2, Name: "gate-b", Point: northOf(5), RadiusMeters: 15},
			{ID: 3, Name: "gate-c", Point: northOf(20), RadiusMeters: 15},
		}
		result := NearestPatrolPoint(position, route)
		if result.Nearest == nil || result.Nearest.Name != "gate-b" {
			t.Fatalf("Nearest = %+v, want gate-b", result.Nearest)
		}
		if math.Abs(result.DistanceMeters-5) > 0.1 {
			t.Errorf("DistanceMeters = %v, want ~5", result.DistanceMeters)
		}
		if !result.WithinRange {
			t.Error("5 m with a 15 m radius should be within range")
		}
	})

	t.Run("nearest point radius decides, not any radius", func(t *testing.T) {
		// The closest point has a tight radius; a farther one is generous.
		route := []PatrolPoint{
			{ID: 1, Name: "tight", Point: northOf(10), RadiusMeters: 5},
			{ID: 2, Name: "generous", Point: northOf(30), RadiusMeters: 100},
		}
		result := NearestPatrolPoint(position, route)
		if result.Nearest == nil || result.Nearest.Name != "tight" {
			t.Fatalf("Nearest = %+v, want tight", result.Nearest)
		}
		if result.WithinRange {
			t.Error("10 m exceeds the nearest point's 5 m radius")
		}
	})

	t.Run("distance tie keeps earlier point", func(t *testing.T) {
		same := northOf(7)
		route := []PatrolPoint{
			{ID: 1, Name: "first", Point: same, RadiusMeters: 10},
			{ID: 2, Name: "second", Point: same, RadiusMeters: 10},
		}
		result := NearestPatrolPoint(position, route)
		if result.Nearest == nil || result.Nearest.Name != "first" {
			t.Fatalf("Nearest = %+v, want first", result.Nearest)
		}
	})

	t.Run("empty route", func(t *testing.T) {
		result := NearestPatrolPoint(position, nil)
		if result.Nearest != nil {
			t.Errorf("Nearest = %+v, want nil", result.Nearest)
		}
		if result.WithinRange {
			t.Error("WithinRange = true, want false")
		}
		if !math.IsInf(result.DistanceMeters, 1) {
			t.Errorf("DistanceMeters = %v, want +Inf", result.DistanceMeters)
		}
	})
}

func TestValidatePoint(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		valid bool
	}{
		{"valid", Point{Lat: 42.7, Lng: 23.3}, true},
		{"lat max boundary", Point{Lat: 90, Lng: 0}, true},
		{"lng min boundary", Point{Lat: 0, Lng: -180}, true},
		{"lat above range", Point{Lat: 90.001, Lng: 0}, false},
		{"lat below range", Point{Lat: -90.001, Lng: 0}, false},
		{"lng above range", Point{Lat: 0, Lng: 180.001}, false},
		{"lat NaN", Point{Lat: math.NaN(), Lng: 0}, false},
		{"lng Inf", Point{Lat: 0, Lng: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoint("position", tt.point)
			if (err == nil) != tt.valid {
				t.Errorf("ValidatePoint(%+v) error = %v, valid = %v", tt.point, err, tt.valid)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	if err := ValidateRadius("radius", 50); err != nil {
		t.Errorf("ValidateRadius(50) = %v, want nil", err)
	}
	if err := ValidateRadius("radius", 0); err != nil {
		t.Errorf("ValidateRadius(0) = %v, want nil", err)
	}
	if err := ValidateRadius("radius", -1); err == nil {
		t.Error("ValidateRadius(-1) = nil, want error")
	}
	if err := ValidateRadius("radius", math.NaN()); err == nil {
		t.Error("ValidateRadius(NaN) = nil, want error")
	}
}
