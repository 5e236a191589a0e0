package geo

import (
	"fmt"
	"math"
)

// ValidatePoint rejects NaN/Inf and out-of-range coordinates before they reach
// the distance math. The name identifies the offending argument in the error.
func ValidatePoint(name string, p Point) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return fmt.Errorf("%s: latitude is not a finite number", name)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%s: longitude is not a finite number", name)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%s: latitude %f out of range [-90, 90]", name, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%s: longitude %f out of range [-180, 180]", name, p.Lng)
	}
	return nil
}

func ValidateRadius(name string, radiusMeters float64) error {
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) {
		return fmt.Errorf("%s: radius is not a finite number", name)
	}
	if radiusMeters < 0 {
		return fmt.Errorf("%s: radius %f must not be negative", name, radiusMeters)
	}
	return nil
}
