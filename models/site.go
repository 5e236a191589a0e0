package models

import (
	"server/geo"
	"time"

	"github.com/zsefvlol/timezonemapper"
)

// Site is a guarded location with a circular geofence for shift check-ins.
type Site struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	UpdatedAt    int64
	Name         string  `gorm:"type:varchar(200)"`
	Address      string  `gorm:"type:varchar(300)"`
	GpsLat       float64 `gorm:"type:double"`
	GpsLong      float64 `gorm:"type:double"`
	RadiusMeters float64 `gorm:"not null"`
}

func (s *Site) Center() geo.Point {
	return geo.Point{Lat: s.GpsLat, Lng: s.GpsLong}
}

// LocalTime converts a unix timestamp to the site's local time, derived from
// its coordinates. Falls back to server local time when the zone lookup fails.
func (s *Site) LocalTime(unix int64) time.Time {
	t := time.Unix(unix, 0)
	zone, err := time.LoadLocation(timezonemapper.LatLngToTimezoneString(s.GpsLat, s.GpsLong))
	if err != nil {
		return t
	}
	return t.In(zone)
}
