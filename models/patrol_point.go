package models

import "server/geo"

// PatrolPoint is one checkpoint of a site's patrol route. Seq orders the route
// for display; proximity checks only use the point and its radius.
type PatrolPoint struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	UpdatedAt    int64
	SiteID       uint64 `gorm:"index"`
	Site         Site   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name         string `gorm:"type:varchar(200)"`
	GpsLat       float64 `gorm:"type:double"`
	GpsLong      float64 `gorm:"type:double"`
	RadiusMeters float64 `gorm:"not null"`
	Seq          int     `gorm:"not null"`
}

func (p *PatrolPoint) ToGeo() geo.PatrolPoint {
	return geo.PatrolPoint{
		ID:           p.ID,
		Name:         p.Name,
		Point:        geo.Point{Lat: p.GpsLat, Lng: p.GpsLong},
		RadiusMeters: p.RadiusMeters,
		Seq:          p.Seq,
	}
}

// PatrolRoute converts a site's checkpoints, keeping route order.
func PatrolRoute(points []PatrolPoint) []geo.PatrolPoint {
	route := make([]geo.PatrolPoint, 0, len(points))
	for i := range points {
		route = append(route, points[i].ToGeo())
	}
	return route
}
