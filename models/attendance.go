package models

import "time"

// Attendance is one shift record. CheckOutAt stays zero while on duty.
type Attendance struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UpdatedAt  int64
	GuardID    uint64 `gorm:"index"`
	Guard      Guard  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SiteID     uint64 `gorm:"index"`
	Site       Site   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CheckInAt  int64
	CheckOutAt int64
	GpsLat     float64 `gorm:"type:double"`
	GpsLong    float64 `gorm:"type:double"`
	// Distance to the site center at check-in and the face match distance,
	// kept for supervisor review of borderline check-ins
	DistanceMeters float64
	MatchDistance  float64
	WithinFence    bool
	PhotoPath      string `gorm:"type:varchar(300)"`
}

// CheckInLocalTime is the check-in moment in the site's own timezone.
func (a *Attendance) CheckInLocalTime() time.Time {
	return a.Site.LocalTime(a.CheckInAt)
}

// WorkedHours is zero while the shift is still open.
func (a *Attendance) WorkedHours() float64 {
	if a.CheckOutAt == 0 || a.CheckOutAt < a.CheckInAt {
		return 0
	}
	return float64(a.CheckOutAt-a.CheckInAt) / 3600
}
