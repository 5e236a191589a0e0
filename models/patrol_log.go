package models

// PatrolLog records one checkpoint visit attempt, including out-of-range ones.
type PatrolLog struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64  `gorm:"index"`
	GuardID       uint64 `gorm:"index"`
	Guard         Guard  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PatrolPointID uint64      `gorm:"index"`
	PatrolPoint   PatrolPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GpsLat        float64     `gorm:"type:double"`
	GpsLong       float64     `gorm:"type:double"`
	DistanceMeters float64
	WithinRange    bool
}
