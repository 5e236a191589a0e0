package models

type Permission uint8

const (
	PermissionNone       Permission = 0
	PermissionAdmin      Permission = 1
	PermissionSupervisor Permission = 2 // approve leave, view attendance/patrol dashboards
	PermissionGuard      Permission = 3 // check in/out, patrol, request leave
)

type Grant struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	GrantorID  uint64
	Grantor    Guard      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	GuardID    uint64     `gorm:"index:guard_permission,unique"`
	Guard      Guard      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permission Permission `gorm:"index:guard_permission,unique"`
}
