package models

import (
	"server/db"
	"server/utils"
	"strconv"
)

type Guard struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	CreatedByID *uint64
	CreatedBy   *Guard `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(150);index:uniq_email,unique"`
	// EmployeeCode is printed on the guard's badge and used as the match label
	EmployeeCode string `gorm:"type:varchar(30);index:uniq_code,unique"`
	Phone        string `gorm:"type:varchar(30)"`
	Password     string `gorm:"type:varchar(128)"`
	PassSalt     string `gorm:"type:varchar(200)"`
	Grants       []Grant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SiteID       *uint64 // assigned duty site
	Site         *Site   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	PushToken    string  `gorm:"type:varchar(128)"`

	// Last position reported over the live-location feed
	LastLat    *float64 `gorm:"type:double"`
	LastLong   *float64 `gorm:"type:double"`
	LastSeenAt int64

	// Payroll settings
	MonthlyBaseCents    int64   `gorm:"not null"`
	OvertimeHourlyCents int64   `gorm:"not null"`
	DeductionPercent    float64 `gorm:"not null"` // statutory deductions (tax, insurance)
}

const saltSize = 60

func GuardCreate(name, email, employeeCode, plainTextPassword string) (g Guard, err error) {
	g.Name = name
	g.Email = email
	g.EmployeeCode = employeeCode
	g.PassSalt = utils.RandSalt(saltSize)
	g.Password = utils.Sha512String(plainTextPassword + g.PassSalt)
	return g, db.Instance.Create(&g).Error
}

func (g *Guard) SetPassword(plainTextPassword string) {
	g.PassSalt = utils.RandSalt(saltSize)
	g.Password = utils.Sha512String(plainTextPassword + g.PassSalt)
}

func (g *Guard) SetNewPushToken() {
	g.PushToken = utils.Sha512String(g.Email + utils.RandSalt(saltSize))
	db.Instance.Model(g).Update("push_token", g.PushToken)
}

func GuardLogin(email, plainTextPassword string) (g Guard, success bool) {
	result := db.Instance.Preload("Grants").First(&g, "email = ?", email)
	if result.Error != nil {
		return Guard{}, false
	}
	if g.Password != utils.Sha512String(plainTextPassword+g.PassSalt) {
		return Guard{}, false
	}
	return g, true
}

func (g *Guard) GetPermissions() []int {
	permissions := []int{}
	for _, grant := range g.Grants {
		permissions = append(permissions, int(grant.Permission))
	}
	return permissions
}

func (g *Guard) HasPermission(required Permission) bool {
	for _, grant := range g.Grants {
		if grant.Permission == required {
			return true
		}
	}
	return false
}

func (g *Guard) HasPermissions(required []Permission) bool {
	for _, permission := range required {
		if !g.HasPermission(permission) {
			return false
		}
	}
	return true
}

// GetGuardSocketID keys the live-location websocket registry
func GetGuardSocketID(id uint64) string {
	return "guard_" + strconv.FormatUint(id, 10)
}
