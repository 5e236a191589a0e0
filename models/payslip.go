package models

import "math"

// Payslip is one guard-month of payroll. Amounts are cents to keep the
// arithmetic exact; rounding happens once per component.
type Payslip struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	GuardID   uint64 `gorm:"index:uniq_guard_period,unique"`
	Guard     Guard  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Year      int    `gorm:"index:uniq_guard_period,unique"`
	Month     int    `gorm:"index:uniq_guard_period,unique"`

	BaseCents        int64
	OvertimeHours    float64
	OvertimeCents    int64
	UnpaidLeaveDays  int
	UnpaidLeaveCents int64
	DeductionCents   int64
	NetCents         int64
}

// ComputePayslip fills the amount fields from the guard's pay settings:
// net = base + overtime*rate - unpaid-leave days (pro-rata over workingDays)
// - percentage deductions on the gross.
func ComputePayslip(guard *Guard, year, month int, overtimeHours float64, unpaidLeaveDays, workingDays int) Payslip {
	p := Payslip{
		GuardID:         guard.ID,
		Year:            year,
		Month:           month,
		BaseCents:       guard.MonthlyBaseCents,
		OvertimeHours:   overtimeHours,
		UnpaidLeaveDays: unpaidLeaveDays,
	}
	p.OvertimeCents = int64(math.Round(overtimeHours * float64(guard.OvertimeHourlyCents)))
	if workingDays > 0 && unpaidLeaveDays > 0 {
		perDay := float64(guard.MonthlyBaseCents) / float64(workingDays)
		p.UnpaidLeaveCents = int64(math.Round(perDay * float64(unpaidLeaveDays)))
	}
	gross := p.BaseCents + p.OvertimeCents - p.UnpaidLeaveCents
	if gross < 0 {
		gross = 0
	}
	p.DeductionCents = int64(math.Round(float64(gross) * guard.DeductionPercent / 100))
	p.NetCents = gross - p.DeductionCents
	return p
}
