package models

type LeaveType uint8

const (
	LeaveTypeAnnual LeaveType = 0
	LeaveTypeSick   LeaveType = 1
	LeaveTypeUnpaid LeaveType = 2
)

type LeaveStatus uint8

const (
	LeaveStatusPending  LeaveStatus = 0
	LeaveStatusApproved LeaveStatus = 1
	LeaveStatusRejected LeaveStatus = 2
)

type LeaveRequest struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	GuardID   uint64 `gorm:"index"`
	Guard     Guard  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Type      LeaveType
	// Dates as "2006-01-02", inclusive on both ends
	FromDate    string `gorm:"type:varchar(10)"`
	ToDate      string `gorm:"type:varchar(10)"`
	Days        int
	Reason      string `gorm:"type:varchar(500)"`
	Status      LeaveStatus `gorm:"index"`
	DecidedByID *uint64
	DecidedBy   *Guard `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	DecidedAt   int64
	Note        string `gorm:"type:varchar(500)"` // supervisor's note on the decision
}

// Unpaid reports whether the leave reduces the payslip.
func (l *LeaveRequest) Unpaid() bool {
	return l.Type == LeaveTypeUnpaid
}
