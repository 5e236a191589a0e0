package handlers

import (
	"net/http"
	"server/db"
	"server/models"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	standardShiftHours  = 8.0
	standardWorkingDays = 26
)

type PayslipGenerateRequest struct {
	GuardID uint64 `form:"guard_id" binding:"required"`
	Year    int    `form:"year" binding:"required"`
	Month   int    `form:"month" binding:"required"`
}

// PayslipGenerate computes a guard's payslip for one month from closed
// shifts (hours beyond the standard shift count as overtime) and approved
// unpaid leave in the period.
func PayslipGenerate(c *gin.Context, me *models.Guard) {
	r := PayslipGenerateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.Month < 1 || r.Month > 12 {
		c.JSON(http.StatusBadRequest, Response{"month must be 1-12"})
		return
	}
	guard := models.Guard{}
	if db.Instance.First(&guard, r.GuardID).Error != nil {
		c.JSON(http.StatusNotFound, Response{"guard not found"})
		return
	}
	existing := models.Payslip{}
	if db.Instance.First(&existing, "guard_id = ? AND year = ? AND month = ?",
		r.GuardID, r.Year, r.Month).Error == nil {
		c.JSON(http.StatusConflict, Response{"payslip already generated"})
		return
	}

	periodStart := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	shifts := []models.Attendance{}
	if db.Instance.Where("guard_id = ? AND check_out_at > 0 AND check_in_at >= ? AND check_in_at < ?",
		r.GuardID, periodStart.Unix(), periodEnd.Unix()).Find(&shifts).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	overtimeHours := 0.0
	for i := range shifts {
		if worked := shifts[i].WorkedHours(); worked > standardShiftHours {
			overtimeHours += worked - standardShiftHours
		}
	}

	unpaidDays := 0
	leaves := []models.LeaveRequest{}
	if db.Instance.Where("guard_id = ? AND status = ? AND type = ? AND from_date < ? AND to_date >= ?",
		r.GuardID, models.LeaveStatusApproved, models.LeaveTypeUnpaid,
		periodEnd.Format(leaveDateFormat), periodStart.Format(leaveDateFormat)).
		Find(&leaves).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	for i := range leaves {
		unpaidDays += daysWithin(&leaves[i], periodStart, periodEnd)
	}

	payslip := models.ComputePayslip(&guard, r.Year, r.Month, overtimeHours, unpaidDays, standardWorkingDays)
	if db.Instance.Create(&payslip).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError3Response)
		return
	}
	c.JSON(http.StatusOK, payslip)
}

// daysWithin counts the leave days that fall inside [start, end).
func daysWithin(leave *models.LeaveRequest, start, end time.Time) int {
	from, err := time.Parse(leaveDateFormat, leave.FromDate)
	if err != nil {
		return 0
	}
	to, err := time.Parse(leaveDateFormat, leave.ToDate)
	if err != nil {
		return 0
	}
	if from.Before(start) {
		from = start
	}
	if !to.Before(end) {
		to = end.AddDate(0, 0, -1)
	}
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func PayslipList(c *gin.Context, me *models.Guard) {
	type listRequest struct {
		GuardID uint64 `form:"guard_id"`
	}
	r := listRequest{}
	_ = c.ShouldBindQuery(&r)

	query := db.Instance.Preload("Guard").Order("year DESC, month DESC").Limit(100)
	if me.HasPermission(models.PermissionSupervisor) || me.HasPermission(models.PermissionAdmin) {
		if r.GuardID > 0 {
			query = query.Where("guard_id = ?", r.GuardID)
		}
	} else {
		query = query.Where("guard_id = ?", me.ID)
	}
	payslips := []models.Payslip{}
	if query.Find(&payslips).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, payslips)
}
