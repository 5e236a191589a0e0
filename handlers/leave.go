package handlers

import (
	"net/http"
	"server/db"
	"server/models"
	"server/push"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const leaveDateFormat = "2006-01-02"

type LeaveCreateRequest struct {
	Type     uint8  `form:"type"`
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
	Reason   string `form:"reason"`
}

type LeaveDecideRequest struct {
	ID      uint64 `form:"id" binding:"required"`
	Approve bool   `form:"approve"`
	Note    string `form:"note"`
}

func LeaveCreate(c *gin.Context, me *models.Guard) {
	r := LeaveCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	from, err := time.Parse(leaveDateFormat, r.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"from_date must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(leaveDateFormat, r.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"to_date must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, Response{"to_date is before from_date"})
		return
	}
	if r.Type > uint8(models.LeaveTypeUnpaid) {
		c.JSON(http.StatusBadRequest, Response{"unknown leave type"})
		return
	}
	request := models.LeaveRequest{
		GuardID:  me.ID,
		Type:     models.LeaveType(r.Type),
		FromDate: r.FromDate,
		ToDate:   r.ToDate,
		Days:     int(to.Sub(from).Hours()/24) + 1,
		Reason:   r.Reason,
		Status:   models.LeaveStatusPending,
	}
	if db.Instance.Create(&request).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": request.ID, "days": request.Days})
}

// LeaveList returns the guard's own requests; supervisors see everyone's.
func LeaveList(c *gin.Context, me *models.Guard) {
	query := db.Instance.Preload("Guard").Order("created_at DESC").Limit(200)
	if !me.HasPermission(models.PermissionSupervisor) {
		query = query.Where("guard_id = ?", me.ID)
	}
	requests := []models.LeaveRequest{}
	if query.Find(&requests).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func LeaveDecide(c *gin.Context, me *models.Guard) {
	r := LeaveDecideRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	request := models.LeaveRequest{}
	if db.Instance.Preload("Guard").First(&request, r.ID).Error != nil {
		c.JSON(http.StatusNotFound, Response{"leave request not found"})
		return
	}
	if request.Status != models.LeaveStatusPending {
		c.JSON(http.StatusConflict, Response{"already decided"})
		return
	}
	if r.Approve {
		request.Status = models.LeaveStatusApproved
	} else {
		request.Status = models.LeaveStatusRejected
	}
	request.DecidedByID = &me.ID
	request.DecidedAt = time.Now().Unix()
	request.Note = r.Note
	if db.Instance.Save(&request).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	push.LeaveDecision(&request, &request.Guard)
	c.JSON(http.StatusOK, OKResponse)
}
