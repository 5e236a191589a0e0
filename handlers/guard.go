package handlers

import (
	"net/http"
	"server/auth"
	"server/config"
	"server/db"
	"server/faces"
	"server/models"
	"server/verify"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GuardSaveRequest struct {
	ID                  uint64  `form:"id"`
	Name                string  `form:"name" binding:"required"`
	Email               string  `form:"email" binding:"required"`
	EmployeeCode        string  `form:"employee_code" binding:"required"`
	Phone               string  `form:"phone"`
	Password            string  `form:"password"`
	SiteID              *uint64 `form:"site_id"`
	MonthlyBaseCents    int64   `form:"monthly_base_cents"`
	OvertimeHourlyCents int64   `form:"overtime_hourly_cents"`
	DeductionPercent    float64 `form:"deduction_percent"`
}

type GuardLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type GuardInfo struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Enrolled     bool   `json:"enrolled"`
}

func GuardLogin(c *gin.Context) {
	postReq := GuardLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	guard, success := models.GuardLogin(postReq.Email, postReq.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{"invalid credentials"})
		return
	}
	loginSession(c, &guard)
}

// GuardFaceLogin identifies the guard from a selfie alone: the probe
// descriptor is matched against every enrolled guard and the closest one
// below the threshold wins.
func GuardFaceLogin(c *gin.Context) {
	file, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"frame file missing"})
		return
	}
	if recognizer == nil {
		c.JSON(http.StatusServiceUnavailable, Response{"face recognition unavailable"})
		return
	}
	framePath, err := saveTempFrame(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	defer removeTempFrame(framePath)

	labeled, err := enrolledDescriptors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := verify.Run(recognizer, verify.SingleFrame(framePath),
		verify.AgainstMany(labeled), config.FACE_MATCH_THRESHOLD,
		singleFramePolicy())
	switch result.State {
	case verify.StateSuccess:
	case verify.StateNoFace:
		c.JSON(http.StatusUnprocessableEntity, Response{"no face detected"})
		return
	case verify.StateNoMatch:
		c.JSON(http.StatusUnauthorized, Response{"face not recognized"})
		return
	default:
		c.JSON(http.StatusInternalServerError, Response{result.Err.Error()})
		return
	}
	guard := models.Guard{}
	if db.Instance.Preload("Grants").First(&guard, "employee_code = ?", result.Match.Label).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	loginSession(c, &guard)
}

func loginSession(c *gin.Context, guard *models.Guard) {
	permissions := guard.GetPermissions()
	session := auth.LoadSession(c)
	session.Set("id", guard.ID)
	session.Set("permissions", permissions)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"error": "", "name": guard.Name, "permissions": permissions})
}

// enrolledDescriptors builds the labeled set fresh from all current
// enrollments, keyed by employee code. The workforce is small enough that a
// full scan per attempt is fine.
func enrolledDescriptors() (*faces.LabeledDescriptors, error) {
	profiles := []models.FaceProfile{}
	if err := db.Instance.Preload("Guard").Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	labeled := &faces.LabeledDescriptors{}
	for i := range profiles {
		labeled.Add(profiles[i].Guard.EmployeeCode, profiles[i].GetDescriptor())
	}
	return labeled, nil
}

func GuardSave(c *gin.Context, me *models.Guard) {
	postReq := GuardSaveRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if postReq.ID == 0 {
		guard, err := models.GuardCreate(postReq.Name, postReq.Email, postReq.EmployeeCode, postReq.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Response{err.Error()})
			return
		}
		guard.CreatedByID = &me.ID
		guard.Phone = postReq.Phone
		guard.SiteID = postReq.SiteID
		guard.MonthlyBaseCents = postReq.MonthlyBaseCents
		guard.OvertimeHourlyCents = postReq.OvertimeHourlyCents
		guard.DeductionPercent = postReq.DeductionPercent
		if db.Instance.Save(&guard).Error != nil {
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
		c.JSON(http.StatusOK, gin.H{"error": "", "id": guard.ID})
		return
	}
	guard := models.Guard{}
	if db.Instance.First(&guard, postReq.ID).Error != nil {
		c.JSON(http.StatusNotFound, Response{"guard not found"})
		return
	}
	guard.Name = postReq.Name
	guard.Email = postReq.Email
	guard.EmployeeCode = postReq.EmployeeCode
	guard.Phone = postReq.Phone
	guard.SiteID = postReq.SiteID
	guard.MonthlyBaseCents = postReq.MonthlyBaseCents
	guard.OvertimeHourlyCents = postReq.OvertimeHourlyCents
	guard.DeductionPercent = postReq.DeductionPercent
	if postReq.Password != "" {
		guard.SetPassword(postReq.Password)
	}
	if db.Instance.Save(&guard).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": guard.ID})
}

func GuardList(c *gin.Context, me *models.Guard) {
	rows, err := db.Instance.Table("guards").
		Select("guards.id, guards.name, guards.employee_code, face_profiles.id IS NOT NULL").
		Joins("LEFT JOIN face_profiles ON (face_profiles.guard_id = guards.id)").
		Order("guards.created_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []GuardInfo{}
	for rows.Next() {
		info := GuardInfo{}
		if err = rows.Scan(&info.ID, &info.Name, &info.EmployeeCode, &info.Enrolled); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func GuardDelete(c *gin.Context, me *models.Guard) {
	type deleteRequest struct {
		ID uint64 `form:"id" binding:"required"`
	}
	r := deleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.ID == me.ID {
		c.JSON(http.StatusBadRequest, Response{"cannot delete own account"})
		return
	}
	if db.Instance.Delete(&models.Guard{}, r.ID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func GuardGetStatus(c *gin.Context, me *models.Guard) {
	profile := models.FaceProfile{}
	enrolled := db.Instance.First(&profile, "guard_id = ?", me.ID).Error == nil
	c.JSON(http.StatusOK, gin.H{
		"error":       "",
		"name":        me.Name,
		"permissions": me.GetPermissions(),
		"site_id":     me.SiteID,
		"enrolled":    enrolled,
	})
}

func GuardSetPushToken(c *gin.Context, me *models.Guard) {
	me.SetNewPushToken()
	c.JSON(http.StatusOK, gin.H{"error": "", "token": me.PushToken})
}

func GuardLogout(c *gin.Context, me *models.Guard) {
	auth.LoadSession(c).LogoutGuard()
	c.JSON(http.StatusOK, OKResponse)
}
