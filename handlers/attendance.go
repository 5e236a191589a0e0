package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"server/config"
	"server/db"
	"server/geo"
	"server/models"
	"server/storage"
	"server/verify"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type CheckInRequest struct {
	Lat  float64 `form:"lat" binding:"required"`
	Long float64 `form:"long" binding:"required"`
}

type AttendanceInfo struct {
	ID             uint64  `json:"id"`
	GuardName      string  `json:"guard_name"`
	SiteName       string  `json:"site_name"`
	CheckInAt      int64   `json:"check_in_at"`
	CheckInLocal   string  `json:"check_in_local"`
	CheckOutAt     int64   `json:"check_out_at"`
	DistanceMeters float64 `json:"distance_meters"`
	MatchDistance  float64 `json:"match_distance"`
	WithinFence    bool    `json:"within_fence"`
}

// AttendanceCheckIn opens a shift: the selfie must match the guard's enrolled
// descriptor and the position must be inside the assigned site's geofence.
func AttendanceCheckIn(c *gin.Context, me *models.Guard) {
	r := CheckInRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	position := geo.Point{Lat: r.Lat, Lng: r.Long}
	if err := geo.ValidatePoint("position", position); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if me.SiteID == nil {
		c.JSON(http.StatusPreconditionFailed, Response{"no duty site assigned"})
		return
	}
	site := models.Site{}
	if db.Instance.First(&site, *me.SiteID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	open := models.Attendance{}
	if db.Instance.First(&open, "guard_id = ? AND check_out_at = 0", me.ID).Error == nil {
		c.JSON(http.StatusConflict, Response{"shift already open, check out first"})
		return
	}

	profile := models.FaceProfile{}
	if db.Instance.First(&profile, "guard_id = ?", me.ID).Error != nil {
		c.JSON(http.StatusPreconditionFailed, Response{"not enrolled"})
		return
	}
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

	result := verify.Run(recognizer, verify.SingleFrame(framePath),
		verify.AgainstOne(profile.GetDescriptor()), config.FACE_MATCH_THRESHOLD,
		singleFramePolicy())
	switch result.State {
	case verify.StateSuccess:
	case verify.StateNoFace:
		c.JSON(http.StatusUnprocessableEntity, Response{"no face detected"})
		return
	case verify.StateNoMatch:
		c.JSON(http.StatusUnauthorized, Response{"face does not match enrollment"})
		return
	default:
		c.JSON(http.StatusInternalServerError, Response{result.Err.Error()})
		return
	}

	distance := geo.DistanceMeters(position, site.Center())
	within := geo.IsWithinGeofence(position, site.Center(), site.RadiusMeters)
	if !within {
		c.JSON(http.StatusForbidden, gin.H{
			"error":           "outside site geofence",
			"distance_meters": distance,
		})
		return
	}

	attendance := models.Attendance{
		GuardID:        me.ID,
		SiteID:         site.ID,
		CheckInAt:      time.Now().Unix(),
		GpsLat:         r.Lat,
		GpsLong:        r.Long,
		DistanceMeters: distance,
		MatchDistance:  result.Distance,
		WithinFence:    within,
	}
	// Keep the check-in selfie for supervisor review
	if bucketStorage := storage.GetDefaultStorage(); bucketStorage != nil {
		photoPath := storage.StorageLocationShifts + "/" + uuid.NewString() + filepath.Ext(file.Filename)
		if frame, err := os.Open(framePath); err == nil {
			if _, err = bucketStorage.Save(photoPath, frame); err == nil {
				_ = bucketStorage.UpdateFile(photoPath, "image/jpeg")
				attendance.PhotoPath = photoPath
			}
			frame.Close()
		}
	}
	if db.Instance.Create(&attendance).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":           "",
		"id":              attendance.ID,
		"distance_meters": distance,
		"match_distance":  result.Distance,
		"local_time":      site.LocalTime(attendance.CheckInAt).Format(time.RFC3339),
	})
}

// AttendanceCheckOut closes the open shift. No face or fence check - leaving
// the site is exactly what checking out records.
func AttendanceCheckOut(c *gin.Context, me *models.Guard) {
	attendance := models.Attendance{}
	if db.Instance.First(&attendance, "guard_id = ? AND check_out_at = 0", me.ID).Error != nil {
		c.JSON(http.StatusNotFound, Response{"no open shift"})
		return
	}
	attendance.CheckOutAt = time.Now().Unix()
	if db.Instance.Save(&attendance).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "worked_hours": attendance.WorkedHours()})
}

func AttendanceStatus(c *gin.Context, me *models.Guard) {
	attendance := models.Attendance{}
	if db.Instance.Preload("Site").First(&attendance, "guard_id = ? AND check_out_at = 0", me.ID).Error != nil {
		c.JSON(http.StatusOK, gin.H{"error": "", "on_duty": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":          "",
		"on_duty":        true,
		"check_in_at":    attendance.CheckInAt,
		"check_in_local": attendance.CheckInLocalTime().Format(time.RFC3339),
		"site":           attendance.Site.Name,
	})
}

func AttendanceList(c *gin.Context, me *models.Guard) {
	type listRequest struct {
		GuardID uint64 `form:"guard_id"`
		SiteID  uint64 `form:"site_id"`
	}
	r := listRequest{}
	_ = c.ShouldBindQuery(&r)

	query := db.Instance.Preload("Guard").Preload("Site").Order("check_in_at DESC").Limit(200)
	if r.GuardID > 0 {
		query = query.Where("guard_id = ?", r.GuardID)
	}
	if r.SiteID > 0 {
		query = query.Where("site_id = ?", r.SiteID)
	}
	records := []models.Attendance{}
	if query.Find(&records).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := make([]AttendanceInfo, 0, len(records))
	for i := range records {
		a := &records[i]
		result = append(result, AttendanceInfo{
			ID:             a.ID,
			GuardName:      a.Guard.Name,
			SiteName:       a.Site.Name,
			CheckInAt:      a.CheckInAt,
			CheckInLocal:   a.CheckInLocalTime().Format(time.RFC3339),
			CheckOutAt:     a.CheckOutAt,
			DistanceMeters: a.DistanceMeters,
			MatchDistance:  a.MatchDistance,
			WithinFence:    a.WithinFence,
		})
	}
	c.JSON(http.StatusOK, result)
}
