package handlers

import (
	"net/http"
	"server/db"
	"server/geo"
	"server/models"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PatrolPointSaveRequest struct {
	ID           uint64  `form:"id"`
	SiteID       uint64  `form:"site_id" binding:"required"`
	Name         string  `form:"name" binding:"required"`
	Lat          float64 `form:"lat" binding:"required"`
	Long         float64 `form:"long" binding:"required"`
	RadiusMeters float64 `form:"radius_meters" binding:"required"`
	Seq          int     `form:"seq"`
}

type PatrolCheckInRequest struct {
	Lat  float64 `form:"lat" binding:"required"`
	Long float64 `form:"long" binding:"required"`
}

func PatrolPointSave(c *gin.Context, me *models.Guard) {
	r := PatrolPointSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := geo.ValidatePoint("point", geo.Point{Lat: r.Lat, Lng: r.Long}); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := geo.ValidateRadius("radius_meters", r.RadiusMeters); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	point := models.PatrolPoint{}
	if r.ID > 0 {
		if db.Instance.First(&point, r.ID).Error != nil {
			c.JSON(http.StatusNotFound, Response{"patrol point not found"})
			return
		}
	}
	point.SiteID = r.SiteID
	point.Name = r.Name
	point.GpsLat = r.Lat
	point.GpsLong = r.Long
	point.RadiusMeters = r.RadiusMeters
	point.Seq = r.Seq
	var err error
	if point.ID == 0 {
		err = db.Instance.Create(&point).Error
	} else {
		err = db.Instance.Save(&point).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": point.ID})
}

func PatrolPointList(c *gin.Context, me *models.Guard) {
	type listRequest struct {
		SiteID uint64 `form:"site_id"`
	}
	r := listRequest{}
	_ = c.ShouldBindQuery(&r)
	siteID := r.SiteID
	if siteID == 0 && me.SiteID != nil {
		siteID = *me.SiteID
	}
	points := []models.PatrolPoint{}
	if db.Instance.Where("site_id = ?", siteID).Order("seq").Find(&points).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, models.PatrolRoute(points))
}

func PatrolPointDelete(c *gin.Context, me *models.Guard) {
	type deleteRequest struct {
		ID uint64 `form:"id" binding:"required"`
	}
	r := deleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if db.Instance.Delete(&models.PatrolPoint{}, r.ID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PatrolCheckIn logs a checkpoint visit: the nearest point of the guard's
// site route is selected and the position checked against that point's own
// radius. Out-of-range visits are logged too - supervisors want to see near
// misses.
func PatrolCheckIn(c *gin.Context, me *models.Guard) {
	r := PatrolCheckInRequest{}
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
	points := []models.PatrolPoint{}
	if db.Instance.Where("site_id = ?", *me.SiteID).Order("seq").Find(&points).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := geo.NearestPatrolPoint(position, models.PatrolRoute(points))
	if result.Nearest == nil {
		// No patrol route configured for this site - a normal condition
		c.JSON(http.StatusOK, gin.H{"error": "", "result": result})
		return
	}
	patrolLog := models.PatrolLog{
		CreatedAt:      time.Now().Unix(),
		GuardID:        me.ID,
		PatrolPointID:  result.Nearest.ID,
		GpsLat:         r.Lat,
		GpsLong:        r.Long,
		DistanceMeters: result.DistanceMeters,
		WithinRange:    result.WithinRange,
	}
	if db.Instance.Create(&patrolLog).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "result": result})
}

func PatrolLogList(c *gin.Context, me *models.Guard) {
	type listRequest struct {
		GuardID uint64 `form:"guard_id"`
		SiteID  uint64 `form:"site_id"`
	}
	r := listRequest{}
	_ = c.ShouldBindQuery(&r)

	query := db.Instance.Preload("Guard").Preload("PatrolPoint").
		Order("created_at DESC").Limit(200)
	if r.GuardID > 0 {
		query = query.Where("guard_id = ?", r.GuardID)
	}
	if r.SiteID > 0 {
		query = query.Where("patrol_point_id IN (?)",
			db.Instance.Table("patrol_points").Select("id").Where("site_id = ?", r.SiteID))
	}
	logs := []models.PatrolLog{}
	if query.Find(&logs).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, logs)
}
