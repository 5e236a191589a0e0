package handlers

import (
	"net/http"
	"server/db"
	"server/geo"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type SiteSaveRequest struct {
	ID           uint64  `form:"id"`
	Name         string  `form:"name" binding:"required"`
	Address      string  `form:"address"`
	Lat          float64 `form:"lat" binding:"required"`
	Long         float64 `form:"long" binding:"required"`
	RadiusMeters float64 `form:"radius_meters" binding:"required"`
}

func SiteSave(c *gin.Context, me *models.Guard) {
	r := SiteSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := geo.ValidatePoint("center", geo.Point{Lat: r.Lat, Lng: r.Long}); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := geo.ValidateRadius("radius_meters", r.RadiusMeters); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	site := models.Site{}
	if r.ID > 0 {
		if db.Instance.First(&site, r.ID).Error != nil {
			c.JSON(http.StatusNotFound, Response{"site not found"})
			return
		}
	}
	site.Name = r.Name
	site.Address = r.Address
	site.GpsLat = r.Lat
	site.GpsLong = r.Long
	site.RadiusMeters = r.RadiusMeters
	var err error
	if site.ID == 0 {
		err = db.Instance.Create(&site).Error
	} else {
		err = db.Instance.Save(&site).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": site.ID})
}

func SiteList(c *gin.Context, me *models.Guard) {
	sites := []models.Site{}
	if db.Instance.Order("name").Find(&sites).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, sites)
}

func SiteDelete(c *gin.Context, me *models.Guard) {
	type deleteRequest struct {
		ID uint64 `form:"id" binding:"required"`
	}
	r := deleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if db.Instance.Delete(&models.Site{}, r.ID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
