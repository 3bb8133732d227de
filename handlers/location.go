package handlers

import (
	"net/http"
	"time"

	"lexmap/models"
	locationSvc "lexmap/services/location"
	"lexmap/services/maps"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
)

// ReportLocationHandler records the device's geolocation prompt outcome and
// forwards a granted position to the map viewport. A denial is stored as-is;
// the map never receives a default position in its place.
func ReportLocationHandler(svc locationSvc.LocationService, renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.Param("deviceID")

		var input struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Granted   bool    `json:"granted"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		loc := models.UserLocation{
			Granted:    input.Granted,
			ReportedAt: time.Now(),
		}
		if input.Granted {
			loc.Latitude = input.Latitude
			loc.Longitude = input.Longitude
		}

		stored, err := svc.Report(c.Request.Context(), deviceID, loc)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to store location", err.Error())
			return
		}

		renderer.SetUserLocation(stored)
		c.JSON(http.StatusOK, stored)
	}
}

// ResolveLocationHandler returns the stored location for a device. When
// nothing has been reported the result is granted=false.
func ResolveLocationHandler(svc locationSvc.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.Param("deviceID")

		loc, err := svc.Resolve(c.Request.Context(), deviceID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to resolve location", err.Error())
			return
		}
		c.JSON(http.StatusOK, loc)
	}
}
