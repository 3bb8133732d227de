package handlers

import (
	"net/http"
	"strconv"

	"lexmap/models"
	directorySvc "lexmap/services/directory"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProvidersHandler returns every provider in the directory.
func GetProvidersHandler(svc directorySvc.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providers := svc.Providers()
		dtos := make([]models.ProviderDTO, 0, len(providers))
		for _, p := range providers {
			dtos = append(dtos, p.DTO())
		}
		c.JSON(http.StatusOK, gin.H{
			"providers": dtos,
			"degraded":  svc.Degraded(),
		})
	}
}

// GetInstitutionsHandler returns every institution in the directory.
func GetInstitutionsHandler(svc directorySvc.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"institutions": svc.Institutions(),
			"degraded":     svc.Degraded(),
		})
	}
}

// GetEntityHandler returns a single directory entity by id, provider or
// institution alike.
func GetEntityHandler(svc directorySvc.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		id := c.Param("id")

		kind, ok := svc.EntityKind(id)
		if !ok {
			logger.Warn("Directory entity not found", zap.String("id", id))
			c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
			return
		}

		switch kind {
		case models.KindProvider:
			p, _ := svc.Provider(id)
			c.JSON(http.StatusOK, gin.H{"kind": kind, "provider": p.DTO()})
		case models.KindInstitution:
			inst, _ := svc.Institution(id)
			c.JSON(http.StatusOK, gin.H{"kind": kind, "institution": inst})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		}
	}
}

// NearbyProvidersHandler ranks providers around a lat/lng query point.
func NearbyProvidersHandler(svc directorySvc.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			utils.JSONError(c, http.StatusBadRequest, "lat and lng query parameters are required", "")
			return
		}
		maxKm := 25.0
		if raw := c.Query("maxKm"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v <= 0 {
				utils.JSONError(c, http.StatusBadRequest, "maxKm must be a positive number", raw)
				return
			}
			maxKm = v
		}

		ranked := svc.NearbyProviders(models.NewGeoPoint(lat, lng), maxKm)
		c.JSON(http.StatusOK, gin.H{"providers": ranked})
	}
}
