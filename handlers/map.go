package handlers

import (
	"net/http"
	"time"

	"lexmap/models"
	"lexmap/services/maps"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitMapHandler (re)initializes the viewport at a center and zoom.
func InitMapHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Latitude  float64  `json:"latitude"`
			Longitude float64  `json:"longitude"`
			Zoom      *float64 `json:"zoom"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		zoom := 13.0
		if input.Zoom != nil {
			zoom = *input.Zoom
		}
		renderer.Init(models.NewGeoPoint(input.Latitude, input.Longitude), zoom)
		c.JSON(http.StatusOK, renderer.State())
	}
}

// ZoomHandler steps the viewport zoom one level in the given direction.
func ZoomHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var zoom float64
		switch dir := c.Param("direction"); dir {
		case "in":
			zoom = renderer.ZoomIn()
		case "out":
			zoom = renderer.ZoomOut()
		default:
			utils.JSONError(c, http.StatusBadRequest, "direction must be in or out", dir)
			return
		}
		c.JSON(http.StatusOK, gin.H{"zoom": zoom})
	}
}

// FlyToHandler animates the viewport to a new center and zoom.
func FlyToHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Latitude   float64 `json:"latitude"`
			Longitude  float64 `json:"longitude"`
			Zoom       float64 `json:"zoom"`
			DurationMs int64   `json:"durationMs"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if input.DurationMs <= 0 {
			input.DurationMs = 1200
		}
		renderer.FlyTo(
			models.NewGeoPoint(input.Latitude, input.Longitude),
			input.Zoom,
			time.Duration(input.DurationMs)*time.Millisecond,
		)
		c.JSON(http.StatusOK, renderer.State())
	}
}

// SetLayerHandler toggles a marker layer on or off.
func SetLayerHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		layer := models.MapLayer(c.Param("layer"))
		var input struct {
			Visible *bool `json:"visible" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if err := renderer.SetLayerVisible(layer, *input.Visible); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "unknown map layer", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"layer":   layer,
			"visible": renderer.LayerVisible(layer),
		})
	}
}

// SelectEntityHandler selects a marker and returns its context panel data.
func SelectEntityHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		id := c.Param("id")

		sel, err := renderer.Select(id)
		if err != nil {
			logger.Warn("Marker selection failed", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sel)
	}
}

// ClearSelectionHandler dismisses the current selection.
func ClearSelectionHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer.ClearSelection()
		c.JSON(http.StatusOK, gin.H{"selected": nil})
	}
}

// MarkersHandler returns the current marker set for all visible layers.
func MarkersHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"markers": renderer.Markers()})
	}
}

// TileURLHandler returns the tile template for a theme ("light" or "dark").
// Unknown themes fall back to light.
func TileURLHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		theme := c.DefaultQuery("theme", "light")
		c.JSON(http.StatusOK, gin.H{"theme": theme, "url": renderer.TileURL(theme)})
	}
}

// MapStateHandler returns the viewport snapshot.
func MapStateHandler(renderer maps.MapRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, renderer.State())
	}
}
