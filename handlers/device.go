package handlers

import (
	"net/http"

	"lexmap/services/notification"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
)

// RegisterDeviceHandler stores a device's push token, replacing any previous
// one.
func RegisterDeviceHandler(registry notification.DeviceRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			DeviceID string `json:"deviceId" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if err := registry.RegisterToken(c.Request.Context(), input.DeviceID, input.Token); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to register device", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"registered": true})
	}
}
