package handlers

import (
	"errors"
	"net/http"

	sessionSvc "lexmap/services/session"

	"github.com/gin-gonic/gin"
)

// respondSessionError maps session errors onto HTTP responses.
func respondSessionError(c *gin.Context, err error) {
	var modeErr *sessionSvc.ModeUnavailableError
	var valErr *sessionSvc.ValidationError
	var wrongMode *sessionSvc.WrongModeError

	switch {
	case errors.Is(err, sessionSvc.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &modeErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":    modeErr.Error(),
			"entityId": modeErr.EntityID,
			"mode":     modeErr.Mode,
			"status":   modeErr.Status,
		})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": valErr.Error(),
			"field": valErr.Field,
		})
	case errors.As(err, &wrongMode):
		c.JSON(http.StatusConflict, gin.H{"error": wrongMode.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
