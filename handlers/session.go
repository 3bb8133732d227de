package handlers

import (
	"net/http"

	"lexmap/models"
	sessionSvc "lexmap/services/session"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
)

// RequestSessionHandler opens a session for an entity and mode. Any prior
// session is force-closed first.
func RequestSessionHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EntityID string             `json:"entityId" binding:"required"`
			Mode     models.SessionMode `json:"mode" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if !models.ValidSessionMode(input.Mode) {
			utils.JSONError(c, http.StatusBadRequest, "unknown session mode", string(input.Mode))
			return
		}

		view, err := svc.Request(c.Request.Context(), input.EntityID, input.Mode)
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// CloseSessionHandler cancels the active session.
func CloseSessionHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Close(c.Request.Context())
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SessionSnapshotHandler returns the active session view, if any.
func SessionSnapshotHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := svc.Snapshot()
		if !ok {
			utils.JSONError(c, http.StatusNotFound, "no active session", "")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SendMessageHandler appends a chat message to the active chat session.
func SendMessageHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		view, err := svc.SendMessage(c.Request.Context(), input.Text)
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// StartCallHandler activates the requested call/video session.
func StartCallHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.StartCall(c.Request.Context())
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// ToggleHandler flips a device toggle on the active call/video session.
func ToggleHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		control := sessionSvc.ToggleControl(c.Param("control"))
		view, err := svc.Toggle(c.Request.Context(), control)
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// EndCallHandler hangs up and closes the session with a success outcome.
func EndCallHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.EndCall(c.Request.Context())
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SubmitScheduleHandler submits an appointment request on the active schedule
// session.
func SubmitScheduleHandler(svc sessionSvc.InteractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		view, err := svc.SubmitSchedule(c.Request.Context(), req)
		if err != nil {
			respondSessionError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, view)
	}
}
