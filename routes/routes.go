package routes

import (
	"net/http"
	"time"

	"lexmap/handlers"
	"lexmap/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDirectoryRoutes registers directory lookup endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/directory")
	{
		api.GET("/providers", hb.GetProvidersHandler)
		api.GET("/institutions", hb.GetInstitutionsHandler)
		api.GET("/entities/:id", hb.GetEntityHandler)
		api.GET("/providers/nearby", hb.NearbyProvidersHandler)
	}
}

// RegisterLocationRoutes registers device geolocation endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/location")
	{
		api.PUT("/:deviceID", hb.ReportLocationHandler)
		api.GET("/:deviceID", hb.ResolveLocationHandler)
	}
}

// RegisterMapRoutes registers viewport command endpoints.
func RegisterMapRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/map")
	{
		api.POST("/init", hb.InitMapHandler)
		api.POST("/zoom/:direction", hb.ZoomHandler)
		api.POST("/fly-to", hb.FlyToHandler)
		api.PUT("/layers/:layer", hb.SetLayerHandler)
		api.POST("/select/:id", hb.SelectEntityHandler)
		api.DELETE("/select", hb.ClearSelectionHandler)
		api.GET("/markers", hb.MarkersHandler)
		api.GET("/tiles", hb.TileURLHandler)
		api.GET("/state", hb.MapStateHandler)
	}
}

// RegisterSessionRoutes registers interaction session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/request", hb.RequestSessionHandler)
		api.DELETE("", hb.CloseSessionHandler)
		api.GET("", hb.SessionSnapshotHandler)
		api.POST("/chat/messages", hb.SendMessageHandler)
		api.POST("/call/start", hb.StartCallHandler)
		api.POST("/call/toggle/:control", hb.ToggleHandler)
		api.POST("/call/end", hb.EndCallHandler)
		api.POST("/schedule", hb.SubmitScheduleHandler)
	}
}

// RegisterDeviceRoutes registers push token endpoints.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/devices")
	{
		api.POST("/register", hb.RegisterDeviceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDirectoryRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterMapRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
	RegisterHealthRoute(r)
}
