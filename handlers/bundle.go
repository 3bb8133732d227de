package handlers

import (
	directorySvc "lexmap/services/directory"
	locationSvc "lexmap/services/location"
	"lexmap/services/maps"
	"lexmap/services/notification"
	sessionSvc "lexmap/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Directory endpoints
	GetProvidersHandler    gin.HandlerFunc
	GetInstitutionsHandler gin.HandlerFunc
	GetEntityHandler       gin.HandlerFunc
	NearbyProvidersHandler gin.HandlerFunc

	// Location endpoints
	ReportLocationHandler  gin.HandlerFunc
	ResolveLocationHandler gin.HandlerFunc

	// Map endpoints
	InitMapHandler        gin.HandlerFunc
	ZoomHandler           gin.HandlerFunc
	FlyToHandler          gin.HandlerFunc
	SetLayerHandler       gin.HandlerFunc
	SelectEntityHandler   gin.HandlerFunc
	ClearSelectionHandler gin.HandlerFunc
	MarkersHandler        gin.HandlerFunc
	TileURLHandler        gin.HandlerFunc
	MapStateHandler       gin.HandlerFunc

	// Session endpoints
	RequestSessionHandler  gin.HandlerFunc
	CloseSessionHandler    gin.HandlerFunc
	SessionSnapshotHandler gin.HandlerFunc
	SendMessageHandler     gin.HandlerFunc
	StartCallHandler       gin.HandlerFunc
	ToggleHandler          gin.HandlerFunc
	EndCallHandler         gin.HandlerFunc
	SubmitScheduleHandler  gin.HandlerFunc

	// Device endpoints
	RegisterDeviceHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its backing service.
func NewHandlerBundle(
	directory directorySvc.DirectoryService,
	location locationSvc.LocationService,
	renderer maps.MapRenderer,
	sessions sessionSvc.InteractionService,
	devices notification.DeviceRegistry,
) *HandlerBundle {
	return &HandlerBundle{
		GetProvidersHandler:    GetProvidersHandler(directory),
		GetInstitutionsHandler: GetInstitutionsHandler(directory),
		GetEntityHandler:       GetEntityHandler(directory),
		NearbyProvidersHandler: NearbyProvidersHandler(directory),

		ReportLocationHandler:  ReportLocationHandler(location, renderer),
		ResolveLocationHandler: ResolveLocationHandler(location),

		InitMapHandler:        InitMapHandler(renderer),
		ZoomHandler:           ZoomHandler(renderer),
		FlyToHandler:          FlyToHandler(renderer),
		SetLayerHandler:       SetLayerHandler(renderer),
		SelectEntityHandler:   SelectEntityHandler(renderer),
		ClearSelectionHandler: ClearSelectionHandler(renderer),
		MarkersHandler:        MarkersHandler(renderer),
		TileURLHandler:        TileURLHandler(renderer),
		MapStateHandler:       MapStateHandler(renderer),

		RequestSessionHandler:  RequestSessionHandler(sessions),
		CloseSessionHandler:    CloseSessionHandler(sessions),
		SessionSnapshotHandler: SessionSnapshotHandler(sessions),
		SendMessageHandler:     SendMessageHandler(sessions),
		StartCallHandler:       StartCallHandler(sessions),
		ToggleHandler:          ToggleHandler(sessions),
		EndCallHandler:         EndCallHandler(sessions),
		SubmitScheduleHandler:  SubmitScheduleHandler(sessions),

		RegisterDeviceHandler: RegisterDeviceHandler(devices),
	}
}
