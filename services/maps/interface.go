package maps

import (
	"time"

	"lexmap/models"
)

// MapRenderer is the capability interface over the single map viewport. All
// viewport mutation flows through these commands; no other component holds a
// reference to the underlying state, so the mapping engine stays swappable.
type MapRenderer interface {
	Init(center models.GeoPoint, zoom float64)
	ZoomIn() float64
	ZoomOut() float64
	FlyTo(center models.GeoPoint, zoom float64, duration time.Duration)
	SetLayerVisible(layer models.MapLayer, visible bool) error
	LayerVisible(layer models.MapLayer) bool
	Select(entityID string) (Selection, error)
	ClearSelection()
	OnEntityClick(handler func(entityID string))
	SetUserLocation(loc models.UserLocation)
	Markers() []models.Marker
	TileURL(theme string) string
	State() ViewportState
}

// Selection is the context panel surfaced when a marker is clicked: the
// entity plus the interaction modes its current status permits.
type Selection struct {
	EntityID     string               `json:"entityId"`
	Kind         models.EntityKind    `json:"kind"`
	Provider     *models.ProviderDTO  `json:"provider,omitempty"`
	Institution  *models.Institution  `json:"institution,omitempty"`
	AllowedModes []models.SessionMode `json:"allowedModes"`
}

// Flight records the last animated viewport move for clients to replay.
type Flight struct {
	Center     models.GeoPoint `json:"center"`
	Zoom       float64         `json:"zoom"`
	DurationMs int64           `json:"durationMs"`
}

// ViewportState is a read-only snapshot of the viewport.
type ViewportState struct {
	Center     models.GeoPoint          `json:"center"`
	Zoom       float64                  `json:"zoom"`
	Layers     map[models.MapLayer]bool `json:"layers"`
	SelectedID string                   `json:"selectedId,omitempty"`
	LastFlight *Flight                  `json:"lastFlight,omitempty"`
	User       *models.UserLocation     `json:"user,omitempty"`
}
