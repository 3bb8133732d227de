package maps

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"lexmap/config"
	"lexmap/models"
	"lexmap/services/directory"
	"lexmap/services/session"
	"lexmap/utils"

	"go.uber.org/zap"
)

const (
	minZoom     = 3.0
	maxZoom     = 19.0
	defaultZoom = 13.0
)

// Viewport owns the single map viewport instance. Marker content is derived
// from the directory catalog on every snapshot, so toggling a layer off and
// back on restores exactly the prior marker set.
type Viewport struct {
	mu            sync.Mutex
	directory     directory.DirectoryService
	center        models.GeoPoint
	zoom          float64
	layers        map[models.MapLayer]bool
	selectedID    string
	lastFlight    *Flight
	user          *models.UserLocation
	clickHandlers []func(entityID string)
	logger        *zap.Logger
}

var _ MapRenderer = (*Viewport)(nil)

// NewViewport builds an uninitialized viewport with both layers visible.
func NewViewport(dir directory.DirectoryService) *Viewport {
	return &Viewport{
		directory: dir,
		zoom:      defaultZoom,
		layers: map[models.MapLayer]bool{
			models.LayerProviders:    true,
			models.LayerInstitutions: true,
		},
		logger: utils.GetLogger(),
	}
}

func (v *Viewport) Init(center models.GeoPoint, zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = center
	v.zoom = clampZoom(zoom)
	v.selectedID = ""
	v.lastFlight = nil
	v.logger.Debug("viewport initialized",
		zap.Float64("lat", center.Lat()),
		zap.Float64("lng", center.Lng()),
		zap.Float64("zoom", v.zoom),
	)
}

func (v *Viewport) ZoomIn() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = clampZoom(v.zoom + 1)
	return v.zoom
}

func (v *Viewport) ZoomOut() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = clampZoom(v.zoom - 1)
	return v.zoom
}

func (v *Viewport) FlyTo(center models.GeoPoint, zoom float64, duration time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = center
	v.zoom = clampZoom(zoom)
	v.lastFlight = &Flight{
		Center:     center,
		Zoom:       v.zoom,
		DurationMs: duration.Milliseconds(),
	}
}

func (v *Viewport) SetLayerVisible(layer models.MapLayer, visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.layers[layer]; !ok {
		return fmt.Errorf("unknown map layer %q", layer)
	}
	v.layers[layer] = visible
	return nil
}

func (v *Viewport) LayerVisible(layer models.MapLayer) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layers[layer]
}

// Select marks an entity as selected and returns the context panel for it.
// Registered click handlers fire after the selection is applied.
func (v *Viewport) Select(entityID string) (Selection, error) {
	sel, err := v.buildSelection(entityID)
	if err != nil {
		return Selection{}, err
	}

	v.mu.Lock()
	v.selectedID = entityID
	handlers := make([]func(string), len(v.clickHandlers))
	copy(handlers, v.clickHandlers)
	v.mu.Unlock()

	for _, h := range handlers {
		h(entityID)
	}
	return sel, nil
}

func (v *Viewport) buildSelection(entityID string) (Selection, error) {
	if p, ok := v.directory.Provider(entityID); ok {
		dto := p.DTO()
		return Selection{
			EntityID:     entityID,
			Kind:         models.KindProvider,
			Provider:     &dto,
			AllowedModes: session.PermittedProviderModes(p.Status),
		}, nil
	}
	if inst, ok := v.directory.Institution(entityID); ok {
		return Selection{
			EntityID:     entityID,
			Kind:         models.KindInstitution,
			Institution:  &inst,
			AllowedModes: session.PermittedInstitutionModes(inst.IsActive),
		}, nil
	}
	return Selection{}, fmt.Errorf("entity %s not found in directory", entityID)
}

func (v *Viewport) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedID = ""
}

func (v *Viewport) OnEntityClick(handler func(entityID string)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clickHandlers = append(v.clickHandlers, handler)
}

func (v *Viewport) SetUserLocation(loc models.UserLocation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !loc.Granted {
		v.user = nil
		return
	}
	v.user = &loc
}

// Markers snapshots the currently visible marker set from the catalog in
// stable load order.
func (v *Viewport) Markers() []models.Marker {
	v.mu.Lock()
	showProviders := v.layers[models.LayerProviders]
	showInstitutions := v.layers[models.LayerInstitutions]
	selected := v.selectedID
	user := v.user
	v.mu.Unlock()

	var markers []models.Marker
	if showProviders {
		for _, p := range v.directory.Providers() {
			markers = append(markers, models.Marker{
				EntityID:   p.ID,
				Kind:       models.KindProvider,
				Position:   p.LocationGeo,
				Descriptor: ProviderDescriptor(p.Status, p.ID == selected),
			})
		}
	}
	if showInstitutions {
		for _, inst := range v.directory.Institutions() {
			markers = append(markers, models.Marker{
				EntityID:   inst.ID,
				Kind:       models.KindInstitution,
				Position:   inst.LocationGeo,
				Descriptor: InstitutionDescriptor(inst.Kind, inst.ID == selected),
			})
		}
	}
	if user != nil {
		markers = append(markers, models.Marker{
			EntityID:   "user",
			Kind:       models.KindUser,
			Position:   user.GeoPoint(),
			Descriptor: UserDescriptor(),
		})
	}
	return markers
}

// TileURL returns the tile template for the requested theme. Unknown themes
// fall back to light.
func (v *Viewport) TileURL(theme string) string {
	if strings.EqualFold(theme, "dark") {
		return config.AppConfig.TileURLDark
	}
	return config.AppConfig.TileURLLight
}

func (v *Viewport) State() ViewportState {
	v.mu.Lock()
	defer v.mu.Unlock()
	layers := make(map[models.MapLayer]bool, len(v.layers))
	for k, val := range v.layers {
		layers[k] = val
	}
	state := ViewportState{
		Center:     v.center,
		Zoom:       v.zoom,
		Layers:     layers,
		SelectedID: v.selectedID,
	}
	if v.lastFlight != nil {
		f := *v.lastFlight
		state.LastFlight = &f
	}
	if v.user != nil {
		u := *v.user
		state.User = &u
	}
	return state
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
