package directory

import (
	"lexmap/models"
)

// DirectoryService exposes the in-memory directory of providers and
// institutions. Membership is fixed for the process lifetime; only
// status-like fields mutate through the setters below.
type DirectoryService interface {
	// Providers returns a copy of all provider records in load order.
	Providers() []models.Provider
	// Institutions returns a copy of all institution records in load order.
	Institutions() []models.Institution
	// Provider looks up a provider by id in O(1).
	Provider(id string) (models.Provider, bool)
	// Institution looks up an institution by id in O(1).
	Institution(id string) (models.Institution, bool)
	// EntityKind reports which family an id belongs to.
	EntityKind(id string) (models.EntityKind, bool)
	// SetProviderStatus mutates a provider's authoritative status.
	SetProviderStatus(id string, status models.ProviderStatus) error
	// SetConnectionQuality mutates a provider's non-authoritative quality hint.
	SetConnectionQuality(id string, quality models.ConnectionQuality) error
	// NearbyProviders ranks providers around a center point.
	NearbyProviders(center models.GeoPoint, maxDistanceKm float64) []models.ProviderDTO
	// Degraded reports whether the catalog failed to load and the console is
	// serving the empty fallback state.
	Degraded() bool
}
