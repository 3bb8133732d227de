package location

import (
	"context"

	"lexmap/models"
)

// LocationService resolves and stores the one-shot geolocation result per
// device. A denied grant is recorded as granted=false and never substituted
// with a default position; the client must retry explicitly.
type LocationService interface {
	// Report replaces the stored location wholesale with the client's
	// geolocation outcome (grant or denial).
	Report(ctx context.Context, deviceID string, loc models.UserLocation) (models.UserLocation, error)
	// Resolve returns the stored location for a device, or granted=false when
	// nothing has been reported. Idempotent; safe to re-invoke on retry.
	Resolve(ctx context.Context, deviceID string) (models.UserLocation, error)
}

// Store persists per-device locations.
type Store interface {
	Put(ctx context.Context, deviceID string, loc models.UserLocation) error
	Get(ctx context.Context, deviceID string) (models.UserLocation, bool, error)
}
