package location

import (
	"context"
	"fmt"

	"lexmap/models"
	"lexmap/utils"

	"go.uber.org/zap"
)

// DefaultLocationService implements LocationService on top of a Store.
type DefaultLocationService struct {
	Store Store
	Clock utils.Clock
}

var _ LocationService = (*DefaultLocationService)(nil)

func (s *DefaultLocationService) Report(ctx context.Context, deviceID string, loc models.UserLocation) (models.UserLocation, error) {
	if deviceID == "" {
		return models.UserLocation{}, fmt.Errorf("device id is required")
	}

	// A denial carries no coordinates; drop whatever the client sent so a
	// stale fix can never leak through a denied grant.
	if !loc.Granted {
		loc = models.UserLocation{Granted: false}
	}
	loc.ReportedAt = s.Clock.Now()

	if err := s.Store.Put(ctx, deviceID, loc); err != nil {
		return models.UserLocation{}, err
	}

	utils.GetLogger().Debug("location reported",
		zap.String("deviceId", deviceID),
		zap.Bool("granted", loc.Granted),
	)
	return loc, nil
}

func (s *DefaultLocationService) Resolve(ctx context.Context, deviceID string) (models.UserLocation, error) {
	if deviceID == "" {
		return models.UserLocation{}, fmt.Errorf("device id is required")
	}
	loc, ok, err := s.Store.Get(ctx, deviceID)
	if err != nil {
		return models.UserLocation{}, err
	}
	if !ok {
		// Never assume a position; the caller must surface the blocking
		// "enable location" prompt and retry via Report.
		return models.UserLocation{Granted: false}, nil
	}
	return loc, nil
}
