package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/redis"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// LocationService persists captain coordinates reported over the realtime
// channel: onto the captain's own record and into the redis geo index.
type LocationService struct {
	captainRepo   repository.CaptainRepository
	locationStore redis.LocationStoreInterface
	log           *logrus.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(captainRepo repository.CaptainRepository, locationStore redis.LocationStoreInterface, log *logrus.Logger) *LocationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LocationService{
		captainRepo:   captainRepo,
		locationStore: locationStore,
		log:           log,
	}
}

// SaveCaptainLocation records the captain's latest coordinate.
func (s *LocationService) SaveCaptainLocation(ctx context.Context, captainID string, lat, lng float64) error {
	if captainID == "" {
		return ErrInvalidCaptainID
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidLocation
	}

	if err := s.captainRepo.UpdateLocation(ctx, captainID, lat, lng); err != nil {
		return err
	}

	// Geo index is secondary: a redis failure does not fail the update.
	if s.locationStore != nil {
		if err := s.locationStore.UpdateLocation(ctx, captainID, lat, lng); err != nil {
			s.log.WithError(err).WithField("captain", captainID).Warn("geo index update failed")
		}
	}

	return nil
}
