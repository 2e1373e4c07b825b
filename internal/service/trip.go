package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// TripService gates the start and end of the trip session. The trip code has
// no expiry: it stays valid until consumed or the ride is cancelled.
type TripService struct {
	rideRepo repository.RideRepository
	notifier Notifier
	log      *logrus.Logger
}

// NewTripService creates a new TripService.
func NewTripService(rideRepo repository.RideRepository, notifier Notifier, log *logrus.Logger) *TripService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TripService{
		rideRepo: rideRepo,
		notifier: notifier,
		log:      log,
	}
}

// StartTripRequest contains the parameters for starting a trip.
type StartTripRequest struct {
	RideID    string
	Code      string
	CaptainID string
}

// Start validates the trip code and applies accepted→ongoing. Only the
// assigned captain may start a ride; knowing the code is not enough on its
// own. Returns the full ride with itinerary on success.
func (s *TripService) Start(ctx context.Context, req StartTripRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.CaptainID == "" {
		return nil, ErrInvalidCaptainID
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusAccepted {
		return nil, ErrRideNotAccepted
	}
	if ride.CaptainID != req.CaptainID {
		return nil, ErrNotAssignedCaptain
	}

	code, err := s.rideRepo.GetTripCode(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Code) != code {
		return nil, ErrTripCodeMismatch
	}

	applied, err := s.rideRepo.StartTrip(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Another start or a cancellation won since the read above.
		return nil, ErrRideNotAccepted
	}

	ride, err = s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"ride_id": ride.ID, "captain": req.CaptainID}).Info("trip started")

	if s.notifier != nil {
		s.notifier.RideStatusUpdated(ride.RiderID, ride)
	}

	return ride, nil
}

// End applies ongoing→completed. Only the assigned captain may end a ride.
func (s *TripService) End(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusOngoing {
		return nil, ErrRideNotOngoing
	}
	if ride.CaptainID != captainID {
		return nil, ErrNotAssignedCaptain
	}

	applied, err := s.rideRepo.CompleteTrip(ctx, rideID, captainID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrRideNotOngoing
	}

	ride, err = s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"ride_id": rideID, "captain": captainID, "fare": ride.Fare}).Info("trip completed")

	if s.notifier != nil {
		s.notifier.RideStatusUpdated(ride.RiderID, ride)
	}

	return ride, nil
}
