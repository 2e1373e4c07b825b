package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

const tripCodeLength = 6

// RideService handles ride creation and registry reads.
type RideService struct {
	rideRepo    repository.RideRepository
	fareService *FareService
	notifier    Notifier
	log         *logrus.Logger
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, fareService *FareService, notifier Notifier, log *logrus.Logger) *RideService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RideService{
		rideRepo:    rideRepo,
		fareService: fareService,
		notifier:    notifier,
		log:         log,
	}
}

// CreateRideRequest contains the parameters for creating a ride.
type CreateRideRequest struct {
	RiderID      string
	Pickup       string
	Destination  string
	VehicleClass domain.VehicleClass
	RideDate     string
	RideTime     string
	PaymentType  domain.PaymentType
}

// CreateRide prices the itinerary, generates the trip code, and persists the
// ride in pending state. The returned ride includes the trip code; this is
// the only read that does.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if req.Pickup == "" || req.Destination == "" {
		return nil, ErrInvalidItinerary
	}
	if _, ok := fareMatrix[req.VehicleClass]; !ok {
		return nil, ErrInvalidVehicleClass
	}

	paymentType, err := ValidatePaymentType(string(req.PaymentType))
	if err != nil {
		return nil, err
	}

	route, err := s.fareService.resolveRoute(ctx, req.Pickup, req.Destination)
	if err != nil {
		return nil, err
	}

	// Fare is computed exactly once, here, and never recomputed.
	fare, err := ComputeFare(req.VehicleClass, route.DistanceMeters, route.DurationSeconds)
	if err != nil {
		return nil, err
	}

	code, err := generateTripCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ride := &domain.Ride{
		ID:              uuid.New().String(),
		RiderID:         req.RiderID,
		Pickup:          req.Pickup,
		Destination:     req.Destination,
		VehicleClass:    req.VehicleClass,
		RideDate:        req.RideDate,
		RideTime:        req.RideTime,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Fare:            fare,
		PaymentType:     paymentType,
		TripCode:        code,
		Status:          domain.RideStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"ride_id": ride.ID,
		"rider":   ride.RiderID,
		"fare":    ride.Fare,
		"class":   ride.VehicleClass,
	}).Info("ride created")

	return ride, nil
}

// GetRide retrieves a ride without its trip code.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// ListRides retrieves rides matching the filter.
func (s *RideService) ListRides(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	return s.rideRepo.List(ctx, filter)
}

// ConfirmRide sets the payment type without forcing a state transition.
func (s *RideService) ConfirmRide(ctx context.Context, rideID string, paymentType domain.PaymentType) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	pt, err := ValidatePaymentType(string(paymentType))
	if err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if err := s.rideRepo.SetPayment(ctx, rideID, pt, ride.PaymentDone); err != nil {
		return nil, err
	}

	return s.rideRepo.GetByID(ctx, rideID)
}

// CancelRide cancels a ride from any non-terminal state. Administrative
// action; the reason is optional.
func (s *RideService) CancelRide(ctx context.Context, rideID, reason string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch ride.Status {
	case domain.RideStatusCancelled:
		return nil, ErrRideAlreadyCancelled
	case domain.RideStatusCompleted:
		return nil, ErrRideCannotBeCancelled
	}

	applied, err := s.rideRepo.Cancel(ctx, rideID, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race with another transition since the read above.
		return nil, ErrRideCannotBeCancelled
	}

	ride, err = s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.RideStatusUpdated(ride.RiderID, ride)
	}

	s.log.WithFields(logrus.Fields{"ride_id": rideID, "reason": reason}).Info("ride cancelled")

	return ride, nil
}

// UpdateStatus is the admin status endpoint. Cancellation is the only
// transition an administrator may force; everything else must go through
// dispatch or the trip session controller.
func (s *RideService) UpdateStatus(ctx context.Context, rideID string, status domain.RideStatus, reason string) (*domain.Ride, error) {
	if status != domain.RideStatusCancelled {
		return nil, ErrInvalidStatusChange
	}
	return s.CancelRide(ctx, rideID, reason)
}

// ValidatePaymentType validates a payment type string. Empty defaults to cash.
func ValidatePaymentType(paymentType string) (domain.PaymentType, error) {
	switch domain.PaymentType(paymentType) {
	case domain.PaymentTypeCash, domain.PaymentTypeOnline:
		return domain.PaymentType(paymentType), nil
	case "":
		return domain.PaymentTypeCash, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

// generateTripCode returns a random 6-digit code.
func generateTripCode() (string, error) {
	const digits = "0123456789"

	code := make([]byte, tripCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}

	return string(code), nil
}
