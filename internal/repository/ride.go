package repository

import (
	"context"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

// RideFilter narrows List results. Zero-value fields are ignored.
type RideFilter struct {
	Status    domain.RideStatus
	RiderID   string
	CaptainID string
}

// RideRepository defines the persistence operations for rides.
//
// The transition methods are conditional single-statement updates: they apply
// the new state only when the ride is currently in the expected prior state,
// and report applied=false when it is not. Two concurrent callers racing on
// the same transition therefore cannot both observe applied=true.
type RideRepository interface {
	// Create persists a new ride in pending state, trip code included.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID. TripCode is not populated.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetTripCode retrieves the stored trip code for a ride.
	GetTripCode(ctx context.Context, id string) (string, error)

	// List retrieves rides matching the filter, newest first.
	List(ctx context.Context, filter RideFilter) ([]*domain.Ride, error)

	// AssignCaptain applies pending→accepted and binds the captain.
	AssignCaptain(ctx context.Context, rideID, captainID string) (applied bool, err error)

	// StartTrip applies accepted→ongoing.
	StartTrip(ctx context.Context, rideID string) (applied bool, err error)

	// CompleteTrip applies ongoing→completed for the assigned captain and
	// stamps the completion time.
	CompleteTrip(ctx context.Context, rideID, captainID string) (applied bool, err error)

	// Cancel applies {pending,accepted,ongoing}→cancelled with a reason.
	Cancel(ctx context.Context, rideID, reason string) (applied bool, err error)

	// SetPayment updates the payment type and done flag without touching
	// lifecycle state.
	SetPayment(ctx context.Context, rideID string, paymentType domain.PaymentType, done bool) error
}
