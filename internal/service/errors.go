package service

import "errors"

var (
	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidCaptainID is returned when captain ID is empty.
	ErrInvalidCaptainID = errors.New("invalid captain id")

	// ErrInvalidItinerary is returned when pickup or destination is missing.
	ErrInvalidItinerary = errors.New("pickup and destination are required")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidVehicleClass is returned for an unsupported vehicle class.
	ErrInvalidVehicleClass = errors.New("unsupported vehicle class")

	// ErrInvalidPaymentType is returned when payment type is not cash or online.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentReference is returned when a gateway order or
	// transaction id is missing.
	ErrInvalidPaymentReference = errors.New("invalid payment reference")

	// ErrRouteUnavailable is returned when distance and duration cannot be
	// resolved for an itinerary.
	ErrRouteUnavailable = errors.New("unable to resolve route for itinerary")

	// ErrCaptainBlocked is returned when dispatching to a blocked captain.
	ErrCaptainBlocked = errors.New("captain is blocked")

	// ErrRideNotPending is returned when assigning a ride that is not pending.
	ErrRideNotPending = errors.New("ride is not pending")

	// ErrRideNotAccepted is returned when starting a ride that is not accepted.
	ErrRideNotAccepted = errors.New("ride is not accepted")

	// ErrRideNotOngoing is returned when ending a ride that is not ongoing.
	ErrRideNotOngoing = errors.New("ride is not ongoing")

	// ErrTripCodeMismatch is returned when the supplied trip code does not
	// match the stored one.
	ErrTripCodeMismatch = errors.New("trip code mismatch")

	// ErrNotAssignedCaptain is returned when a captain acts on a ride
	// assigned to someone else.
	ErrNotAssignedCaptain = errors.New("captain is not assigned to this ride")

	// ErrNotRideOwner is returned when a rider acts on a ride booked by
	// someone else.
	ErrNotRideOwner = errors.New("ride belongs to another rider")

	// ErrRideAlreadyCancelled is returned when cancelling a cancelled ride.
	ErrRideAlreadyCancelled = errors.New("ride already cancelled")

	// ErrRideCannotBeCancelled is returned when the ride is in a state that
	// cannot be cancelled.
	ErrRideCannotBeCancelled = errors.New("ride cannot be cancelled in current state")

	// ErrInvalidStatusChange is returned for an admin status update outside
	// the transition graph.
	ErrInvalidStatusChange = errors.New("invalid status change")

	// ErrPaymentAlreadyDone is returned when marking an already settled ride.
	ErrPaymentAlreadyDone = errors.New("payment already done")

	// ErrPaymentNotCaptured is returned when the gateway reports a payment
	// that is not captured.
	ErrPaymentNotCaptured = errors.New("payment not captured by gateway")

	// ErrGatewayUnavailable is returned when the payment gateway is
	// unreachable or returns an unexpected shape.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
