package service

import "github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"

// Notifier pushes ride events to an actor's live connection. Delivery is
// best-effort: if the actor is not connected the event is dropped, and
// implementations never return an error to the state-changing caller.
type Notifier interface {
	// RideAssigned tells the rider a captain has been bound to their ride.
	RideAssigned(riderID string, ride *domain.Ride)

	// RideStatusUpdated pushes the full updated ride to the rider.
	RideStatusUpdated(riderID string, ride *domain.Ride)
}
