package ws

import (
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

// Server→client event types.
const (
	EventRideAssigned          = "ride-assigned"
	EventRideStatusUpdated     = "ride-status-updated"
	EventCaptainLocationUpdate = "captain-location-update"
	EventError                 = "error"
)

// Client→server event types.
const (
	EventJoin                  = "join"
	EventUpdateLocationCaptain = "update-location-captain"
	EventLogout                = "logout"
)

// Event is the wire envelope for every realtime message.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// RidePayload is the ride shape pushed to live connections. The trip code is
// never included.
type RidePayload struct {
	ID           string `json:"id"`
	RiderID      string `json:"rider_id"`
	CaptainID    string `json:"captain_id,omitempty"`
	Pickup       string `json:"pickup"`
	Destination  string `json:"destination"`
	VehicleClass string `json:"vehicle_class"`
	RideDate     string `json:"ride_date"`
	RideTime     string `json:"ride_time"`
	Fare         int64  `json:"fare"`
	PaymentType  string `json:"payment_type"`
	PaymentDone  bool   `json:"payment_done"`
	Status       string `json:"status"`
	CancelReason string `json:"cancel_reason,omitempty"`
}

func ridePayload(ride *domain.Ride) map[string]interface{} {
	return map[string]interface{}{
		"ride": RidePayload{
			ID:           ride.ID,
			RiderID:      ride.RiderID,
			CaptainID:    ride.CaptainID,
			Pickup:       ride.Pickup,
			Destination:  ride.Destination,
			VehicleClass: string(ride.VehicleClass),
			RideDate:     ride.RideDate,
			RideTime:     ride.RideTime,
			Fare:         ride.Fare,
			PaymentType:  string(ride.PaymentType),
			PaymentDone:  ride.PaymentDone,
			Status:       string(ride.Status),
			CancelReason: ride.CancelReason,
		},
	}
}

func newEvent(eventType string, data map[string]interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
}
