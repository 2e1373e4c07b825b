package domain

import "time"

// RideStatus represents the lifecycle state of a ride.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusOngoing   RideStatus = "ongoing"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// PaymentType represents how a ride is paid for.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeOnline PaymentType = "online"
)

// VehicleClass represents a supported car class for fare estimation.
type VehicleClass string

const (
	VehicleSwift        VehicleClass = "Swift"
	VehicleSwiftDzire   VehicleClass = "Swift Dzire"
	VehicleWagonR       VehicleClass = "WagonR"
	VehicleErtiga       VehicleClass = "Ertiga"
	VehicleInnova       VehicleClass = "Innova"
	VehicleInnovaCrysta VehicleClass = "Innova Crysta"
	VehicleScorpio      VehicleClass = "Scorpio"
	VehicleFortuner     VehicleClass = "Fortuner"
)

// VehicleClasses lists every supported class.
var VehicleClasses = []VehicleClass{
	VehicleSwift,
	VehicleSwiftDzire,
	VehicleWagonR,
	VehicleErtiga,
	VehicleInnova,
	VehicleInnovaCrysta,
	VehicleScorpio,
	VehicleFortuner,
}

// Ride represents a single trip request from creation through a terminal state.
//
// Itinerary fields and Fare are immutable after creation. CaptainID is set
// exactly once, by dispatch. TripCode gates the accepted→ongoing transition
// and is never included in default reads.
type Ride struct {
	ID              string
	RiderID         string
	CaptainID       string // empty until dispatch
	Pickup          string
	Destination     string
	VehicleClass    VehicleClass
	RideDate        string // YYYY-MM-DD
	RideTime        string // HH:MM
	DistanceMeters  int64
	DurationSeconds int64
	Fare            int64 // whole currency units, computed once at creation
	PaymentType     PaymentType
	PaymentDone     bool
	TripCode        string // 6 digits; populated only by creation and GetTripCode
	Status          RideStatus
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     time.Time // zero until the ride completes
}
