package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/middleware"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	fareService *service.FareService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, fareService *service.FareService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		fareService: fareService,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	Pickup       string `json:"pickup"`
	Destination  string `json:"destination"`
	VehicleClass string `json:"vehicle_class"`
	RideDate     string `json:"ride_date,omitempty"`
	RideTime     string `json:"ride_time,omitempty"`
	PaymentType  string `json:"payment_type,omitempty"` // cash, online
}

// ConfirmRideRequest is the HTTP request body for confirming a ride.
type ConfirmRideRequest struct {
	PaymentType string `json:"payment_type"`
}

// CancelRideRequest is the HTTP request body for cancelling a ride.
type CancelRideRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RideResponse is the ride shape returned over HTTP. The trip code appears
// only on creation.
type RideResponse struct {
	ID              string `json:"id"`
	RiderID         string `json:"rider_id"`
	CaptainID       string `json:"captain_id,omitempty"`
	Pickup          string `json:"pickup"`
	Destination     string `json:"destination"`
	VehicleClass    string `json:"vehicle_class"`
	RideDate        string `json:"ride_date,omitempty"`
	RideTime        string `json:"ride_time,omitempty"`
	DistanceMeters  int64  `json:"distance_meters"`
	DurationSeconds int64  `json:"duration_seconds"`
	Fare            int64  `json:"fare"`
	PaymentType     string `json:"payment_type"`
	PaymentDone     bool   `json:"payment_done"`
	TripCode        string `json:"trip_code,omitempty"`
	Status          string `json:"status"`
	CancelReason    string `json:"cancel_reason,omitempty"`
}

// FareEstimateResponse is the per-class fare map for an itinerary.
type FareEstimateResponse struct {
	Pickup          string           `json:"pickup"`
	Destination     string           `json:"destination"`
	DistanceMeters  int64            `json:"distance_meters"`
	DurationSeconds int64            `json:"duration_seconds"`
	Fares           map[string]int64 `json:"fares"`
}

func rideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:              ride.ID,
		RiderID:         ride.RiderID,
		CaptainID:       ride.CaptainID,
		Pickup:          ride.Pickup,
		Destination:     ride.Destination,
		VehicleClass:    string(ride.VehicleClass),
		RideDate:        ride.RideDate,
		RideTime:        ride.RideTime,
		DistanceMeters:  ride.DistanceMeters,
		DurationSeconds: ride.DurationSeconds,
		Fare:            ride.Fare,
		PaymentType:     string(ride.PaymentType),
		PaymentDone:     ride.PaymentDone,
		TripCode:        ride.TripCode,
		Status:          string(ride.Status),
		CancelReason:    ride.CancelReason,
	}
}

func rideResponses(rides []*domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		out = append(out, rideResponse(ride))
	}
	return out
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	paymentType, err := service.ValidatePaymentType(req.PaymentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		RiderID:      c.GetString(middleware.ContextActorID),
		Pickup:       req.Pickup,
		Destination:  req.Destination,
		VehicleClass: domain.VehicleClass(req.VehicleClass),
		RideDate:     req.RideDate,
		RideTime:     req.RideTime,
		PaymentType:  paymentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rideResponse(ride))
}

// EstimateFare handles GET /v1/rides/fare
func (h *RideHandler) EstimateFare(c *gin.Context) {
	pickup := c.Query("pickup")
	destination := c.Query("destination")

	estimate, err := h.fareService.Estimate(c.Request.Context(), pickup, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	fares := make(map[string]int64, len(estimate.Fares))
	for class, fare := range estimate.Fares {
		fares[string(class)] = fare
	}

	respondJSON(c, http.StatusOK, FareEstimateResponse{
		Pickup:          estimate.Pickup,
		Destination:     estimate.Destination,
		DistanceMeters:  estimate.DistanceMeters,
		DurationSeconds: estimate.DurationSeconds,
		Fares:           fares,
	})
}

// authorizeRide loads a ride and checks that the caller may act on it.
// Riders only reach their own rides; admins reach any ride.
func (h *RideHandler) authorizeRide(c *gin.Context, rideID string) (*domain.Ride, error) {
	ride, err := h.rideService.GetRide(c.Request.Context(), rideID)
	if err != nil {
		return nil, err
	}
	if c.GetString(middleware.ContextRole) != middleware.RoleAdmin &&
		ride.RiderID != c.GetString(middleware.ContextActorID) {
		return nil, service.ErrNotRideOwner
	}
	return ride, nil
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.authorizeRide(c, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// ListRides handles GET /v1/rides, the authenticated rider's history.
func (h *RideHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context(), repository.RideFilter{
		RiderID: c.GetString(middleware.ContextActorID),
		Status:  domain.RideStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponses(rides))
}

// ConfirmRide handles POST /v1/rides/:id/confirm
func (h *RideHandler) ConfirmRide(c *gin.Context) {
	var req ConfirmRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	paymentType, err := service.ValidatePaymentType(req.PaymentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.authorizeRide(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	ride, err := h.rideService.ConfirmRide(c.Request.Context(), c.Param("id"), paymentType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	var req CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.authorizeRide(c, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}
