package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/middleware"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// TripHandler handles HTTP requests for trip start/end.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// EndTripRequest is the HTTP request body for ending a trip.
type EndTripRequest struct {
	RideID string `json:"ride_id"`
}

// StartTrip handles POST /v1/trips/start. Ride id and trip code ride in the
// query string so the captain app can launch the trip from a prefilled link.
func (h *TripHandler) StartTrip(c *gin.Context) {
	ride, err := h.tripService.Start(c.Request.Context(), service.StartTripRequest{
		RideID:    c.Query("ride_id"),
		Code:      c.Query("code"),
		CaptainID: c.GetString(middleware.ContextActorID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// EndTrip handles POST /v1/trips/end
func (h *TripHandler) EndTrip(c *gin.Context) {
	var req EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.tripService.End(c.Request.Context(), req.RideID, c.GetString(middleware.ContextActorID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}
