package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/middleware"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// CaptainHandler handles the captain-facing read endpoints.
type CaptainHandler struct {
	rideService     *service.RideService
	earningsService *service.EarningsService
}

// NewCaptainHandler creates a new CaptainHandler.
func NewCaptainHandler(rideService *service.RideService, earningsService *service.EarningsService) *CaptainHandler {
	return &CaptainHandler{
		rideService:     rideService,
		earningsService: earningsService,
	}
}

// EarningsResponse is the aggregated earnings view for a captain.
type EarningsResponse struct {
	Today     int64 `json:"today"`
	ThisMonth int64 `json:"this_month"`
	ThisYear  int64 `json:"this_year"`
	Total     int64 `json:"total"`
	RideCount int   `json:"ride_count"`
}

// ListRides handles GET /v1/captain/rides. Returns rides assigned to the
// authenticated captain, optionally filtered by status.
func (h *CaptainHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context(), repository.RideFilter{
		CaptainID: c.GetString(middleware.ContextActorID),
		Status:    domain.RideStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponses(rides))
}

// Earnings handles GET /v1/captain/earnings
func (h *CaptainHandler) Earnings(c *gin.Context) {
	earnings, err := h.earningsService.Earnings(c.Request.Context(), c.GetString(middleware.ContextActorID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, EarningsResponse{
		Today:     earnings.Today,
		ThisMonth: earnings.ThisMonth,
		ThisYear:  earnings.ThisYear,
		Total:     earnings.Total,
		RideCount: earnings.RideCount,
	})
}
