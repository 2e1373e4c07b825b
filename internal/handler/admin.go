package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// AdminHandler handles the dispatch console endpoints.
type AdminHandler struct {
	rideService     *service.RideService
	dispatchService *service.DispatchService
	paymentService  *service.PaymentService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	rideService *service.RideService,
	dispatchService *service.DispatchService,
	paymentService *service.PaymentService,
) *AdminHandler {
	return &AdminHandler{
		rideService:     rideService,
		dispatchService: dispatchService,
		paymentService:  paymentService,
	}
}

// AssignRideRequest is the HTTP request body for assigning a captain.
type AssignRideRequest struct {
	CaptainID string `json:"captain_id"`
}

// UpdateStatusRequest is the HTTP request body for an admin status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ListRides handles GET /v1/admin/rides
func (h *AdminHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context(), repository.RideFilter{
		Status:    domain.RideStatus(c.Query("status")),
		CaptainID: c.Query("captain_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponses(rides))
}

// AssignRide handles POST /v1/admin/rides/:id/assign
func (h *AdminHandler) AssignRide(c *gin.Context) {
	var req AssignRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.dispatchService.Assign(c.Request.Context(), c.Param("id"), req.CaptainID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// UpdateStatus handles POST /v1/admin/rides/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.RideStatus(req.Status), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// MarkCashPaid handles POST /v1/admin/rides/:id/cash-paid
func (h *AdminHandler) MarkCashPaid(c *gin.Context) {
	txn, err := h.paymentService.MarkCashPaymentDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{
		"ride_id": txn.RideID,
		"amount":  txn.Amount,
		"method":  string(txn.Method),
		"status":  string(txn.Status),
	})
}
