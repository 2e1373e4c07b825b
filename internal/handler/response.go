package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidCaptainID),
		errors.Is(err, service.ErrInvalidItinerary),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidVehicleClass),
		errors.Is(err, service.ErrInvalidPaymentType),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPaymentReference):
		return http.StatusBadRequest

	// The trip code is a credential: a mismatch is an authentication
	// failure, not a validation one.
	case errors.Is(err, service.ErrTripCodeMismatch):
		return http.StatusUnauthorized

	// Payment required before the ride can be settled online.
	case errors.Is(err, service.ErrPaymentNotCaptured):
		return http.StatusPaymentRequired

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrNotAssignedCaptain),
		errors.Is(err, service.ErrNotRideOwner),
		errors.Is(err, service.ErrCaptainBlocked):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrRideNotPending),
		errors.Is(err, service.ErrRideNotAccepted),
		errors.Is(err, service.ErrRideNotOngoing),
		errors.Is(err, service.ErrRideAlreadyCancelled),
		errors.Is(err, service.ErrRideCannotBeCancelled),
		errors.Is(err, service.ErrInvalidStatusChange),
		errors.Is(err, service.ErrPaymentAlreadyDone):
		return http.StatusConflict

	// Upstream dependency failures
	case errors.Is(err, service.ErrRouteUnavailable),
		errors.Is(err, service.ErrGatewayUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
