package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// PaymentHandler handles HTTP requests for online payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrderRequest is the HTTP request body for creating a gateway order.
type CreateOrderRequest struct {
	RideID string `json:"ride_id"`
	Amount int64  `json:"amount"`
}

// CreateOrderResponse carries the gateway order back to the client.
type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest is the HTTP request body for verifying a payment.
type VerifyPaymentRequest struct {
	RideID        string `json:"ride_id"`
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

// VerifyPaymentResponse confirms the settled transaction.
type VerifyPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	RideID        string `json:"ride_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}

// CreateOrder handles POST /v1/payments/order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), req.Amount, req.RideID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}

// VerifyPayment handles POST /v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.paymentService.VerifyPayment(c.Request.Context(), req.RideID, req.OrderID, req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyPaymentResponse{
		TransactionID: txn.TransactionID,
		RideID:        txn.RideID,
		Amount:        txn.Amount,
		Method:        string(txn.Method),
		Status:        string(txn.Status),
	})
}
