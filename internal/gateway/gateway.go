package gateway

import "context"

// Order is the gateway's handle for a payment order.
type Order struct {
	ID       string
	Amount   int64 // smallest currency unit
	Currency string
	Receipt  string
}

// Payment is the gateway's view of a payment attempt.
type Payment struct {
	ID      string
	OrderID string
	Status  string // created, authorized, captured, refunded, failed
	Amount  int64  // smallest currency unit
}

// StatusCaptured is the only status that counts as a settled payment.
const StatusCaptured = "captured"

// Captured reports whether the gateway has settled the payment.
func (p *Payment) Captured() bool {
	return p.Status == StatusCaptured
}

// Gateway is the boundary to the external payment processor. Responses are
// decoded into the explicit types above; callers never see raw gateway
// payloads.
type Gateway interface {
	// CreateOrder opens an order for the given amount (smallest currency
	// unit) with the ride id as receipt reference.
	CreateOrder(ctx context.Context, amount int64, receipt string) (*Order, error)

	// FetchPayment retrieves the current state of a payment.
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}
