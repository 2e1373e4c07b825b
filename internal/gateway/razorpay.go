package gateway

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements Gateway against the Razorpay API.
type RazorpayGateway struct {
	client   *razorpay.Client
	currency string
}

var _ Gateway = (*RazorpayGateway)(nil)

// NewRazorpayGateway creates a gateway client from API credentials.
func NewRazorpayGateway(keyID, keySecret, currency string) *RazorpayGateway {
	if currency == "" {
		currency = "INR"
	}
	return &RazorpayGateway{
		client:   razorpay.NewClient(keyID, keySecret),
		currency: currency,
	}
}

// CreateOrder opens a Razorpay order. The Razorpay SDK is not context-aware;
// ctx is accepted for interface symmetry.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": g.currency,
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order create: unexpected response shape")
	}

	return &Order{
		ID:       id,
		Amount:   asInt64(order["amount"]),
		Currency: asString(order["currency"], g.currency),
		Receipt:  asString(order["receipt"], receipt),
	}, nil
}

// FetchPayment retrieves the payment's current state from Razorpay.
func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	payment, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment fetch: %w", err)
	}

	status, ok := payment["status"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay payment fetch: unexpected response shape")
	}

	return &Payment{
		ID:      asString(payment["id"], paymentID),
		OrderID: asString(payment["order_id"], ""),
		Status:  status,
		Amount:  asInt64(payment["amount"]),
	}, nil
}

// asInt64 tolerates the json decoder handing numbers back as float64.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

func asString(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
