package repository

import (
	"context"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

// PaymentRepository defines the persistence operations for the payment ledger.
// The ledger is append-only: there is no update or delete.
type PaymentRepository interface {
	// Create appends a new transaction row.
	Create(ctx context.Context, txn *domain.PaymentTransaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentTransaction, error)

	// GetByRideID retrieves the transaction linked to a ride, or ErrNotFound.
	GetByRideID(ctx context.Context, rideID string) (*domain.PaymentTransaction, error)
}
