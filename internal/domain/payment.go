package domain

import "time"

// TransactionStatus represents the settlement state of a ledger row.
type TransactionStatus string

const (
	TransactionDone    TransactionStatus = "done"
	TransactionNotDone TransactionStatus = "not_done"
)

// PaymentTransaction is an append-only ledger row recording a settled payment
// for a ride. Rows with status done are never mutated.
type PaymentTransaction struct {
	ID      string
	RideID  string
	RiderID string

	// Gateway identifiers, present only for online payments.
	OrderID       string
	TransactionID string

	Amount    int64
	Method    PaymentType
	Status    TransactionStatus
	CreatedAt time.Time
}
