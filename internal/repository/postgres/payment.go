package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
// The ledger is append-only; there is no update statement here on purpose.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create appends a new transaction row.
func (r *PaymentRepository) Create(ctx context.Context, txn *domain.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, ride_id, rider_id, order_id, transaction_id, amount, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.RideID,
		txn.RiderID,
		nullString(txn.OrderID),
		nullString(txn.TransactionID),
		txn.Amount,
		txn.Method,
		txn.Status,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentTransaction, error) {
	query := `
		SELECT id, ride_id, rider_id, order_id, transaction_id, amount, method, status, created_at
		FROM payment_transactions WHERE id = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByRideID retrieves the transaction linked to a ride.
func (r *PaymentRepository) GetByRideID(ctx context.Context, rideID string) (*domain.PaymentTransaction, error) {
	query := `
		SELECT id, ride_id, rider_id, order_id, transaction_id, amount, method, status, created_at
		FROM payment_transactions WHERE ride_id = $1
		ORDER BY created_at DESC LIMIT 1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, rideID))
}

func (r *PaymentRepository) scanOne(row *sql.Row) (*domain.PaymentTransaction, error) {
	var txn domain.PaymentTransaction
	var orderID sql.NullString
	var transactionID sql.NullString

	err := row.Scan(
		&txn.ID,
		&txn.RideID,
		&txn.RiderID,
		&orderID,
		&transactionID,
		&txn.Amount,
		&txn.Method,
		&txn.Status,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if orderID.Valid {
		txn.OrderID = orderID.String
	}
	if transactionID.Valid {
		txn.TransactionID = transactionID.String
	}

	return &txn, nil
}
