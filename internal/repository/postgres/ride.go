package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// rideColumns are the columns returned by default reads. trip_code is
// deliberately excluded; use GetTripCode.
const rideColumns = `id, rider_id, captain_id, pickup, destination, vehicle_class,
	ride_date, ride_time, distance_meters, duration_seconds, fare,
	payment_type, payment_done, status, cancel_reason,
	created_at, updated_at, completed_at`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, rider_id, captain_id, pickup, destination, vehicle_class,
			ride_date, ride_time, distance_meters, duration_seconds, fare,
			payment_type, payment_done, trip_code, status, cancel_reason,
			created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RiderID,
		nullString(ride.CaptainID),
		ride.Pickup,
		ride.Destination,
		ride.VehicleClass,
		ride.RideDate,
		ride.RideTime,
		ride.DistanceMeters,
		ride.DurationSeconds,
		ride.Fare,
		ride.PaymentType,
		ride.PaymentDone,
		ride.TripCode,
		ride.Status,
		nullString(ride.CancelReason),
		ride.CreatedAt,
		ride.UpdatedAt,
		nullTime(ride.CompletedAt),
	)

	return err
}

// GetByID retrieves a ride by ID. The trip code is not populated.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return ride, nil
}

// GetTripCode retrieves the stored trip code for a ride.
func (r *RideRepository) GetTripCode(ctx context.Context, id string) (string, error) {
	var code string
	err := r.q.QueryRowContext(ctx, `SELECT trip_code FROM rides WHERE id = $1`, id).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return code, nil
}

// List retrieves rides matching the filter, newest first.
func (r *RideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR rider_id = $2)
		  AND ($3 = '' OR captain_id = $3)
		ORDER BY created_at DESC LIMIT 200`

	rows, err := r.q.QueryContext(ctx, query, string(filter.Status), filter.RiderID, filter.CaptainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// AssignCaptain applies pending→accepted as a single conditional update.
// Two concurrent assignments on the same ride cannot both report applied.
func (r *RideRepository) AssignCaptain(ctx context.Context, rideID, captainID string) (bool, error) {
	query := `
		UPDATE rides
		SET status = $1, captain_id = $2, updated_at = $3
		WHERE id = $4 AND status = $5 AND captain_id IS NULL
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.RideStatusAccepted, captainID, time.Now(), rideID, domain.RideStatusPending)
	if err != nil {
		return false, err
	}

	return r.applied(ctx, result, rideID)
}

// StartTrip applies accepted→ongoing as a single conditional update.
func (r *RideRepository) StartTrip(ctx context.Context, rideID string) (bool, error) {
	query := `
		UPDATE rides
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.RideStatusOngoing, time.Now(), rideID, domain.RideStatusAccepted)
	if err != nil {
		return false, err
	}

	return r.applied(ctx, result, rideID)
}

// CompleteTrip applies ongoing→completed for the assigned captain.
func (r *RideRepository) CompleteTrip(ctx context.Context, rideID, captainID string) (bool, error) {
	now := time.Now()
	query := `
		UPDATE rides
		SET status = $1, updated_at = $2, completed_at = $3
		WHERE id = $4 AND status = $5 AND captain_id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.RideStatusCompleted, now, now, rideID, domain.RideStatusOngoing, captainID)
	if err != nil {
		return false, err
	}

	return r.applied(ctx, result, rideID)
}

// Cancel applies {pending,accepted,ongoing}→cancelled.
func (r *RideRepository) Cancel(ctx context.Context, rideID, reason string) (bool, error) {
	query := `
		UPDATE rides
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4 AND status IN ($5, $6, $7)
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.RideStatusCancelled, nullString(reason), time.Now(), rideID,
		domain.RideStatusPending, domain.RideStatusAccepted, domain.RideStatusOngoing)
	if err != nil {
		return false, err
	}

	return r.applied(ctx, result, rideID)
}

// SetPayment updates the payment type and done flag.
func (r *RideRepository) SetPayment(ctx context.Context, rideID string, paymentType domain.PaymentType, done bool) error {
	query := `
		UPDATE rides
		SET payment_type = $1, payment_done = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.q.ExecContext(ctx, query, paymentType, done, time.Now(), rideID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// applied distinguishes a guard rejection from a missing ride after a
// conditional update touched zero rows.
func (r *RideRepository) applied(ctx context.Context, result sql.Result, rideID string) (bool, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected > 0 {
		return true, nil
	}

	var exists bool
	err = r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, rideID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}

	return false, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var captainID sql.NullString
	var cancelReason sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.RiderID,
		&captainID,
		&ride.Pickup,
		&ride.Destination,
		&ride.VehicleClass,
		&ride.RideDate,
		&ride.RideTime,
		&ride.DistanceMeters,
		&ride.DurationSeconds,
		&ride.Fare,
		&ride.PaymentType,
		&ride.PaymentDone,
		&ride.Status,
		&cancelReason,
		&ride.CreatedAt,
		&ride.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if captainID.Valid {
		ride.CaptainID = captainID.String
	}
	if cancelReason.Valid {
		ride.CancelReason = cancelReason.String
	}
	if completedAt.Valid {
		ride.CompletedAt = completedAt.Time
	}

	return &ride, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
