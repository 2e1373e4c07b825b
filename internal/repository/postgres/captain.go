package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// CaptainRepository is a PostgreSQL implementation of repository.CaptainRepository.
type CaptainRepository struct {
	q Querier
}

// NewCaptainRepository creates a new PostgreSQL captain repository.
func NewCaptainRepository(db *sql.DB) *CaptainRepository {
	return &CaptainRepository{q: db}
}

// NewCaptainRepositoryWithTx creates a captain repository using a transaction.
func NewCaptainRepositoryWithTx(tx *sql.Tx) *CaptainRepository {
	return &CaptainRepository{q: tx}
}

// Create persists a new captain.
func (r *CaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	query := `
		INSERT INTO captains (id, name, phone, email, status, last_lat, last_lng, location_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var locationUpdatedAt sql.NullTime
	if !captain.LocationUpdatedAt.IsZero() {
		locationUpdatedAt = sql.NullTime{Time: captain.LocationUpdatedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		captain.ID,
		captain.Name,
		captain.Phone,
		captain.Email,
		captain.Status,
		captain.LastLat,
		captain.LastLng,
		locationUpdatedAt,
	)

	return err
}

// GetByID retrieves a captain by ID.
func (r *CaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	query := `
		SELECT id, name, phone, email, status, last_lat, last_lng, location_updated_at
		FROM captains WHERE id = $1
	`

	var captain domain.Captain
	var locationUpdatedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&captain.ID,
		&captain.Name,
		&captain.Phone,
		&captain.Email,
		&captain.Status,
		&captain.LastLat,
		&captain.LastLng,
		&locationUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if locationUpdatedAt.Valid {
		captain.LocationUpdatedAt = locationUpdatedAt.Time
	}

	return &captain, nil
}

// GetAll retrieves all captains.
func (r *CaptainRepository) GetAll(ctx context.Context) ([]*domain.Captain, error) {
	query := `
		SELECT id, name, phone, email, status, last_lat, last_lng, location_updated_at
		FROM captains ORDER BY name LIMIT 500
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captains []*domain.Captain
	for rows.Next() {
		var captain domain.Captain
		var locationUpdatedAt sql.NullTime
		if err := rows.Scan(
			&captain.ID,
			&captain.Name,
			&captain.Phone,
			&captain.Email,
			&captain.Status,
			&captain.LastLat,
			&captain.LastLng,
			&locationUpdatedAt,
		); err != nil {
			return nil, err
		}
		if locationUpdatedAt.Valid {
			captain.LocationUpdatedAt = locationUpdatedAt.Time
		}
		captains = append(captains, &captain)
	}
	return captains, rows.Err()
}

// UpdateLocation persists the captain's latest reported coordinate.
func (r *CaptainRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	query := `
		UPDATE captains
		SET last_lat = $1, last_lng = $2, location_updated_at = $3
		WHERE id = $4
	`

	result, err := r.q.ExecContext(ctx, query, lat, lng, time.Now(), id)
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
