package repository

import (
	"context"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

// CaptainRepository defines the persistence operations for captains.
type CaptainRepository interface {
	// Create persists a new captain.
	Create(ctx context.Context, captain *domain.Captain) error

	// GetByID retrieves a captain by ID.
	GetByID(ctx context.Context, id string) (*domain.Captain, error)

	// GetAll retrieves all captains.
	GetAll(ctx context.Context) ([]*domain.Captain, error)

	// UpdateLocation persists the captain's latest reported coordinate.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error
}
