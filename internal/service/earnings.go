package service

import (
	"context"
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// Earnings is a captain's earnings, bucketed by completion date.
type Earnings struct {
	Today     int64
	ThisMonth int64
	ThisYear  int64
	Total     int64
	RideCount int
}

// EarningsService computes a captain's earnings from the ride registry.
// Pure derived view: recomputed on every read, no ledger of its own.
type EarningsService struct {
	rideRepo repository.RideRepository
}

// NewEarningsService creates a new EarningsService.
func NewEarningsService(rideRepo repository.RideRepository) *EarningsService {
	return &EarningsService{rideRepo: rideRepo}
}

// Earnings computes the captain's earnings as of now.
func (s *EarningsService) Earnings(ctx context.Context, captainID string) (*Earnings, error) {
	return s.EarningsAsOf(ctx, captainID, time.Now())
}

// EarningsAsOf computes the captain's earnings with the given reference time.
func (s *EarningsService) EarningsAsOf(ctx context.Context, captainID string, asOf time.Time) (*Earnings, error) {
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	rides, err := s.rideRepo.List(ctx, repository.RideFilter{
		CaptainID: captainID,
		Status:    domain.RideStatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	earnings := &Earnings{}
	for _, ride := range rides {
		if !ridePaid(ride) {
			continue
		}

		completed := ride.CompletedAt
		if completed.IsZero() {
			completed = ride.UpdatedAt
		}

		earnings.Total += ride.Fare
		earnings.RideCount++

		if completed.Year() == asOf.Year() {
			earnings.ThisYear += ride.Fare
			if completed.Month() == asOf.Month() {
				earnings.ThisMonth += ride.Fare
				if completed.Day() == asOf.Day() {
					earnings.Today += ride.Fare
				}
			}
		}
	}

	return earnings, nil
}

// ridePaid reports whether a completed ride counts toward earnings. Payment
// verification and trip completion are independent: a completed online ride
// whose verification never ran has PaymentDone false and is excluded.
func ridePaid(ride *domain.Ride) bool {
	switch ride.PaymentType {
	case domain.PaymentTypeOnline:
		return ride.PaymentDone
	case domain.PaymentTypeCash:
		return ride.PaymentDone
	default:
		return false
	}
}
