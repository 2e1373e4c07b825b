package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 8. EARNINGS
// ──────────────────────────────────────────────

func completedRide(id string, fare int64, paymentType domain.PaymentType, paid bool, completedAt time.Time) *domain.Ride {
	return &domain.Ride{
		ID:          id,
		CaptainID:   "cap-1",
		Fare:        fare,
		PaymentType: paymentType,
		PaymentDone: paid,
		Status:      domain.RideStatusCompleted,
		CompletedAt: completedAt,
		UpdatedAt:   completedAt,
	}
}

func TestEarnings_UnverifiedOnlineRideExcluded(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	asOf := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)

	// Completed online ride whose verification never ran: completion and
	// verification are independent, so this one counts for nothing.
	rideRepo.AddRide(completedRide("ride-1", 500, domain.PaymentTypeOnline, false, asOf))
	rideRepo.AddRide(completedRide("ride-2", 300, domain.PaymentTypeOnline, true, asOf))

	svc := service.NewEarningsService(rideRepo)
	earnings, err := svc.EarningsAsOf(context.Background(), "cap-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if earnings.Total != 300 {
		t.Errorf("expected total 300, got %d", earnings.Total)
	}
	if earnings.RideCount != 1 {
		t.Errorf("expected 1 counted ride, got %d", earnings.RideCount)
	}
}

func TestEarnings_UnsettledCashRideExcluded(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	asOf := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)

	rideRepo.AddRide(completedRide("ride-1", 200, domain.PaymentTypeCash, false, asOf))
	rideRepo.AddRide(completedRide("ride-2", 450, domain.PaymentTypeCash, true, asOf))

	svc := service.NewEarningsService(rideRepo)
	earnings, err := svc.EarningsAsOf(context.Background(), "cap-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if earnings.Total != 450 || earnings.RideCount != 1 {
		t.Errorf("expected total 450 from one ride, got %d from %d", earnings.Total, earnings.RideCount)
	}
}

func TestEarnings_Buckets(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	asOf := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)

	rideRepo.AddRide(completedRide("today", 100, domain.PaymentTypeCash, true, asOf.Add(-2*time.Hour)))
	rideRepo.AddRide(completedRide("this-month", 200, domain.PaymentTypeCash, true, asOf.AddDate(0, 0, -10)))
	rideRepo.AddRide(completedRide("this-year", 400, domain.PaymentTypeCash, true, asOf.AddDate(0, -2, 0)))
	rideRepo.AddRide(completedRide("last-year", 800, domain.PaymentTypeCash, true, asOf.AddDate(-1, 0, 0)))

	// Non-terminal and cancelled rides never count, settled or not.
	rideRepo.AddRide(&domain.Ride{
		ID: "ongoing", CaptainID: "cap-1", Fare: 999,
		PaymentType: domain.PaymentTypeCash, PaymentDone: true,
		Status: domain.RideStatusOngoing,
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "cancelled", CaptainID: "cap-1", Fare: 999,
		PaymentType: domain.PaymentTypeCash, PaymentDone: true,
		Status: domain.RideStatusCancelled,
	})

	// Another captain's rides are invisible here.
	other := completedRide("other", 999, domain.PaymentTypeCash, true, asOf)
	other.CaptainID = "cap-2"
	rideRepo.AddRide(other)

	svc := service.NewEarningsService(rideRepo)
	earnings, err := svc.EarningsAsOf(context.Background(), "cap-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if earnings.Today != 100 {
		t.Errorf("expected today 100, got %d", earnings.Today)
	}
	if earnings.ThisMonth != 300 {
		t.Errorf("expected this month 300, got %d", earnings.ThisMonth)
	}
	if earnings.ThisYear != 700 {
		t.Errorf("expected this year 700, got %d", earnings.ThisYear)
	}
	if earnings.Total != 1500 {
		t.Errorf("expected total 1500, got %d", earnings.Total)
	}
	if earnings.RideCount != 4 {
		t.Errorf("expected 4 counted rides, got %d", earnings.RideCount)
	}
}

func TestEarnings_FallsBackToUpdatedAt(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	asOf := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)

	// Legacy row without a completion timestamp.
	ride := completedRide("legacy", 250, domain.PaymentTypeCash, true, time.Time{})
	ride.UpdatedAt = asOf
	rideRepo.AddRide(ride)

	svc := service.NewEarningsService(rideRepo)
	earnings, err := svc.EarningsAsOf(context.Background(), "cap-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earnings.Today != 250 {
		t.Errorf("expected today 250 via UpdatedAt fallback, got %d", earnings.Today)
	}
}

func TestEarnings_EmptyCaptainID(t *testing.T) {
	t.Parallel()

	svc := service.NewEarningsService(NewMockRideRepository())
	if _, err := svc.Earnings(context.Background(), ""); !errors.Is(err, service.ErrInvalidCaptainID) {
		t.Errorf("expected ErrInvalidCaptainID, got %v", err)
	}
}

func TestEarnings_NoRides(t *testing.T) {
	t.Parallel()

	svc := service.NewEarningsService(NewMockRideRepository())
	earnings, err := svc.Earnings(context.Background(), "cap-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earnings.Total != 0 || earnings.RideCount != 0 {
		t.Errorf("expected zero earnings, got %+v", earnings)
	}
}
