package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 1. FARE COMPUTATION
// ──────────────────────────────────────────────

func TestComputeFare_Swift(t *testing.T) {
	t.Parallel()

	// 5km at 26/km plus 10min at 0.80/min on a base of 30.
	fare, err := service.ComputeFare(domain.VehicleSwift, 5000, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fare != 168 {
		t.Errorf("expected fare 168, got %d", fare)
	}
}

func TestComputeFare_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := service.ComputeFare(domain.VehicleFortuner, 12345, 1823)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		fare, err := service.ComputeFare(domain.VehicleFortuner, 12345, 1823)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fare != first {
			t.Fatalf("fare not deterministic: %d vs %d", fare, first)
		}
	}
}

func TestComputeFare_AllClassesSupported(t *testing.T) {
	t.Parallel()

	for _, class := range domain.VehicleClasses {
		fare, err := service.ComputeFare(class, 5000, 600)
		if err != nil {
			t.Errorf("class %s: unexpected error: %v", class, err)
			continue
		}
		if fare <= 0 {
			t.Errorf("class %s: expected positive fare, got %d", class, fare)
		}
	}
}

func TestComputeFare_UnknownClass(t *testing.T) {
	t.Parallel()

	_, err := service.ComputeFare(domain.VehicleClass("Nano"), 5000, 600)
	if !errors.Is(err, service.ErrInvalidVehicleClass) {
		t.Errorf("expected ErrInvalidVehicleClass, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. FARE ESTIMATION
// ──────────────────────────────────────────────

func TestFareEstimate_AllClasses(t *testing.T) {
	t.Parallel()

	resolver := &MockRouteResolver{DistanceMeters: 5000, DurationSeconds: 600}
	fareService := service.NewFareService(resolver)

	estimate, err := fareService.Estimate(context.Background(), "Station Road", "Airport")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if estimate.DistanceMeters != 5000 {
		t.Errorf("expected distance 5000, got %d", estimate.DistanceMeters)
	}
	if len(estimate.Fares) != len(domain.VehicleClasses) {
		t.Errorf("expected %d fares, got %d", len(domain.VehicleClasses), len(estimate.Fares))
	}
	if estimate.Fares[domain.VehicleSwift] != 168 {
		t.Errorf("expected Swift fare 168, got %d", estimate.Fares[domain.VehicleSwift])
	}
}

func TestFareEstimate_MissingItinerary(t *testing.T) {
	t.Parallel()

	fareService := service.NewFareService(&MockRouteResolver{DistanceMeters: 5000, DurationSeconds: 600})

	if _, err := fareService.Estimate(context.Background(), "", "Airport"); !errors.Is(err, service.ErrInvalidItinerary) {
		t.Errorf("expected ErrInvalidItinerary, got %v", err)
	}
}

func TestFareEstimate_RouteUnavailable(t *testing.T) {
	t.Parallel()

	resolver := &MockRouteResolver{Err: errors.New("maps down")}
	fareService := service.NewFareService(resolver)

	_, err := fareService.Estimate(context.Background(), "Station Road", "Airport")
	if !errors.Is(err, service.ErrRouteUnavailable) {
		t.Errorf("expected ErrRouteUnavailable, got %v", err)
	}

	// No resolver configured behaves the same as a failing one.
	fareService = service.NewFareService(nil)
	_, err = fareService.Estimate(context.Background(), "Station Road", "Airport")
	if !errors.Is(err, service.ErrRouteUnavailable) {
		t.Errorf("expected ErrRouteUnavailable with nil resolver, got %v", err)
	}
}

func TestFareEstimate_ZeroDistanceRejected(t *testing.T) {
	t.Parallel()

	resolver := &MockRouteResolver{DistanceMeters: 0, DurationSeconds: 600}
	fareService := service.NewFareService(resolver)

	if _, err := fareService.Estimate(context.Background(), "A", "B"); !errors.Is(err, service.ErrRouteUnavailable) {
		t.Errorf("expected ErrRouteUnavailable for zero distance, got %v", err)
	}
}
