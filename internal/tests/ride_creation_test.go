package tests

import (
	"context"
	"errors"
	"testing"
	"unicode"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 3. RIDE CREATION
// ──────────────────────────────────────────────

func newRideService(rideRepo *MockRideRepository, notifier *MockNotifier) *service.RideService {
	resolver := &MockRouteResolver{DistanceMeters: 5000, DurationSeconds: 600}
	fareService := service.NewFareService(resolver)
	return service.NewRideService(rideRepo, fareService, notifier, nil)
}

func TestCreateRide_PendingWithCodeAndFare(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideService := newRideService(rideRepo, NewMockNotifier())

	ride, err := rideService.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:      "rider-1",
		Pickup:       "Station Road",
		Destination:  "Airport",
		VehicleClass: domain.VehicleSwift,
		PaymentType:  domain.PaymentTypeCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected status pending, got %s", ride.Status)
	}
	if ride.Fare != 168 {
		t.Errorf("expected fare 168, got %d", ride.Fare)
	}
	if ride.CaptainID != "" {
		t.Errorf("expected no captain on creation, got %s", ride.CaptainID)
	}
	if len(ride.TripCode) != 6 {
		t.Fatalf("expected 6-digit trip code, got %q", ride.TripCode)
	}
	for _, r := range ride.TripCode {
		if !unicode.IsDigit(r) {
			t.Fatalf("trip code %q contains non-digit", ride.TripCode)
		}
	}
}

func TestCreateRide_TripCodeHiddenFromReads(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideService := newRideService(rideRepo, NewMockNotifier())

	created, err := rideService.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:      "rider-1",
		Pickup:       "Station Road",
		Destination:  "Airport",
		VehicleClass: domain.VehicleSwift,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := rideService.GetRide(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.TripCode != "" {
		t.Errorf("trip code leaked through read: %q", fetched.TripCode)
	}

	code, err := rideRepo.GetTripCode(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != created.TripCode {
		t.Errorf("stored code %q does not match created %q", code, created.TripCode)
	}
}

func TestCreateRide_Validation(t *testing.T) {
	t.Parallel()

	rideService := newRideService(NewMockRideRepository(), NewMockNotifier())
	ctx := context.Background()

	cases := []struct {
		name string
		req  service.CreateRideRequest
		want error
	}{
		{
			name: "missing rider",
			req:  service.CreateRideRequest{Pickup: "A", Destination: "B", VehicleClass: domain.VehicleSwift},
			want: service.ErrInvalidRiderID,
		},
		{
			name: "missing pickup",
			req:  service.CreateRideRequest{RiderID: "r", Destination: "B", VehicleClass: domain.VehicleSwift},
			want: service.ErrInvalidItinerary,
		},
		{
			name: "missing destination",
			req:  service.CreateRideRequest{RiderID: "r", Pickup: "A", VehicleClass: domain.VehicleSwift},
			want: service.ErrInvalidItinerary,
		},
		{
			name: "unknown class",
			req:  service.CreateRideRequest{RiderID: "r", Pickup: "A", Destination: "B", VehicleClass: "Nano"},
			want: service.ErrInvalidVehicleClass,
		},
		{
			name: "bad payment type",
			req:  service.CreateRideRequest{RiderID: "r", Pickup: "A", Destination: "B", VehicleClass: domain.VehicleSwift, PaymentType: "crypto"},
			want: service.ErrInvalidPaymentType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := rideService.CreateRide(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateRide_RouteUnavailableRejectsCreation(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	fareService := service.NewFareService(&MockRouteResolver{Err: errors.New("timeout")})
	rideService := service.NewRideService(rideRepo, fareService, nil, nil)

	_, err := rideService.CreateRide(context.Background(), service.CreateRideRequest{
		RiderID:      "rider-1",
		Pickup:       "Station Road",
		Destination:  "Airport",
		VehicleClass: domain.VehicleSwift,
	})
	if !errors.Is(err, service.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
	if rideRepo.CreateCallCount != 0 {
		t.Errorf("expected no ride persisted, got %d creates", rideRepo.CreateCallCount)
	}
}

func TestConfirmRide_ChangesTypeKeepsDoneFlag(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideService := newRideService(rideRepo, NewMockNotifier())

	rideRepo.AddRide(&domain.Ride{
		ID:          "ride-1",
		RiderID:     "rider-1",
		Status:      domain.RideStatusPending,
		PaymentType: domain.PaymentTypeCash,
		PaymentDone: false,
	})

	ride, err := rideService.ConfirmRide(context.Background(), "ride-1", domain.PaymentTypeOnline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.PaymentType != domain.PaymentTypeOnline {
		t.Errorf("expected payment type online, got %s", ride.PaymentType)
	}
	if ride.PaymentDone {
		t.Error("confirm must not flip the done flag")
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("confirm must not change lifecycle state, got %s", ride.Status)
	}
}
