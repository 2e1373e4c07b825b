package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 4. DISPATCH
// ──────────────────────────────────────────────

func newDispatchFixture() (*MockRideRepository, *MockCaptainRepository, *MockNotifier, *service.DispatchService) {
	rideRepo := NewMockRideRepository()
	captainRepo := NewMockCaptainRepository()
	riderRepo := NewMockRiderRepository()
	notifier := NewMockNotifier()
	svc := service.NewDispatchService(rideRepo, captainRepo, riderRepo, NewMockLockStore(), notifier, nil, nil)
	return rideRepo, captainRepo, notifier, svc
}

func TestAssign_PendingRide(t *testing.T) {
	t.Parallel()

	rideRepo, captainRepo, notifier, svc := newDispatchFixture()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "rider-1", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive})

	ride, err := svc.Assign(context.Background(), "ride-1", "cap-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected status accepted, got %s", ride.Status)
	}
	if ride.CaptainID != "cap-1" {
		t.Errorf("expected captain cap-1, got %s", ride.CaptainID)
	}

	event := notifier.LastEvent()
	if event.Kind != "assigned" || event.RiderID != "rider-1" {
		t.Errorf("expected assigned event for rider-1, got %+v", event)
	}
}

func TestAssign_BlockedCaptain(t *testing.T) {
	t.Parallel()

	rideRepo, captainRepo, _, svc := newDispatchFixture()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "rider-1", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusBlocked})

	if _, err := svc.Assign(context.Background(), "ride-1", "cap-1"); !errors.Is(err, service.ErrCaptainBlocked) {
		t.Fatalf("expected ErrCaptainBlocked, got %v", err)
	}
	if got := rideRepo.GetRide("ride-1").Status; got != domain.RideStatusPending {
		t.Errorf("ride must stay pending, got %s", got)
	}
}

func TestAssign_UnknownCaptain(t *testing.T) {
	t.Parallel()

	rideRepo, _, _, svc := newDispatchFixture()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", Status: domain.RideStatusPending})

	_, err := svc.Assign(context.Background(), "ride-1", "ghost")
	if err == nil {
		t.Fatal("expected error for unknown captain")
	}
}

func TestAssign_NonPendingRide(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.RideStatus{
		domain.RideStatusAccepted,
		domain.RideStatusOngoing,
		domain.RideStatusCompleted,
		domain.RideStatusCancelled,
	} {
		rideRepo, captainRepo, _, svc := newDispatchFixture()
		rideRepo.AddRide(&domain.Ride{ID: "ride-1", Status: status, CaptainID: "other"})
		captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive})

		if _, err := svc.Assign(context.Background(), "ride-1", "cap-1"); !errors.Is(err, service.ErrRideNotPending) {
			t.Errorf("status %s: expected ErrRideNotPending, got %v", status, err)
		}
		if got := rideRepo.GetRide("ride-1").CaptainID; got != "other" {
			t.Errorf("status %s: assignment must not overwrite captain, got %s", status, got)
		}
	}
}

func TestAssign_ConcurrentDoubleAssign(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	captainRepo := NewMockCaptainRepository()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "rider-1", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-x", Status: domain.CaptainStatusActive})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-y", Status: domain.CaptainStatusActive})

	// No lock store: the conditional update alone must serialize the race.
	svc := service.NewDispatchService(rideRepo, captainRepo, NewMockRiderRepository(), nil, nil, nil, nil)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, captain := range []string{"cap-x", "cap-y"} {
		wg.Add(1)
		go func(i int, captain string) {
			defer wg.Done()
			_, results[i] = svc.Assign(context.Background(), "ride-1", captain)
		}(i, captain)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrRideNotPending):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d wins %d conflicts", wins, conflicts)
	}

	ride := rideRepo.GetRide("ride-1")
	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected status accepted, got %s", ride.Status)
	}
	if ride.CaptainID != "cap-x" && ride.CaptainID != "cap-y" {
		t.Errorf("unexpected captain %q", ride.CaptainID)
	}
}

func TestAssign_LockHeldByAnotherDispatcher(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	captainRepo := NewMockCaptainRepository()
	lockStore := NewMockLockStore()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive})

	// Simulate an in-flight dispatch holding the ride lock.
	if locked, _ := lockStore.AcquireRideLock(context.Background(), "ride-1", 0); !locked {
		t.Fatal("setup: could not take lock")
	}

	svc := service.NewDispatchService(rideRepo, captainRepo, NewMockRiderRepository(), lockStore, nil, nil, nil)
	if _, err := svc.Assign(context.Background(), "ride-1", "cap-1"); !errors.Is(err, service.ErrRideNotPending) {
		t.Fatalf("expected ErrRideNotPending while locked, got %v", err)
	}
	if rideRepo.AssignCaptainCallCount != 0 {
		t.Error("locked dispatch must not reach the store")
	}
}

func TestAssign_EmailFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	captainRepo := NewMockCaptainRepository()
	riderRepo := NewMockRiderRepository()
	mailer := &MockMailer{SendError: errors.New("smtp down")}

	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "rider-1", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive, Email: "cap@x"})
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", Email: "rider@x"})

	svc := service.NewDispatchService(rideRepo, captainRepo, riderRepo, NewMockLockStore(), nil, mailer, nil)

	ride, err := svc.Assign(context.Background(), "ride-1", "cap-1")
	if err != nil {
		t.Fatalf("assignment must survive mail failure: %v", err)
	}
	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected status accepted, got %s", ride.Status)
	}
	if mailer.SendCallCount != 1 {
		t.Errorf("expected one send attempt, got %d", mailer.SendCallCount)
	}
}

// The registry has no availability check beyond existence and standing:
// a captain can hold several accepted rides at once. Manual dispatch relies
// on the operator for that judgement.
func TestAssign_SameCaptainTwoRides(t *testing.T) {
	t.Parallel()

	rideRepo, captainRepo, _, svc := newDispatchFixture()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", Status: domain.RideStatusPending})
	rideRepo.AddRide(&domain.Ride{ID: "ride-2", Status: domain.RideStatusPending})
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive})

	if _, err := svc.Assign(context.Background(), "ride-1", "cap-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Assign(context.Background(), "ride-2", "cap-1"); err != nil {
		t.Fatalf("second assignment for same captain must succeed: %v", err)
	}
}
