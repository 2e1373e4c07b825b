package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 9. CAPTAIN LOCATION
// ──────────────────────────────────────────────

func TestSaveCaptainLocation(t *testing.T) {
	t.Parallel()

	captainRepo := NewMockCaptainRepository()
	locationStore := NewMockLocationStore()
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1", Status: domain.CaptainStatusActive})

	svc := service.NewLocationService(captainRepo, locationStore, nil)

	if err := svc.SaveCaptainLocation(context.Background(), "cap-1", 26.45, 80.33); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	captain, err := captainRepo.GetByID(context.Background(), "cap-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captain.LastLat != 26.45 || captain.LastLng != 80.33 {
		t.Errorf("coordinate not persisted: %+v", captain)
	}

	loc, err := locationStore.GetLocation(context.Background(), "cap-1")
	if err != nil || loc == nil {
		t.Fatalf("expected geo index entry, got %v err %v", loc, err)
	}
	if loc.Lat != 26.45 || loc.Lng != 80.33 {
		t.Errorf("geo index coordinate mismatch: %+v", loc)
	}
}

func TestSaveCaptainLocation_OutOfRange(t *testing.T) {
	t.Parallel()

	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1"})
	svc := service.NewLocationService(captainRepo, NewMockLocationStore(), nil)
	ctx := context.Background()

	for _, c := range []struct{ lat, lng float64 }{
		{91, 0}, {-91, 0}, {0, 181}, {0, -181},
	} {
		if err := svc.SaveCaptainLocation(ctx, "cap-1", c.lat, c.lng); !errors.Is(err, service.ErrInvalidLocation) {
			t.Errorf("lat %v lng %v: expected ErrInvalidLocation, got %v", c.lat, c.lng, err)
		}
	}
	if captainRepo.UpdateLocationCallCount != 0 {
		t.Error("invalid coordinates must not reach the store")
	}
}

func TestSaveCaptainLocation_GeoIndexFailureTolerated(t *testing.T) {
	t.Parallel()

	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(&domain.Captain{ID: "cap-1"})
	locationStore := NewMockLocationStore()
	locationStore.UpdateError = errors.New("redis down")

	svc := service.NewLocationService(captainRepo, locationStore, nil)

	if err := svc.SaveCaptainLocation(context.Background(), "cap-1", 26.45, 80.33); err != nil {
		t.Fatalf("geo index failure must not fail the update: %v", err)
	}
	if captainRepo.UpdateLocationCallCount != 1 {
		t.Error("expected the primary record updated")
	}
}

func TestSaveCaptainLocation_UnknownCaptain(t *testing.T) {
	t.Parallel()

	svc := service.NewLocationService(NewMockCaptainRepository(), NewMockLocationStore(), nil)
	if err := svc.SaveCaptainLocation(context.Background(), "ghost", 26.45, 80.33); err == nil {
		t.Error("expected error for unknown captain")
	}
}
