package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Route holds the resolved driving distance and duration between two places.
type Route struct {
	DistanceMeters  int64
	DurationSeconds int64
}

// RouteService resolves routes with the Google Maps Distance Matrix API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// Resolve returns the driving distance and duration from origin to destination.
func (s *RouteService) Resolve(ctx context.Context, origin, destination string) (*Route, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("no route found: %s", element.Status)
	}

	return &Route{
		DistanceMeters:  int64(element.Distance.Meters),
		DurationSeconds: int64(element.Duration.Seconds()),
	}, nil
}
