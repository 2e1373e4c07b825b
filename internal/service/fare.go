package service

import (
	"context"
	"math"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/maps"
)

// fareRates holds the rate entries for one vehicle class.
type fareRates struct {
	Base   float64
	PerKm  float64
	PerMin float64
}

// fareMatrix is the fixed per-class rate table. Rates are whole currency
// units except PerMin which is fractional.
var fareMatrix = map[domain.VehicleClass]fareRates{
	domain.VehicleSwift:        {Base: 30, PerKm: 26, PerMin: 0.80},
	domain.VehicleSwiftDzire:   {Base: 35, PerKm: 28, PerMin: 0.90},
	domain.VehicleWagonR:       {Base: 28, PerKm: 24, PerMin: 0.75},
	domain.VehicleErtiga:       {Base: 45, PerKm: 32, PerMin: 1.10},
	domain.VehicleInnova:       {Base: 60, PerKm: 38, PerMin: 1.30},
	domain.VehicleInnovaCrysta: {Base: 75, PerKm: 42, PerMin: 1.50},
	domain.VehicleScorpio:      {Base: 55, PerKm: 36, PerMin: 1.20},
	domain.VehicleFortuner:     {Base: 95, PerKm: 50, PerMin: 1.80},
}

// ComputeFare computes the fare for one vehicle class from resolved distance
// and duration. Pure and deterministic: identical inputs always produce an
// identical fare.
func ComputeFare(class domain.VehicleClass, distanceMeters, durationSeconds int64) (int64, error) {
	rates, ok := fareMatrix[class]
	if !ok {
		return 0, ErrInvalidVehicleClass
	}

	distanceKm := float64(distanceMeters) / 1000
	durationMin := float64(durationSeconds) / 60

	fare := rates.Base + distanceKm*rates.PerKm + durationMin*rates.PerMin
	return int64(math.Round(fare)), nil
}

// RouteResolver resolves an itinerary to driving distance and duration.
// Backed by the Google Maps Distance Matrix in production.
type RouteResolver interface {
	Resolve(ctx context.Context, origin, destination string) (*maps.Route, error)
}

// FareEstimate is the per-class fare map for one itinerary.
type FareEstimate struct {
	Pickup          string
	Destination     string
	DistanceMeters  int64
	DurationSeconds int64
	Fares           map[domain.VehicleClass]int64
}

// FareService estimates fares for itineraries.
type FareService struct {
	resolver RouteResolver
}

// NewFareService creates a new FareService.
func NewFareService(resolver RouteResolver) *FareService {
	return &FareService{resolver: resolver}
}

// Estimate resolves the itinerary and computes the fare for every supported
// vehicle class.
func (s *FareService) Estimate(ctx context.Context, pickup, destination string) (*FareEstimate, error) {
	if pickup == "" || destination == "" {
		return nil, ErrInvalidItinerary
	}

	route, err := s.resolveRoute(ctx, pickup, destination)
	if err != nil {
		return nil, err
	}

	fares := make(map[domain.VehicleClass]int64, len(domain.VehicleClasses))
	for _, class := range domain.VehicleClasses {
		fare, err := ComputeFare(class, route.DistanceMeters, route.DurationSeconds)
		if err != nil {
			return nil, err
		}
		fares[class] = fare
	}

	return &FareEstimate{
		Pickup:          pickup,
		Destination:     destination,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Fares:           fares,
	}, nil
}

// resolveRoute wraps resolver failures into the route-unavailable error so
// callers never see raw maps client errors.
func (s *FareService) resolveRoute(ctx context.Context, pickup, destination string) (*maps.Route, error) {
	if s.resolver == nil {
		return nil, ErrRouteUnavailable
	}

	route, err := s.resolver.Resolve(ctx, pickup, destination)
	if err != nil {
		return nil, ErrRouteUnavailable
	}
	if route.DistanceMeters <= 0 || route.DurationSeconds <= 0 {
		return nil, ErrRouteUnavailable
	}

	return route, nil
}
