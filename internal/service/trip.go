// Package service contains the business logic for the GeoJourney API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// collaborator calls. No storage details or HTTP concerns live here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nkarstens/geojourney/internal/domain"
)

// TripStore is the persistence surface TripService depends on.
// Defining the interface here (in the consumer package) lets tests inject an
// in-memory double without touching the store layer.
type TripStore interface {
	List(ctx context.Context) []domain.Trip
	Add(ctx context.Context, trip domain.Trip)
	Clear(ctx context.Context)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips TripStore
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(trips TripStore) *TripService {
	return &TripService{trips: trips}
}

// Create validates and persists a manually entered trip. Manual trips carry
// no GPS path; origin and destination are zero-coordinate placeholders
// stamped with the trip's start and end times.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateManualTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.ID = uuid.NewString()
	trip.Path = nil
	trip.Mode = domain.ParseTransportMode(string(trip.Mode))
	trip.Origin = domain.Coordinates{Timestamp: trip.StartTime}
	trip.Destination = domain.Coordinates{Timestamp: trip.EndTime}

	s.trips.Add(ctx, trip)
	return trip, nil
}

// List returns all trips, newest first. Always non-nil.
func (s *TripService) List(ctx context.Context) []domain.Trip {
	return s.trips.List(ctx)
}

// Clear removes every stored trip.
func (s *TripService) Clear(ctx context.Context) {
	s.trips.Clear(ctx)
}

// validateManualTrip enforces the manual entry rules: both addresses and
// both times are required, and the end must be strictly after the start.
func validateManualTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.OriginAddress) == "" {
		return fmt.Errorf("service.TripService.Create: %w: origin address is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.DestinationAddress) == "" {
		return fmt.Errorf("service.TripService.Create: %w: destination address is required", domain.ErrValidation)
	}
	if trip.StartTime <= 0 || trip.EndTime <= 0 {
		return fmt.Errorf("service.TripService.Create: %w: start and end times are required", domain.ErrValidation)
	}
	if trip.StartTime >= trip.EndTime {
		return fmt.Errorf("service.TripService.Create: %w: end time must be after start time", domain.ErrValidation)
	}
	if trip.Companions < 0 {
		return fmt.Errorf("service.TripService.Create: %w: companions cannot be negative", domain.ErrValidation)
	}
	return nil
}
