package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// CommuteService estimates the trip from a listing's location to the
// user's target area via the Google Maps Directions API. Optional
// enrichment: the analyze flow works identically without it.
type CommuteService struct {
	client *maps.Client
}

// NewCommuteService creates a CommuteService with the given API key.
func NewCommuteService(apiKey string) (*CommuteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &CommuteService{client: client}, nil
}

// Estimate returns the driving duration and a human-readable distance
// from origin to destination.
func (s *CommuteService) Estimate(ctx context.Context, origin, destination string) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
		Region:      "CA", // Bias results to Canada
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

// Note formats a one-line commute summary, or "" when either endpoint is
// missing or the lookup fails. Never an error path for the caller.
func (s *CommuteService) Note(ctx context.Context, origin, destination string) string {
	if s == nil || origin == "" || destination == "" {
		return ""
	}
	dur, dist, err := s.Estimate(ctx, origin, destination)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Approx. %s (%s) driving to %s.", dur.Round(time.Minute), dist, destination)
}
