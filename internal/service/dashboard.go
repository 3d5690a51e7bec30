package service

import (
	"context"
	"fmt"

	"github.com/nkarstens/geojourney/internal/assist"
	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/metrics"
)

// Summary aggregates the stored trip collection for the dashboard overview.
// All figures are recomputed from scratch on every call.
type Summary struct {
	TotalTrips       int                          `json:"totalTrips"`
	TotalDistanceKm  float64                      `json:"totalDistanceKm"`
	TotalCompanions  int                          `json:"totalCompanions"`
	ModeDistribution map[domain.TransportMode]int `json:"modeDistribution"`
	PeakHours        [24]int                      `json:"peakHours"`
	TripsByDay       [7]int                       `json:"tripsByDay"`
	Heatmap          []metrics.HeatmapPoint       `json:"heatmap"`
}

// DashboardService assembles derived metrics and AI commentary over the
// trip and expense collections.
type DashboardService struct {
	trips     TripStore
	expenses  ExpenseStore
	insights  assist.InsightGenerator
	suggester assist.TripSuggester
}

// NewDashboardService constructs a DashboardService.
// insights and suggester may be nil when the AI client is not configured.
func NewDashboardService(trips TripStore, expenses ExpenseStore, insights assist.InsightGenerator, suggester assist.TripSuggester) *DashboardService {
	return &DashboardService{trips: trips, expenses: expenses, insights: insights, suggester: suggester}
}

// Summary computes the full dashboard aggregation. Total over any trip
// collection, including none at all.
func (s *DashboardService) Summary(ctx context.Context) Summary {
	trips := s.trips.List(ctx)
	return Summary{
		TotalTrips:       len(trips),
		TotalDistanceKm:  metrics.TotalDistanceKm(trips),
		TotalCompanions:  metrics.TotalCompanions(trips),
		ModeDistribution: metrics.ModeDistribution(trips),
		PeakHours:        metrics.PeakHours(trips),
		TripsByDay:       metrics.TripsByDay(trips),
		Heatmap:          metrics.HeatmapPoints(trips),
	}
}

// Insights asks the AI collaborator for a free-text analysis of the trip
// data. Failures surface to the caller; the action is retryable as-is.
func (s *DashboardService) Insights(ctx context.Context) (string, error) {
	if s.insights == nil {
		return "", fmt.Errorf("service.DashboardService.Insights: insight generation is not configured")
	}

	text, err := s.insights.Insights(ctx, s.trips.List(ctx))
	if err != nil {
		return "", fmt.Errorf("service.DashboardService.Insights: %w", err)
	}
	return text, nil
}

// Suggest asks the AI collaborator for personalized future-trip suggestions
// based on the stored history.
func (s *DashboardService) Suggest(ctx context.Context) ([]domain.Suggestion, error) {
	if s.suggester == nil {
		return nil, fmt.Errorf("service.DashboardService.Suggest: trip suggestions are not configured")
	}

	suggestions, err := s.suggester.SuggestTrips(ctx, s.trips.List(ctx), s.expenses.List(ctx))
	if err != nil {
		return nil, fmt.Errorf("service.DashboardService.Suggest: %w", err)
	}
	return suggestions, nil
}
