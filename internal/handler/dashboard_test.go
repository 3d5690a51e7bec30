package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/handler"
	"github.com/nkarstens/geojourney/internal/service"
)

// mockDashboardServicer is a test double for handler.DashboardServicer.
type mockDashboardServicer struct {
	summary  func(ctx context.Context) service.Summary
	insights func(ctx context.Context) (string, error)
	suggest  func(ctx context.Context) ([]domain.Suggestion, error)
}

func (m *mockDashboardServicer) Summary(ctx context.Context) service.Summary {
	return m.summary(ctx)
}
func (m *mockDashboardServicer) Insights(ctx context.Context) (string, error) {
	return m.insights(ctx)
}
func (m *mockDashboardServicer) Suggest(ctx context.Context) ([]domain.Suggestion, error) {
	return m.suggest(ctx)
}

var _ handler.DashboardServicer = (*mockDashboardServicer)(nil)

func dashboardRoutes(svc handler.DashboardServicer) http.Handler {
	return handler.NewServer(nil, nil, nil, nil, nil, nil, svc).Routes()
}

func TestDashboardSummary_200(t *testing.T) {
	svc := &mockDashboardServicer{
		summary: func(context.Context) service.Summary {
			return service.Summary{
				TotalTrips:       2,
				TotalDistanceKm:  8.4,
				ModeDistribution: map[domain.TransportMode]int{domain.ModeBiking: 2},
			}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	dashboardRoutes(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got service.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalTrips)
	assert.Equal(t, 2, got.ModeDistribution[domain.ModeBiking])
}

func TestDashboardInsights_200(t *testing.T) {
	svc := &mockDashboardServicer{
		insights: func(context.Context) (string, error) { return "you mostly bike", nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/insights", nil)
	rec := httptest.NewRecorder()
	dashboardRoutes(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"insights":"you mostly bike"}`, rec.Body.String())
}

func TestDashboardInsights_502_OnFailure(t *testing.T) {
	svc := &mockDashboardServicer{
		insights: func(context.Context) (string, error) { return "", errors.New("model unavailable") },
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/insights", nil)
	rec := httptest.NewRecorder()
	dashboardRoutes(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "insights_failed", decodeError(t, rec).Error.Code)
}

func TestSuggestions_200(t *testing.T) {
	svc := &mockDashboardServicer{
		suggest: func(context.Context) ([]domain.Suggestion, error) {
			return []domain.Suggestion{{Title: "Lisbon weekend", TransportMode: "TRANSIT"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/suggestions", nil)
	rec := httptest.NewRecorder()
	dashboardRoutes(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Suggestion
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Lisbon weekend", got[0].Title)
}

func TestSuggestions_502_OnFailure(t *testing.T) {
	svc := &mockDashboardServicer{
		suggest: func(context.Context) ([]domain.Suggestion, error) {
			return nil, errors.New("model unavailable")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/suggestions", nil)
	rec := httptest.NewRecorder()
	dashboardRoutes(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
