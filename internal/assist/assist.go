// Package assist defines the narrow interfaces through which the application
// consumes the hosted language model, plus the HTTP client implementing them.
//
// Each use case gets its own single-method interface so core logic can be
// tested against deterministic stubs. No retry or backoff is layered on top:
// a failed call surfaces to the caller, and the triggering user action is
// simply retryable by re-invocation.
package assist

import (
	"context"

	"github.com/nkarstens/geojourney/internal/domain"
)

// ModeDetector classifies a recorded coordinate path into a transport mode.
type ModeDetector interface {
	// DetectMode returns one of the fixed transport modes for the path.
	// Paths with fewer than two points are UNKNOWN without a remote call.
	// On failure the returned mode is ModeUnknown alongside the error, so
	// callers can fall back without a second decision.
	DetectMode(ctx context.Context, path []domain.Coordinates) (domain.TransportMode, error)
}

// NoDetector is the ModeDetector used when no AI client is configured.
// Every path classifies as UNKNOWN, without error and without a remote call.
type NoDetector struct{}

// DetectMode always returns domain.ModeUnknown.
func (NoDetector) DetectMode(_ context.Context, _ []domain.Coordinates) (domain.TransportMode, error) {
	return domain.ModeUnknown, nil
}

var _ ModeDetector = NoDetector{}

// ExtractedExpense is the structured result of parsing free text.
// It carries everything an Expense needs except identity and timestamp,
// which the caller assigns.
type ExtractedExpense struct {
	Amount      float64                `json:"amount"`
	Currency    string                 `json:"currency"`
	Description string                 `json:"description"`
	Category    domain.ExpenseCategory `json:"category"`
}

// ExpenseExtractor parses expense details out of free text such as a receipt
// or a booking confirmation message.
type ExpenseExtractor interface {
	ExtractExpense(ctx context.Context, text string) (ExtractedExpense, error)
}

// TripSuggester produces personalized future-trip suggestions from the
// user's travel and spending history.
type TripSuggester interface {
	SuggestTrips(ctx context.Context, trips []domain.Trip, expenses []domain.Expense) ([]domain.Suggestion, error)
}

// InsightGenerator writes a short free-text analysis of aggregate trip data.
type InsightGenerator interface {
	Insights(ctx context.Context, trips []domain.Trip) (string, error)
}
