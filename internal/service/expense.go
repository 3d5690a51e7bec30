package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nkarstens/geojourney/internal/assist"
	"github.com/nkarstens/geojourney/internal/domain"
)

// GeneralGroup is the bucket key for expenses not associated with any
// currently known trip, including expenses whose trip was since cleared.
const GeneralGroup = "general"

// ExpenseStore is the persistence surface ExpenseService depends on.
type ExpenseStore interface {
	List(ctx context.Context) []domain.Expense
	Add(ctx context.Context, expense domain.Expense)
	Clear(ctx context.Context)
}

// ExpenseService implements expense logging and aggregation.
// It reads trips as well because grouping partitions expenses by known trip.
type ExpenseService struct {
	expenses  ExpenseStore
	trips     TripStore
	extractor assist.ExpenseExtractor
	now       func() time.Time
}

// NewExpenseService constructs an ExpenseService.
// extractor may be nil when AI expense parsing is not configured.
func NewExpenseService(expenses ExpenseStore, trips TripStore, extractor assist.ExpenseExtractor) *ExpenseService {
	return &ExpenseService{expenses: expenses, trips: trips, extractor: extractor, now: time.Now}
}

// Add validates and persists a new expense. Identity and timestamp are
// assigned here. TripID is taken as-is: it is a weak reference and a value
// that matches no trip simply lands in the general group later.
func (s *ExpenseService) Add(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if expense.Amount <= 0 {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w: amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(expense.Currency) == "" {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w: currency is required", domain.ErrValidation)
	}
	if strings.TrimSpace(expense.Description) == "" {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w: description is required", domain.ErrValidation)
	}
	if !expense.Category.Valid() {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w: unknown category %q", domain.ErrValidation, expense.Category)
	}

	expense.ID = uuid.NewString()
	expense.Currency = strings.ToUpper(strings.TrimSpace(expense.Currency))
	expense.Timestamp = s.now().UnixMilli()

	s.expenses.Add(ctx, expense)
	return expense, nil
}

// AddFromText extracts expense details from free text via the AI collaborator
// and logs the result. Extraction failures surface to the caller unchanged;
// the action is retryable by re-invocation, nothing is persisted.
func (s *ExpenseService) AddFromText(ctx context.Context, text, tripID string) (domain.Expense, error) {
	if s.extractor == nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.AddFromText: expense extraction is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.AddFromText: %w: text is required", domain.ErrValidation)
	}

	parsed, err := s.extractor.ExtractExpense(ctx, text)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.AddFromText: %w", err)
	}

	return s.Add(ctx, domain.Expense{
		Amount:      parsed.Amount,
		Currency:    parsed.Currency,
		Description: parsed.Description,
		Category:    parsed.Category,
		TripID:      tripID,
	})
}

// List returns all expenses, newest first. Always non-nil.
func (s *ExpenseService) List(ctx context.Context) []domain.Expense {
	return s.expenses.List(ctx)
}

// Clear removes every stored expense.
func (s *ExpenseService) Clear(ctx context.Context) {
	s.expenses.Clear(ctx)
}

// Grouped partitions expenses into one bucket per known trip id plus the
// general bucket. Every known trip gets a bucket even when empty; an expense
// referencing an unknown trip is placed in general, never dropped.
func (s *ExpenseService) Grouped(ctx context.Context) map[string][]domain.Expense {
	groups := map[string][]domain.Expense{GeneralGroup: {}}
	for _, trip := range s.trips.List(ctx) {
		groups[trip.ID] = []domain.Expense{}
	}

	for _, e := range s.expenses.List(ctx) {
		if e.TripID != "" {
			if _, known := groups[e.TripID]; known {
				groups[e.TripID] = append(groups[e.TripID], e)
				continue
			}
		}
		groups[GeneralGroup] = append(groups[GeneralGroup], e)
	}
	return groups
}

// TotalsByCurrency sums expense amounts per currency code. No cross-currency
// conversion is attempted; each distinct currency reports its own total.
func (s *ExpenseService) TotalsByCurrency(ctx context.Context) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range s.expenses.List(ctx) {
		totals[e.Currency] += e.Amount
	}
	return totals
}
