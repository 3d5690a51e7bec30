package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarstens/geojourney/internal/assist"
	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/repo"
	"github.com/nkarstens/geojourney/internal/service"
	"github.com/nkarstens/geojourney/internal/store"
)

// stubExtractor is a test double for assist.ExpenseExtractor.
type stubExtractor struct {
	extract func(ctx context.Context, text string) (assist.ExtractedExpense, error)
}

func (s *stubExtractor) ExtractExpense(ctx context.Context, text string) (assist.ExtractedExpense, error) {
	return s.extract(ctx, text)
}

var _ assist.ExpenseExtractor = (*stubExtractor)(nil)

func newExpenseService(extractor assist.ExpenseExtractor) (*service.ExpenseService, *service.TripService) {
	trips := newTripRepo()
	expenses := repo.NewExpenses(store.NewMemory(), discardLogger())
	return service.NewExpenseService(expenses, trips, extractor), service.NewTripService(trips)
}

func validExpense() domain.Expense {
	return domain.Expense{
		Amount:      12.5,
		Currency:    "usd",
		Description: "Lunch",
		Category:    domain.CategoryFood,
	}
}

// ---- Add -------------------------------------------------------------------

func TestExpenseService_Add_Valid(t *testing.T) {
	svc, _ := newExpenseService(nil)

	got, err := svc.Add(context.Background(), validExpense())

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.NotZero(t, got.Timestamp)
	assert.Equal(t, "USD", got.Currency, "currency is normalized to upper case")
}

func TestExpenseService_Add_NonPositiveAmount(t *testing.T) {
	svc, _ := newExpenseService(nil)

	e := validExpense()
	e.Amount = 0

	_, err := svc.Add(context.Background(), e)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExpenseService_Add_MissingDescription(t *testing.T) {
	svc, _ := newExpenseService(nil)

	e := validExpense()
	e.Description = ""

	_, err := svc.Add(context.Background(), e)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExpenseService_Add_BadCategory(t *testing.T) {
	svc, _ := newExpenseService(nil)

	e := validExpense()
	e.Category = "LOOT"

	_, err := svc.Add(context.Background(), e)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExpenseService_Add_DanglingTripIDAccepted(t *testing.T) {
	svc, _ := newExpenseService(nil)

	e := validExpense()
	e.TripID = "no-such-trip"

	got, err := svc.Add(context.Background(), e)

	// Weak reference: no referential integrity check at logging time.
	require.NoError(t, err)
	assert.Equal(t, "no-such-trip", got.TripID)
}

// ---- AddFromText -----------------------------------------------------------

func TestExpenseService_AddFromText_Valid(t *testing.T) {
	extractor := &stubExtractor{
		extract: func(_ context.Context, text string) (assist.ExtractedExpense, error) {
			return assist.ExtractedExpense{
				Amount: 89, Currency: "EUR", Description: "Hotel night", Category: domain.CategoryAccommodation,
			}, nil
		},
	}
	svc, _ := newExpenseService(extractor)

	got, err := svc.AddFromText(context.Background(), "Booking confirmation: 89 EUR", "")

	require.NoError(t, err)
	assert.Equal(t, 89.0, got.Amount)
	assert.Equal(t, domain.CategoryAccommodation, got.Category)
	assert.Len(t, svc.List(context.Background()), 1)
}

func TestExpenseService_AddFromText_ExtractionFailureSavesNothing(t *testing.T) {
	extractErr := errors.New("failed to parse expense from text")
	extractor := &stubExtractor{
		extract: func(context.Context, string) (assist.ExtractedExpense, error) {
			return assist.ExtractedExpense{}, extractErr
		},
	}
	svc, _ := newExpenseService(extractor)

	_, err := svc.AddFromText(context.Background(), "???", "")

	assert.ErrorIs(t, err, extractErr)
	assert.Empty(t, svc.List(context.Background()))
}

func TestExpenseService_AddFromText_NotConfigured(t *testing.T) {
	svc, _ := newExpenseService(nil)

	_, err := svc.AddFromText(context.Background(), "text", "")

	assert.ErrorContains(t, err, "not configured")
}

// ---- Grouped ---------------------------------------------------------------

func TestExpenseService_Grouped_PartitionsByKnownTrip(t *testing.T) {
	svc, tripSvc := newExpenseService(nil)

	trip, err := tripSvc.Create(context.Background(), validManualTrip())
	require.NoError(t, err)

	onTrip := validExpense()
	onTrip.TripID = trip.ID
	_, err = svc.Add(context.Background(), onTrip)
	require.NoError(t, err)

	dangling := validExpense()
	dangling.TripID = "cleared-away"
	_, err = svc.Add(context.Background(), dangling)
	require.NoError(t, err)

	loose := validExpense()
	_, err = svc.Add(context.Background(), loose)
	require.NoError(t, err)

	groups := svc.Grouped(context.Background())

	require.Contains(t, groups, trip.ID)
	assert.Len(t, groups[trip.ID], 1)
	// Dangling and unassociated expenses land in general, never dropped.
	assert.Len(t, groups[service.GeneralGroup], 2)
}

func TestExpenseService_Grouped_EmptyTripGetsBucket(t *testing.T) {
	svc, tripSvc := newExpenseService(nil)

	trip, err := tripSvc.Create(context.Background(), validManualTrip())
	require.NoError(t, err)

	groups := svc.Grouped(context.Background())

	require.Contains(t, groups, trip.ID)
	assert.Empty(t, groups[trip.ID])
	assert.Empty(t, groups[service.GeneralGroup])
}

// ---- TotalsByCurrency ------------------------------------------------------

func TestExpenseService_TotalsByCurrency(t *testing.T) {
	svc, _ := newExpenseService(nil)

	for _, e := range []domain.Expense{
		{Amount: 10, Currency: "USD", Description: "a", Category: domain.CategoryFood},
		{Amount: 5.5, Currency: "USD", Description: "b", Category: domain.CategoryOther},
		{Amount: 20, Currency: "EUR", Description: "c", Category: domain.CategoryTicket},
	} {
		_, err := svc.Add(context.Background(), e)
		require.NoError(t, err)
	}

	totals := svc.TotalsByCurrency(context.Background())

	assert.InDelta(t, 15.5, totals["USD"], 0.001)
	assert.InDelta(t, 20, totals["EUR"], 0.001)
	assert.Len(t, totals, 2, "no cross-currency conversion")
}
