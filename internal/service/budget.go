package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkarstens/geojourney/internal/domain"
)

// BudgetStore is the persistence surface BudgetService depends on.
type BudgetStore interface {
	Get(ctx context.Context) *domain.Budget
	Save(ctx context.Context, b domain.Budget)
	Clear(ctx context.Context)
}

// BudgetService implements the singleton budget and its progress report.
type BudgetService struct {
	budget   BudgetStore
	expenses *ExpenseService
}

// NewBudgetService constructs a BudgetService. Progress needs expense totals,
// so the expense service is a direct dependency.
func NewBudgetService(budget BudgetStore, expenses *ExpenseService) *BudgetService {
	return &BudgetService{budget: budget, expenses: expenses}
}

// Get returns the current budget, or nil when none is set.
func (s *BudgetService) Get(ctx context.Context) *domain.Budget {
	return s.budget.Get(ctx)
}

// Save validates and replaces the budget. A zero or negative amount is a
// validation error, rejected here so progress never has to guard a division.
func (s *BudgetService) Save(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	if b.Amount <= 0 {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Save: %w: amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(b.Currency) == "" {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Save: %w: currency is required", domain.ErrValidation)
	}

	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	s.budget.Save(ctx, b)
	return b, nil
}

// Clear removes the budget entirely.
func (s *BudgetService) Clear(ctx context.Context) {
	s.budget.Clear(ctx)
}

// Progress reports budget consumption. Spend counts only expenses logged in
// the budget's own currency, defaulting to zero when none exist. The percent
// is capped at 100 for display; OverBudget is true when the uncapped ratio
// exceeds 1. Returns domain.ErrNotFound when no budget is set.
func (s *BudgetService) Progress(ctx context.Context) (domain.BudgetProgress, error) {
	b := s.budget.Get(ctx)
	if b == nil {
		return domain.BudgetProgress{}, fmt.Errorf("service.BudgetService.Progress: %w", domain.ErrNotFound)
	}

	spent := s.expenses.TotalsByCurrency(ctx)[b.Currency]
	ratio := spent / b.Amount

	percent := ratio * 100
	if percent > 100 {
		percent = 100
	}

	return domain.BudgetProgress{
		Budget:     *b,
		Spent:      spent,
		Percent:    percent,
		OverBudget: ratio > 1,
	}, nil
}
