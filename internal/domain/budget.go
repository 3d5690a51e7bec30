package domain

// Budget is the single spending budget for the user scope.
// It is replaced wholesale on every save, never merged; an absent budget
// means "no budget set". Amount must be positive, enforced at save time
// rather than guarded against at aggregation time.
type Budget struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// BudgetProgress reports how much of the budget has been consumed.
// Percent is capped at 100 for display; OverBudget carries the uncapped truth.
type BudgetProgress struct {
	Budget     Budget  `json:"budget"`
	Spent      float64 `json:"spent"`      // total logged in the budget's currency
	Percent    float64 `json:"percent"`    // min(100, spent/amount*100)
	OverBudget bool    `json:"overBudget"` // true when spent strictly exceeds amount
}
