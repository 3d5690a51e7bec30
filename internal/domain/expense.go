package domain

// ExpenseCategory buckets an expense for reporting.
type ExpenseCategory string

const (
	CategoryTicket        ExpenseCategory = "TICKET"
	CategoryFood          ExpenseCategory = "FOOD"
	CategoryShopping      ExpenseCategory = "SHOPPING"
	CategoryAccommodation ExpenseCategory = "ACCOMMODATION"
	CategoryOther         ExpenseCategory = "OTHER"
)

// AllCategories lists every valid expense category in declaration order.
var AllCategories = []ExpenseCategory{
	CategoryTicket, CategoryFood, CategoryShopping, CategoryAccommodation, CategoryOther,
}

// Valid reports whether c is one of the declared categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryTicket, CategoryFood, CategoryShopping, CategoryAccommodation, CategoryOther:
		return true
	}
	return false
}

// Expense is a single logged spend. TripID, when set, is a weak reference to
// a Trip: nothing enforces that the trip still exists, and aggregation
// treats a dangling reference as "not associated with any trip" rather than
// an error. Immutable once created; deleted only by bulk clear.
type Expense struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"` // ISO-like code, e.g. "USD"
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Timestamp   int64           `json:"timestamp"` // Unix milliseconds
	TripID      string          `json:"tripId,omitempty"`
}
