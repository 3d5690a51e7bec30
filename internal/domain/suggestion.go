package domain

// BudgetLine is one item of a suggestion's estimated budget breakdown.
type BudgetLine struct {
	Item string `json:"item"`
	Cost string `json:"cost"`
}

// Suggestion is a personalized future-trip idea produced by the suggestion
// collaborator. TransportMode is a plain string because the model may answer
// "MULTIPLE" in addition to the fixed mode set.
type Suggestion struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	EstimatedBudget string       `json:"estimatedBudget"`
	BudgetDetails   []BudgetLine `json:"budgetDetails"`
	TransportMode   string       `json:"transportMode"`
	Reason          string       `json:"reason"`
	ImageURL        string       `json:"imageUrl"`
}
