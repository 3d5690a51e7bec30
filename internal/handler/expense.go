package handler

import (
	"net/http"

	"github.com/nkarstens/geojourney/internal/domain"
)

// ListExpenses handles GET /expenses. Returns the full log, newest first.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.expenses.List(r.Context()))
}

// CreateExpense handles POST /expenses: structured expense entry.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if !decodeBody(w, r, &expense) {
		return
	}

	created, err := s.expenses.Add(r.Context(), expense)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ClearExpenses handles DELETE /expenses: removes the entire log.
func (s *Server) ClearExpenses(w http.ResponseWriter, r *http.Request) {
	s.expenses.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// extractExpenseRequest is the POST /expenses/extract body.
type extractExpenseRequest struct {
	Text   string `json:"text"`
	TripID string `json:"tripId,omitempty"`
}

// ExtractExpense handles POST /expenses/extract: free-text expense entry via
// the AI extractor. On extraction failure nothing is persisted and the
// failure surfaces as 502; the client may retry with the same text.
func (s *Server) ExtractExpense(w http.ResponseWriter, r *http.Request) {
	var req extractExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.expenses.AddFromText(r.Context(), req.Text, req.TripID)
	if err != nil {
		if errorIsValidation(err) {
			respondError(w, err)
			return
		}
		writeError(w, http.StatusBadGateway, "extraction_failed", unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GroupedExpenses handles GET /expenses/grouped: one bucket per known trip
// plus the general bucket.
func (s *Server) GroupedExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.expenses.Grouped(r.Context()))
}

// ExpenseTotals handles GET /expenses/totals: per-currency sums.
func (s *Server) ExpenseTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.expenses.TotalsByCurrency(r.Context()))
}
