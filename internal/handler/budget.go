package handler

import (
	"net/http"

	"github.com/nkarstens/geojourney/internal/domain"
)

// GetBudget handles GET /budget. Returns 404 when no budget is set; unset and
// missing are the same condition here.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	b := s.budget.Get(r.Context())
	if b == nil {
		writeError(w, http.StatusNotFound, "not_found", "no budget set")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// SaveBudget handles PUT /budget: sets or replaces the single budget.
func (s *Server) SaveBudget(w http.ResponseWriter, r *http.Request) {
	var b domain.Budget
	if !decodeBody(w, r, &b) {
		return
	}

	saved, err := s.budget.Save(r.Context(), b)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// ClearBudget handles DELETE /budget.
func (s *Server) ClearBudget(w http.ResponseWriter, r *http.Request) {
	s.budget.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// BudgetProgress handles GET /budget/progress.
func (s *Server) BudgetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.budget.Progress(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
