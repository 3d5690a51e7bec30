package handler

import "net/http"

// DashboardSummary handles GET /dashboard/summary: the derived metrics over
// the stored trip collection.
func (s *Server) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Summary(r.Context()))
}

// DashboardInsights handles GET /dashboard/insights: AI commentary on travel
// patterns. Failures surface as 502; the data is untouched and the request
// can simply be retried.
func (s *Server) DashboardInsights(w http.ResponseWriter, r *http.Request) {
	text, err := s.dashboard.Insights(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "insights_failed", unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}

// Suggestions handles GET /suggestions: personalized future-trip ideas.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.dashboard.Suggest(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "suggestions_failed", unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
