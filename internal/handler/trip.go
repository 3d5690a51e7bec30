package handler

import (
	"net/http"

	"github.com/nkarstens/geojourney/internal/domain"
)

// ListTrips handles GET /trips. Returns the full collection, newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.List(r.Context()))
}

// CreateTrip handles POST /trips: manual trip entry.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if !decodeBody(w, r, &trip) {
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ClearTrips handles DELETE /trips: removes the entire collection.
func (s *Server) ClearTrips(w http.ResponseWriter, r *http.Request) {
	s.trips.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ExportTrips handles GET /trips/export: the collection as a CSV download.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	data, err := s.export.CSV(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="travel_journal.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
