package handler

import (
	"errors"
	"net/http"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/session"
)

// SessionStatus handles GET /session: the current tracker snapshot.
func (s *Server) SessionStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// StartSession handles POST /session/start. Requires at least one fix pushed
// beforehand; without it the start fails and the tracker stays idle.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Start(r.Context()); err != nil {
		if errors.Is(err, session.ErrSessionActive) {
			respondError(w, err)
			return
		}
		writeError(w, http.StatusConflict, "no_location", unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// PauseSession handles POST /session/pause.
func (s *Server) PauseSession(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.Pause(); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// ResumeSession handles POST /session/resume.
func (s *Server) ResumeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Resume(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// stopSessionResponse is the POST /session/stop success body. Warning is set
// when the trip was saved but mode classification failed.
type stopSessionResponse struct {
	Trip    domain.Trip `json:"trip"`
	Warning string      `json:"warning,omitempty"`
}

// StopSession handles POST /session/stop. A session with fewer than two fixes
// is discarded with 422 and no trip. A classification failure still persists
// the trip (mode UNKNOWN) and reports 201 with a warning.
func (s *Server) StopSession(w http.ResponseWriter, r *http.Request) {
	trip, err := s.session.Stop(r.Context())
	if err != nil && !errors.Is(err, session.ErrAnalyzeFailed) {
		respondError(w, err)
		return
	}

	resp := stopSessionResponse{Trip: trip}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusCreated, resp)
}

// pushFixRequest is the POST /session/fixes body: either a fix or a
// device-side acquisition error.
type pushFixRequest struct {
	Fix   *domain.Coordinates `json:"fix,omitempty"`
	Error string              `json:"error,omitempty"`
}

// PushFix handles POST /session/fixes: the client device streams its
// geolocation readings (or an acquisition failure) to the server.
func (s *Server) PushFix(w http.ResponseWriter, r *http.Request) {
	var req pushFixRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch {
	case req.Fix != nil:
		s.fixes.Push(*req.Fix)
	case req.Error != "":
		s.fixes.PushError(errors.New(req.Error))
	default:
		badRequest(w, "either fix or error is required")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// sessionNotesRequest is the PUT /session/notes body.
type sessionNotesRequest struct {
	Notes string `json:"notes"`
}

// SessionNotes handles PUT /session/notes: attaches notes to the in-progress
// session. They are carried onto the finalized trip.
func (s *Server) SessionNotes(w http.ResponseWriter, r *http.Request) {
	var req sessionNotesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.session.SetNotes(req.Notes)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}
