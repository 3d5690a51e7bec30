package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/session"
)

// ErrorResponse is the JSON body returned for every non-2xx outcome.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are not
// recoverable at this point (the status line is already written) and ignored.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps a service-layer error onto the HTTP surface.
// Unrecognized errors become an opaque 500; the detailed text stays in the
// server log, not the response.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotEnoughData):
		writeError(w, http.StatusUnprocessableEntity, "not_enough_data", unwrapMessage(err))
	case errors.Is(err, session.ErrSessionActive):
		writeError(w, http.StatusConflict, "session_active", session.ErrSessionActive.Error())
	case errors.Is(err, session.ErrNoSession):
		writeError(w, http.StatusConflict, "no_session", session.ErrNoSession.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// badRequest writes a 422 for a request rejected before reaching the service
// layer (missing or malformed body).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// decodeBody parses the request body into v. A nil or malformed body is
// reported to the client and false returned.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "request body must be valid JSON")
		return false
	}
	return true
}

// errorIsValidation reports whether err wraps domain.ErrValidation.
func errorIsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: origin address is
// required" becomes "origin address is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrNotFound.Error() + ": ",
	} {
		if idx := strings.LastIndex(msg, marker); idx >= 0 && idx+len(marker) < len(msg) {
			return msg[idx+len(marker):]
		}
	}
	// Sentinel with no trailing detail: drop the call-site prefixes.
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
