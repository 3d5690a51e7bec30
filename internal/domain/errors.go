package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist
// (e.g. reading budget progress before any budget has been saved).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, non-positive budget amount, end time not
// after start time). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")

// ErrNotEnoughData is returned when a tracking session is stopped with fewer
// than two recorded fixes. The session is discarded and no trip is created.
var ErrNotEnoughData = errors.New("not enough data to save trip")
