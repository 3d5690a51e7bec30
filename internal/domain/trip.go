// Package domain contains the core data types for the GeoJourney backend.
// This package has zero external dependencies and is imported by every other
// internal package (store, repo, session, service, handler).
package domain

// Coordinates is a single location fix: latitude, longitude, and the Unix
// millisecond timestamp at which it was reported. Immutable once recorded.
type Coordinates struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp int64   `json:"timestamp"`
}

// Trip represents one completed journey, either live-tracked or manually
// entered. A trip is created exactly once, at session stop or manual submit,
// and never mutated afterwards; the only delete is a bulk clear.
//
// Path is empty for manual trips and holds at least two fixes for live-tracked
// trips. Origin and Destination are the first and last recorded fix for live
// trips, or zero-coordinate placeholders for manual ones.
type Trip struct {
	ID                 string        `json:"id"`
	StartTime          int64         `json:"startTime"` // Unix milliseconds
	EndTime            int64         `json:"endTime"`   // Unix milliseconds
	Origin             Coordinates   `json:"origin"`
	Destination        Coordinates   `json:"destination"`
	OriginAddress      string        `json:"originAddress,omitempty"`
	DestinationAddress string        `json:"destinationAddress,omitempty"`
	Mode               TransportMode `json:"mode"`
	Path               []Coordinates `json:"path"`
	Companions         int           `json:"companions,omitempty"`
	Notes              string        `json:"notes,omitempty"`
}

// Live reports whether the trip was recorded from a live tracking session.
func (t Trip) Live() bool {
	return len(t.Path) > 0
}

// DurationMillis returns the trip duration in milliseconds.
func (t Trip) DurationMillis() int64 {
	return t.EndTime - t.StartTime
}
