package domain

// TransportMode classifies how a trip was travelled.
// The value set is fixed; anything the classifier cannot place lands on
// ModeUnknown rather than failing.
type TransportMode string

const (
	ModeWalking TransportMode = "WALKING"
	ModeBiking  TransportMode = "BIKING"
	ModeDriving TransportMode = "DRIVING"
	ModeTransit TransportMode = "TRANSIT"
	ModeUnknown TransportMode = "UNKNOWN"
)

// AllModes lists every valid transport mode in declaration order.
var AllModes = []TransportMode{ModeWalking, ModeBiking, ModeDriving, ModeTransit, ModeUnknown}

// ParseTransportMode maps a string to a TransportMode.
// Unrecognised values degrade to ModeUnknown; a bad mode string is never
// worth losing a trip over.
func ParseTransportMode(s string) TransportMode {
	switch TransportMode(s) {
	case ModeWalking, ModeBiking, ModeDriving, ModeTransit:
		return TransportMode(s)
	default:
		return ModeUnknown
	}
}

// Valid reports whether m is one of the declared transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeWalking, ModeBiking, ModeDriving, ModeTransit, ModeUnknown:
		return true
	}
	return false
}
