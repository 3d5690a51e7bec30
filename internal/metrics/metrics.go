// Package metrics computes derived aggregations over a trip collection for
// the dashboard. Every function is pure and total: any input, including the
// empty collection, yields zero-filled buckets or empty slices, never an
// error. Nothing is cached; callers recompute on every request.
package metrics

import (
	"math"
	"time"

	"github.com/nkarstens/geojourney/internal/domain"
)

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371

// heatmapIntensity is the fixed weight emitted for every path point.
// Overlapping points are emitted separately; the rendering layer accumulates.
const heatmapIntensity = 0.5

// ModeDistribution counts trips per transport mode. Trips with an empty mode
// are counted under ModeUnknown, so the counts always sum to len(trips).
func ModeDistribution(trips []domain.Trip) map[domain.TransportMode]int {
	dist := make(map[domain.TransportMode]int)
	for _, t := range trips {
		mode := t.Mode
		if mode == "" {
			mode = domain.ModeUnknown
		}
		dist[mode]++
	}
	return dist
}

// PeakHours builds a 24-bucket histogram keyed by the local hour of day
// (0–23) of each trip's start time.
func PeakHours(trips []domain.Trip) [24]int {
	var hours [24]int
	for _, t := range trips {
		hours[time.UnixMilli(t.StartTime).Hour()]++
	}
	return hours
}

// TripsByDay builds a 7-bucket histogram keyed by the local day of week of
// each trip's start time. Index 0 is Sunday, matching time.Weekday.
func TripsByDay(trips []domain.Trip) [7]int {
	var days [7]int
	for _, t := range trips {
		days[time.UnixMilli(t.StartTime).Weekday()]++
	}
	return days
}

// HeatmapPoint is one (lat, lng, intensity) triple for the heatmap renderer.
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// HeatmapPoints flattens every trip's path into heatmap triples with a fixed
// intensity. No deduplication or density weighting is applied.
func HeatmapPoints(trips []domain.Trip) []HeatmapPoint {
	points := make([]HeatmapPoint, 0)
	for _, t := range trips {
		for _, c := range t.Path {
			points = append(points, HeatmapPoint{Lat: c.Lat, Lng: c.Lng, Intensity: heatmapIntensity})
		}
	}
	return points
}

// TotalDistanceKm sums the great-circle distance between consecutive path
// points across all trips. Trips with one or zero path points contribute 0.
func TotalDistanceKm(trips []domain.Trip) float64 {
	var total float64
	for _, t := range trips {
		for i := 0; i+1 < len(t.Path); i++ {
			total += haversineKm(t.Path[i], t.Path[i+1])
		}
	}
	return total
}

// TotalCompanions sums the companions field across all trips.
func TotalCompanions(trips []domain.Trip) int {
	var total int
	for _, t := range trips {
		total += t.Companions
	}
	return total
}

// haversineKm returns the great-circle distance between two fixes in km.
func haversineKm(p1, p2 domain.Coordinates) float64 {
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p1.Lat*math.Pi/180)*math.Cos(p2.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
