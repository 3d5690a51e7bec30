package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/nkarstens/geojourney/internal/domain"
)

// csvHeaders defines the column names written as the first row of the export.
// The order is part of the export contract.
var csvHeaders = []string{
	"id", "startTime", "endTime", "durationMinutes", "mode",
	"originLat", "originLng", "destinationLat", "destinationLng",
	"originAddress", "destinationAddress", "companions", "notes",
}

// ExportService renders the trip collection as CSV.
type ExportService struct {
	trips TripStore
}

// NewExportService constructs an ExportService.
func NewExportService(trips TripStore) *ExportService {
	return &ExportService{trips: trips}
}

// CSV returns the full trip collection as CSV, one row per trip, newest
// first. encoding/csv applies the standard escaping: fields containing the
// separator, a quote, or a newline are wrapped in quotes with inner quotes
// doubled.
func (s *ExportService) CSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("service.ExportService.CSV: %w", err)
	}
	for _, trip := range s.trips.List(ctx) {
		if err := w.Write(csvRecord(trip)); err != nil {
			return nil, fmt.Errorf("service.ExportService.CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("service.ExportService.CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// csvRecord flattens one trip into the documented column order.
func csvRecord(t domain.Trip) []string {
	duration := int64(math.Round(float64(t.EndTime-t.StartTime) / 60000))
	return []string{
		t.ID,
		millisToRFC3339(t.StartTime),
		millisToRFC3339(t.EndTime),
		strconv.FormatInt(duration, 10),
		string(t.Mode),
		formatCoord(t.Origin.Lat),
		formatCoord(t.Origin.Lng),
		formatCoord(t.Destination.Lat),
		formatCoord(t.Destination.Lng),
		t.OriginAddress,
		t.DestinationAddress,
		strconv.Itoa(t.Companions),
		t.Notes,
	}
}

func millisToRFC3339(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
