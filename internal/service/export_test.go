package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/service"
)

func exportedRecords(t *testing.T, svc *service.ExportService) [][]string {
	t.Helper()
	out, err := svc.CSV(context.Background())
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportService_CSV_HeaderOnlyWhenEmpty(t *testing.T) {
	svc := service.NewExportService(newTripRepo())

	records := exportedRecords(t, svc)

	require.Len(t, records, 1)
	assert.Equal(t, []string{
		"id", "startTime", "endTime", "durationMinutes", "mode",
		"originLat", "originLng", "destinationLat", "destinationLng",
		"originAddress", "destinationAddress", "companions", "notes",
	}, records[0])
}

func TestExportService_CSV_Row(t *testing.T) {
	trips := newTripRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	trips.Add(context.Background(), domain.Trip{
		ID:                 "trip-1",
		StartTime:          start.UnixMilli(),
		EndTime:            start.Add(45 * time.Minute).UnixMilli(),
		Mode:               domain.ModeDriving,
		Origin:             domain.Coordinates{Lat: 52.52, Lng: 13.405},
		Destination:        domain.Coordinates{Lat: 52.4667, Lng: 13.4},
		OriginAddress:      "Alexanderplatz",
		DestinationAddress: "Tempelhofer Feld",
		Companions:         2,
		Notes:              "sunny day",
	})
	svc := service.NewExportService(trips)

	records := exportedRecords(t, svc)

	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "trip-1", row[0])
	assert.Equal(t, "2025-06-01T09:00:00Z", row[1])
	assert.Equal(t, "2025-06-01T09:45:00Z", row[2])
	assert.Equal(t, "45", row[3])
	assert.Equal(t, "DRIVING", row[4])
	assert.Equal(t, "52.52", row[5])
	assert.Equal(t, "13.405", row[6])
	assert.Equal(t, "2", row[11])
	assert.Equal(t, "sunny day", row[12])
}

// Fields holding commas, quotes, and newlines must survive a write/parse
// round trip unchanged.
func TestExportService_CSV_EscapingRoundTrip(t *testing.T) {
	notes := "left at \"noon\", then\nwalked home"
	address := "Unter den Linden, Berlin"

	trips := newTripRepo()
	trip := validManualTrip()
	trip.ID = "trip-esc"
	trip.OriginAddress = address
	trip.Notes = notes
	trips.Add(context.Background(), trip)
	svc := service.NewExportService(trips)

	records := exportedRecords(t, svc)

	require.Len(t, records, 2)
	assert.Equal(t, address, records[1][9])
	assert.Equal(t, notes, records[1][12])
}

func TestExportService_CSV_DurationRoundsToMinutes(t *testing.T) {
	trips := newTripRepo()
	trip := validManualTrip()
	trip.ID = "trip-90s"
	trip.EndTime = trip.StartTime + 90*1000 // 1.5 minutes
	trips.Add(context.Background(), trip)
	svc := service.NewExportService(trips)

	records := exportedRecords(t, svc)

	require.Len(t, records, 2)
	assert.Equal(t, "2", records[1][3])
}
