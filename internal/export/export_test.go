package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return &domain.Snapshot{
		Sites:    []domain.Site{{ID: "s-1", Name: "Planta, Norte"}},
		Users:    []domain.User{{ID: "u-1", Name: `Ana "La Jefa"`}},
		Vehicles: []domain.Vehicle{{ID: "v-1", Make: "Nissan", Model: "Leaf"}},
		Reservations: []domain.Reservation{{
			ID: "r-1", UserID: "u-1", VehicleID: "v-1", SiteID: "s-1",
			Status: domain.ReservationStatusConfirmed, StartAt: start, EndAt: end,
			ConnectorType: domain.ConnectorCCS1, TargetSoc: 80, Priority: domain.PriorityFleet,
		}},
		Sessions: []domain.Session{
			{ID: "cs-1", UserID: "u-1", VehicleID: "v-1", SiteID: "s-1", Status: domain.SessionStatusCompleted,
				StartAt: start, EndAt: &end, KWh: 16.5, IdleMinutes: 3},
			{ID: "cs-2", UserID: "u-9", SiteID: "s-1", Status: domain.SessionStatusActive, StartAt: start, KWh: 0.5},
		},
	}
}

func TestWriteReservationsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReservationsCSV(&buf, sampleSnapshot()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, reservationHeaders, records[0])
	assert.Equal(t, []string{
		"r-1", `Ana "La Jefa"`, "Nissan Leaf", "Planta, Norte", "confirmed",
		"2024-01-15T09:00:00Z", "2024-01-15T10:00:00Z", "CCS1", "80", "Fleet",
	}, records[1])
}

func TestWriteSessionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSessionsCSV(&buf, sampleSnapshot()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, sessionHeaders, records[0])
	assert.Equal(t, "16.5", records[1][7])
	assert.Equal(t, "3", records[1][8])
	// unknown user and open session
	assert.Equal(t, "", records[2][1])
	assert.Equal(t, "", records[2][6])
}

func TestWriteICS(t *testing.T) {
	r := &sampleSnapshot().Reservations[0]
	r.Code = "MABE-1234"
	now := time.Date(2024, 1, 14, 8, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, r, now))

	out := buf.String()
	lines := strings.Split(out, "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])
	assert.Contains(t, out, "UID:r-1@mabe-demo")
	assert.Contains(t, out, "DTSTAMP:20240114T083000Z")
	assert.Contains(t, out, "DTSTART:20240115T090000Z")
	assert.Contains(t, out, "DTEND:20240115T100000Z")
	assert.Contains(t, out, "Código: MABE-1234 Objetivo SOC: 80%")
	assert.Equal(t, "reserva-r-1.ics", ICSFilename(r))
}
