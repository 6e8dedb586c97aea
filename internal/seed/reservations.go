package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// Reservations places 15 reservations today in mixed states, 10 confirmed
// tomorrow and 8 completed yesterday.
func Reservations(users []domain.User, vehicles []domain.Vehicle, bays []domain.Bay, now time.Time) []domain.Reservation {
	day := func(offset, hour, min int) time.Time {
		y, m, d := now.Date()
		return time.Date(y, m, d+offset, hour, min, 0, 0, now.Location())
	}
	vehicleOf := func(i int, userID string) string {
		for _, v := range vehicles {
			if v.OwnerUserID == userID {
				return v.ID
			}
		}
		return vehicles[i%len(vehicles)].ID
	}
	mk := func(n int, userID, vehicleID string, bay domain.Bay, start time.Time, minutes int, status domain.ReservationStatus) domain.Reservation {
		priority := domain.PriorityGuest
		switch {
		case n%4 == 0:
			priority = domain.PriorityFleet
		case n%3 == 0:
			priority = domain.PriorityEmployee
		}
		return domain.Reservation{
			ID:            fmt.Sprintf("r-%d", n),
			UserID:        userID,
			VehicleID:     vehicleID,
			SiteID:        bay.SiteID,
			ZoneID:        bay.ZoneID,
			BayID:         bay.ID,
			ConnectorType: connectorCycle[n%len(connectorCycle)],
			Status:        status,
			StartAt:       start.UTC(),
			EndAt:         start.Add(time.Duration(minutes) * time.Minute).UTC(),
			TargetSoc:     []int{70, 80, 85, 90, 95}[n%5],
			Priority:      priority,
			Urgent:        n%8 == 0,
			Code:          fmt.Sprintf("MABE-%d", 1000+n),
			Version:       1,
			CreatedAt:     now.UTC(),
			UpdatedAt:     now.UTC(),
		}
	}

	var out []domain.Reservation
	for i := 0; i < 15; i++ {
		u := users[i%len(users)]
		status := domain.ReservationStatusCanceled
		switch {
		case i < 3:
			status = domain.ReservationStatusActive
		case i < 8:
			status = domain.ReservationStatusConfirmed
		case i < 12:
			status = domain.ReservationStatusRequested
		case i < 14:
			status = domain.ReservationStatusCompleted
		}
		start := day(0, 8+(i*2)%10, (i*15)%60)
		out = append(out, mk(i+1, u.ID, vehicleOf(i, u.ID), bays[i%len(bays)], start, 45+i*15, status))
	}
	for i := 0; i < 10; i++ {
		u := users[i%len(users)]
		start := day(1, 9+i%8, (i*20)%60)
		out = append(out, mk(i+20, u.ID, vehicleOf(i, u.ID), bays[i%len(bays)], start, 60, domain.ReservationStatusConfirmed))
	}
	for i := 0; i < 8; i++ {
		u := users[i%len(users)]
		start := day(-1, 10+i%6, (i*25)%60)
		out = append(out, mk(i+30, u.ID, vehicleOf(i, u.ID), bays[i%len(bays)], start, 75, domain.ReservationStatusCompleted))
	}
	return out
}

// Sessions opens a session for every active reservation and closes one for
// every completed reservation.
func Sessions(reservations []domain.Reservation, bays []domain.Bay, rng *rand.Rand) []domain.Session {
	chargerOf := make(map[string]string, len(bays))
	for _, b := range bays {
		chargerOf[b.ID] = b.ChargerID
	}

	var active, done []domain.Session
	for _, r := range reservations {
		s := domain.Session{
			ReservationID: r.ID,
			ChargerID:     chargerOf[r.BayID],
			BayID:         r.BayID,
			UserID:        r.UserID,
			VehicleID:     r.VehicleID,
			SiteID:        r.SiteID,
			StartAt:       r.StartAt,
			Version:       1,
		}
		switch r.Status {
		case domain.ReservationStatusActive:
			s.ID = fmt.Sprintf("s-a-%d", len(active))
			s.Status = domain.SessionStatusActive
			s.KWh = round1(2 + rng.Float64()*8)
			s.IdleMinutes = rng.IntN(5)
			active = append(active, s)
		case domain.ReservationStatusCompleted:
			end := r.EndAt
			s.ID = fmt.Sprintf("s-c-%d", len(done))
			s.Status = domain.SessionStatusCompleted
			s.EndAt = &end
			s.KWh = round1(15 + rng.Float64()*25)
			s.IdleMinutes = rng.IntN(15)
			done = append(done, s)
		}
	}
	return append(active, done...)
}

func round1(v float64) float64 {
	return float64(int(v*10)) / 10
}

// Tickets opens three maintenance tickets relative to now.
func Tickets(bays []domain.Bay, now time.Time) []domain.Ticket {
	mk := func(id string, bay domain.Bay, issue string, sev domain.TicketSeverity, status domain.TicketStatus, due time.Duration) domain.Ticket {
		return domain.Ticket{
			ID: id, SiteID: bay.SiteID, ChargerID: bay.ChargerID, BayID: bay.ID,
			IssueType: issue, Severity: sev, Status: status,
			OpenedAt: now.UTC(), SLADue: now.Add(due).UTC(),
		}
	}
	return []domain.Ticket{
		mk("t-1", bays[2], "Conector bloqueado", domain.SeverityMedium, domain.TicketStatusOpen, 3*time.Hour),
		mk("t-2", bays[5], "Fallo de comunicación OCPP", domain.SeverityHigh, domain.TicketStatusInProgress, time.Hour),
		mk("t-3", bays[15], "Pantalla táctil no responde", domain.SeverityLow, domain.TicketStatusOpen, 8*time.Hour),
	}
}
