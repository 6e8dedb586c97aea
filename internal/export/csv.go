package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

var (
	reservationHeaders = []string{"id", "usuario", "vehiculo", "sitio", "estado", "inicio", "fin", "conector", "targetSoc", "prioridad"}
	sessionHeaders     = []string{"id", "usuario", "vehiculo", "sitio", "estado", "inicio", "fin", "kwh", "idleMin"}
)

// names resolves display names for ids; unknown ids render as empty cells.
type names struct {
	users    map[string]string
	vehicles map[string]string
	sites    map[string]string
}

func namesOf(snap *domain.Snapshot) names {
	n := names{
		users:    make(map[string]string, len(snap.Users)),
		vehicles: make(map[string]string, len(snap.Vehicles)),
		sites:    make(map[string]string, len(snap.Sites)),
	}
	for _, u := range snap.Users {
		n.users[u.ID] = u.Name
	}
	for i := range snap.Vehicles {
		n.vehicles[snap.Vehicles[i].ID] = snap.Vehicles[i].Label()
	}
	for _, s := range snap.Sites {
		n.sites[s.ID] = s.Name
	}
	return n
}

// WriteReservationsCSV writes every reservation in snap to w.
func WriteReservationsCSV(w io.Writer, snap *domain.Snapshot) error {
	n := namesOf(snap)
	cw := csv.NewWriter(w)
	if err := cw.Write(reservationHeaders); err != nil {
		return err
	}
	for _, r := range snap.Reservations {
		rec := []string{
			r.ID,
			n.users[r.UserID],
			n.vehicles[r.VehicleID],
			n.sites[r.SiteID],
			string(r.Status),
			r.StartAt.UTC().Format(time.RFC3339),
			r.EndAt.UTC().Format(time.RFC3339),
			string(r.ConnectorType),
			strconv.Itoa(r.TargetSoc),
			string(r.Priority),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSessionsCSV writes every session in snap to w. Open sessions have an empty end.
func WriteSessionsCSV(w io.Writer, snap *domain.Snapshot) error {
	n := namesOf(snap)
	cw := csv.NewWriter(w)
	if err := cw.Write(sessionHeaders); err != nil {
		return err
	}
	for _, s := range snap.Sessions {
		end := ""
		if s.EndAt != nil {
			end = s.EndAt.UTC().Format(time.RFC3339)
		}
		rec := []string{
			s.ID,
			n.users[s.UserID],
			n.vehicles[s.VehicleID],
			n.sites[s.SiteID],
			string(s.Status),
			s.StartAt.UTC().Format(time.RFC3339),
			end,
			strconv.FormatFloat(s.KWh, 'f', -1, 64),
			strconv.Itoa(s.IdleMinutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
