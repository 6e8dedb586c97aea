package app

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/export"
	"github.com/seu-repo/sigec-site/internal/service/fleet"
)

func (s *Store) AddVehicle(ctx context.Context, ownerID string, v domain.Vehicle) (out *domain.Vehicle, err error) {
	ctx, span := start(ctx, "AddVehicle", attribute.String("user_id", ownerID))
	defer func() { end(span, err) }()
	return s.fleet.AddVehicle(ctx, ownerID, v)
}

func (s *Store) UpdateVehicle(ctx context.Context, actorID, id string, patch fleet.VehiclePatch) (out *domain.Vehicle, err error) {
	ctx, span := start(ctx, "UpdateVehicle", attribute.String("vehicle_id", id))
	defer func() { end(span, err) }()
	return s.fleet.UpdateVehicle(ctx, actorID, id, patch)
}

func (s *Store) RemoveVehicle(ctx context.Context, actorID, id string) (err error) {
	ctx, span := start(ctx, "RemoveVehicle", attribute.String("vehicle_id", id))
	defer func() { end(span, err) }()
	return s.fleet.RemoveVehicle(ctx, actorID, id)
}

func (s *Store) ListVehicles(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	return s.fleet.ListVehicles(ctx, ownerID)
}

func (s *Store) AddGuest(ctx context.Context, g domain.Guest) (out *domain.Guest, err error) {
	ctx, span := start(ctx, "AddGuest", attribute.String("host_id", g.HostUserID))
	defer func() { end(span, err) }()
	return s.fleet.AddGuest(ctx, g)
}

func (s *Store) ListGuests(ctx context.Context, hostUserID string) ([]domain.Guest, error) {
	return s.fleet.ListGuests(ctx, hostUserID)
}

func (s *Store) CanUserHostGuests(ctx context.Context, userID string) (bool, error) {
	return s.fleet.CanUserHostGuests(ctx, userID)
}

func (s *Store) BookGuestReservation(ctx context.Context, req fleet.GuestBooking) (gr *domain.GuestReservation, err error) {
	ctx, span := start(ctx, "BookGuestReservation", attribute.String("guest_id", req.GuestID))
	defer func() { end(span, err) }()
	return s.fleet.BookGuestReservation(ctx, req)
}

func (s *Store) SubmitUserReport(ctx context.Context, rep domain.UserReport) (out *domain.UserReport, err error) {
	ctx, span := start(ctx, "SubmitUserReport", attribute.String("type", string(rep.Type)))
	defer func() { end(span, err) }()
	return s.fleet.SubmitUserReport(ctx, rep)
}

func (s *Store) ListReports(ctx context.Context) ([]domain.UserReport, error) {
	return s.fleet.ListReports(ctx)
}

func (s *Store) OpenTicket(ctx context.Context, t domain.Ticket) (out *domain.Ticket, err error) {
	ctx, span := start(ctx, "OpenTicket", attribute.String("charger_id", t.ChargerID))
	defer func() { end(span, err) }()
	return s.fleet.OpenTicket(ctx, t)
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus, assigneeID string) (out *domain.Ticket, err error) {
	ctx, span := start(ctx, "UpdateTicketStatus", attribute.String("ticket_id", id))
	defer func() { end(span, err) }()
	return s.fleet.UpdateTicketStatus(ctx, id, status, assigneeID)
}

func (s *Store) ListTickets(ctx context.Context, siteID string) ([]domain.Ticket, error) {
	return s.fleet.ListTickets(ctx, siteID)
}

func (s *Store) ExportReservationsCSV(ctx context.Context, w io.Writer) (err error) {
	_, span := start(ctx, "ExportReservationsCSV")
	defer func() { end(span, err) }()
	return export.WriteReservationsCSV(w, s.db.Snapshot())
}

func (s *Store) ExportSessionsCSV(ctx context.Context, w io.Writer) (err error) {
	_, span := start(ctx, "ExportSessionsCSV")
	defer func() { end(span, err) }()
	return export.WriteSessionsCSV(w, s.db.Snapshot())
}

// ReservationCalendar writes the reservation as an iCalendar event and
// returns the suggested file name.
func (s *Store) ReservationCalendar(ctx context.Context, id string, w io.Writer) (name string, err error) {
	ctx, span := start(ctx, "ReservationCalendar", attribute.String("reservation_id", id))
	defer func() { end(span, err) }()

	r, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return "", err
	}
	if err := export.WriteICS(w, r, s.clock.Now()); err != nil {
		return "", fmt.Errorf("failed to write calendar: %w", err)
	}
	return export.ICSFilename(r), nil
}
