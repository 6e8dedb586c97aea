package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/policy"
	"github.com/seu-repo/sigec-site/internal/service/reservation"
)

// BookReservation gates on CanUserReserve and then books.
func (s *Store) BookReservation(ctx context.Context, req *reservation.BookRequest) (r *domain.Reservation, err error) {
	ctx, span := start(ctx, "BookReservation",
		attribute.String("user_id", req.UserID), attribute.String("site_id", req.SiteID))
	defer func() { end(span, err) }()

	elig, err := s.suspensions.CanUserReserve(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !elig.Allowed {
		return nil, fmt.Errorf("%s: %w", elig.Reason, domain.ErrPolicyViolation)
	}
	return s.reservations.BookReservation(ctx, req)
}

func (s *Store) ConfirmReservation(ctx context.Context, id string) (r *domain.Reservation, err error) {
	ctx, span := start(ctx, "ConfirmReservation", attribute.String("reservation_id", id))
	defer func() { end(span, err) }()
	return s.reservations.ConfirmReservation(ctx, id)
}

func (s *Store) UpdateReservationWindow(ctx context.Context, id string, startAt, endAt time.Time) (r *domain.Reservation, err error) {
	ctx, span := start(ctx, "UpdateReservationWindow", attribute.String("reservation_id", id))
	defer func() { end(span, err) }()
	return s.reservations.UpdateReservationWindow(ctx, id, startAt, endAt)
}

func (s *Store) CancelReservation(ctx context.Context, id, reason string) (r *domain.Reservation, err error) {
	ctx, span := start(ctx, "CancelReservation", attribute.String("reservation_id", id))
	defer func() { end(span, err) }()
	return s.reservations.CancelReservation(ctx, id, reason)
}

func (s *Store) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *Store) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	return s.reservations.ListReservations(ctx, filter)
}

func (s *Store) FindReservationByCode(ctx context.Context, code string) (r *domain.Reservation, err error) {
	ctx, span := start(ctx, "FindReservationByCode")
	defer func() { end(span, err) }()
	return s.reservations.FindReservationByCode(ctx, code)
}

func (s *Store) ArrivalsBoard(ctx context.Context, siteID string) (rs []domain.Reservation, err error) {
	ctx, span := start(ctx, "ArrivalsBoard", attribute.String("site_id", siteID))
	defer func() { end(span, err) }()
	return s.reservations.ArrivalsBoard(ctx, siteID)
}

func (s *Store) SweepExpired(ctx context.Context) (res *reservation.SweepResult, err error) {
	ctx, span := start(ctx, "SweepExpired")
	defer func() { end(span, err) }()
	return s.reservations.SweepExpired(ctx)
}

func (s *Store) RecordInfraction(ctx context.Context, userID string, typ domain.InfractionType, reason, reservationID string) (us *domain.UserSuspension, err error) {
	ctx, span := start(ctx, "RecordInfraction",
		attribute.String("user_id", userID), attribute.String("type", string(typ)))
	defer func() { end(span, err) }()
	return s.suspensions.RecordInfraction(ctx, userID, typ, reason, reservationID)
}

func (s *Store) ClearSuspension(ctx context.Context, userID string) (err error) {
	ctx, span := start(ctx, "ClearSuspension", attribute.String("user_id", userID))
	defer func() { end(span, err) }()
	return s.suspensions.ClearSuspension(ctx, userID)
}

func (s *Store) GetSuspension(ctx context.Context, userID string) (*domain.UserSuspension, error) {
	return s.suspensions.GetSuspension(ctx, userID)
}

func (s *Store) IsSuspended(ctx context.Context, userID string) (bool, error) {
	return s.suspensions.IsSuspended(ctx, userID)
}

func (s *Store) CanUserReserve(ctx context.Context, userID string) (e policy.Eligibility, err error) {
	ctx, span := start(ctx, "CanUserReserve", attribute.String("user_id", userID))
	defer func() { end(span, err) }()
	return s.suspensions.CanUserReserve(ctx, userID)
}

func (s *Store) WeeklyReservations(ctx context.Context, userID string) (int, error) {
	return s.suspensions.WeeklyReservations(ctx, userID)
}
