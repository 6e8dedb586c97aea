package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/mocks"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/testutil"
)

type recordedInfraction struct {
	userID        string
	typ           domain.InfractionType
	reservationID string
}

// fakeRecorder collects infractions instead of accruing points
type fakeRecorder struct {
	calls []recordedInfraction
	err   error
}

func (f *fakeRecorder) RecordInfraction(ctx context.Context, userID string, typ domain.InfractionType, reason, reservationID string) (*domain.UserSuspension, error) {
	f.calls = append(f.calls, recordedInfraction{userID, typ, reservationID})
	if f.err != nil {
		return nil, f.err
	}
	return &domain.UserSuspension{UserID: userID}, nil
}

func newTestService(env *testutil.Env, rec InfractionRecorder, cfg *domain.ReservationConfig) *Service {
	return NewService(env.Repos.Reservations, env.Repos.Sites, env.Repos.Users, env.Repos.Vehicles,
		rec, env.Events, env.Clock, env.IDs, env.Locks, cfg, env.Log)
}

func request(bayID string, start time.Time, minutes int) *BookRequest {
	return &BookRequest{
		UserID: "u-1", VehicleID: "v-1", SiteID: "s-1", ZoneID: "z-1", BayID: bayID,
		StartAt: start, EndAt: start.Add(time.Duration(minutes) * time.Minute), TargetSoc: 80,
	}
}

func TestBookReservation_Defaults(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, &fakeRecorder{}, nil)

	// Act
	r, err := service.BookReservation(context.Background(), request("", testutil.Now.Add(time.Hour), 60))

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.ConnectorType != domain.ConnectorCCS1 {
		t.Errorf("expected connector from vehicle, got %s", r.ConnectorType)
	}
	if r.Priority != domain.PriorityEmployee {
		t.Errorf("expected default priority Employee, got %s", r.Priority)
	}
	if r.Code != "MABE-1001" {
		t.Errorf("expected code MABE-1001, got %s", r.Code)
	}
}

func TestBookReservation_RetriesCodeCollision(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	env.IDs.Codes = []string{"MABE-7777", "MABE-7777"}
	service := newTestService(env, &fakeRecorder{}, nil)
	ctx := context.Background()

	// Act
	first, err1 := service.BookReservation(ctx, request("b-1", testutil.Now.Add(time.Hour), 30))
	second, err2 := service.BookReservation(ctx, request("b-2", testutil.Now.Add(time.Hour), 30))

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("expected no errors, got %v / %v", err1, err2)
	}
	if first.Code != "MABE-7777" {
		t.Errorf("expected forced code, got %s", first.Code)
	}
	if second.Code == first.Code {
		t.Errorf("expected a fresh code after collision, got %s twice", second.Code)
	}
}

func TestBookReservation_Validation(t *testing.T) {
	start := testutil.Now.Add(time.Hour)
	tests := []struct {
		name    string
		mutate  func(r *BookRequest)
		wantErr error
	}{
		{"missing vehicle", func(r *BookRequest) { r.VehicleID = "" }, domain.ErrValidation},
		{"end before start", func(r *BookRequest) { r.EndAt = start.Add(-time.Minute) }, domain.ErrTimeWindowInvalid},
		{"soc over 100", func(r *BookRequest) { r.TargetSoc = 101 }, domain.ErrValidation},
		{"unknown priority", func(r *BookRequest) { r.Priority = "VIP" }, domain.ErrValidation},
		{"unknown connector", func(r *BookRequest) { r.ConnectorType = "CHAdeMO" }, domain.ErrValidation},
		{"too long", func(r *BookRequest) { r.EndAt = start.Add(5 * time.Hour) }, domain.ErrTimeWindowInvalid},
		{"unknown user", func(r *BookRequest) { r.UserID = "u-404" }, domain.ErrNotFound},
		{"zone of other site", func(r *BookRequest) { r.ZoneID = "z-2" }, domain.ErrNotFound},
		{"bay of other zone", func(r *BookRequest) { r.BayID = "b-9" }, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnv(t)
			cfg := domain.DefaultReservationConfig()
			cfg.MaxDurationMinutes = 240
			service := newTestService(env, &fakeRecorder{}, cfg)
			req := request("", start, 60)
			tt.mutate(req)

			_, err := service.BookReservation(context.Background(), req)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateReservationWindow(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, &fakeRecorder{}, nil)
	ctx := context.Background()
	start := testutil.Now.Add(time.Hour)
	a, _ := service.BookReservation(ctx, request("b-1", start, 60))
	b, _ := service.BookReservation(ctx, request("b-1", start.Add(2*time.Hour), 60))

	// Act
	_, conflict := service.UpdateReservationWindow(ctx, b.ID, start.Add(30*time.Minute), start.Add(90*time.Minute))
	moved, err := service.UpdateReservationWindow(ctx, a.ID, start.Add(-30*time.Minute), start.Add(30*time.Minute))

	// Assert
	if !errors.Is(conflict, domain.ErrBayConflict) {
		t.Errorf("expected ErrBayConflict, got %v", conflict)
	}
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !moved.StartAt.Equal(start.Add(-30 * time.Minute)) {
		t.Errorf("unexpected start %v", moved.StartAt)
	}
	if len(env.Queue.GetPublishedMessages(ports.TopicReservationRescheduled)) != 1 {
		t.Error("expected a rescheduled event")
	}

	// a reservation may be moved over its own window
	if _, err := service.UpdateReservationWindow(ctx, a.ID, start, start.Add(45*time.Minute)); err != nil {
		t.Errorf("expected self-overlap to be allowed, got %v", err)
	}
}

func TestCancelReservation_RecordsCancellation(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	rec := &fakeRecorder{}
	service := newTestService(env, rec, nil)
	ctx := context.Background()
	r, _ := service.BookReservation(ctx, request("b-1", testutil.Now.Add(time.Hour), 60))

	// Act
	canceled, err := service.CancelReservation(ctx, r.ID, "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if canceled.Status != domain.ReservationStatusCanceled {
		t.Errorf("expected 'canceled', got '%s'", canceled.Status)
	}
	if len(rec.calls) != 1 || rec.calls[0].typ != domain.InfractionCancellation || rec.calls[0].reservationID != r.ID {
		t.Errorf("expected one cancellation infraction, got %+v", rec.calls)
	}

	// the bay is free again
	if _, err := service.BookReservation(ctx, request("b-1", testutil.Now.Add(time.Hour), 60)); err != nil {
		t.Errorf("expected canceled window to be bookable, got %v", err)
	}
}

func TestCancelReservation_RecorderFailure(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	boom := errors.New("suspension store down")
	service := newTestService(env, &fakeRecorder{err: boom}, nil)
	ctx := context.Background()
	r, _ := service.BookReservation(ctx, request("b-1", testutil.Now.Add(time.Hour), 60))

	// Act
	canceled, err := service.CancelReservation(ctx, r.ID, "")

	// Assert
	if !errors.Is(err, boom) {
		t.Errorf("expected recorder error, got %v", err)
	}
	if canceled == nil || canceled.Status != domain.ReservationStatusCanceled {
		t.Error("expected the cancellation itself to stand")
	}
}

func TestFindReservationByCode(t *testing.T) {
	env := testutil.NewEnv(t)
	service := newTestService(env, &fakeRecorder{}, nil)
	ctx := context.Background()
	r, _ := service.BookReservation(ctx, request("b-1", testutil.Now.Add(time.Hour), 60))

	found, err := service.FindReservationByCode(ctx, "  mabe-1001\t")
	if err != nil || found.ID != r.ID {
		t.Errorf("expected %s, got %v / %v", r.ID, found, err)
	}
	if _, err := service.FindReservationByCode(ctx, "MABE-9999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestArrivalsBoard_Ordering(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, &fakeRecorder{}, nil)
	ctx := context.Background()
	base := testutil.Now.Add(time.Hour)

	guest := request("b-1", base, 30)
	guest.Priority = domain.PriorityGuest
	fleetLate := request("b-2", base.Add(time.Hour), 30)
	fleetLate.Priority = domain.PriorityFleet
	fleetEarly := request("b-3", base, 30)
	fleetEarly.Priority = domain.PriorityFleet
	canceled := request("b-1", base.Add(2*time.Hour), 30)

	g, _ := service.BookReservation(ctx, guest)
	fl, _ := service.BookReservation(ctx, fleetLate)
	fe, _ := service.BookReservation(ctx, fleetEarly)
	c, _ := service.BookReservation(ctx, canceled)
	service.CancelReservation(ctx, c.ID, "")

	// Act
	board, err := service.ArrivalsBoard(ctx, "s-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{fe.ID, fl.ID, g.ID}
	if len(board) != len(want) {
		t.Fatalf("expected %d arrivals, got %d", len(want), len(board))
	}
	for i, id := range want {
		if board[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, board[i].ID)
		}
	}
}

func TestSweepExpired_GraceBoundary(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	rec := &fakeRecorder{}
	service := newTestService(env, rec, nil)
	ctx := context.Background()
	start := testutil.Now.Add(time.Hour)
	r, _ := service.BookReservation(ctx, request("b-1", start, 60))
	service.ConfirmReservation(ctx, r.ID)

	// Act: exactly at the end of the grace period nothing happens
	env.Clock.Set(start.Add(15 * time.Minute))
	atGrace, _ := service.SweepExpired(ctx)
	env.Clock.Advance(time.Minute)
	after, _ := service.SweepExpired(ctx)

	// Assert
	if len(atGrace.NoShows) != 0 {
		t.Errorf("expected no no-show at the grace boundary, got %v", atGrace.NoShows)
	}
	if len(after.NoShows) != 1 {
		t.Errorf("expected one no-show after grace, got %v", after.NoShows)
	}
	if len(rec.calls) != 1 || rec.calls[0].typ != domain.InfractionNoShow {
		t.Errorf("expected one no_show infraction, got %+v", rec.calls)
	}
}

func TestConfirmReservation_NotFound(t *testing.T) {
	service := NewService(&mocks.MockReservationRepository{}, nil, nil, nil, nil, nil,
		mocks.NewFixedClock(testutil.Now), mocks.NewSequentialIDs(), nil, nil, testutil.NewEnv(t).Log)

	_, err := service.ConfirmReservation(context.Background(), "r-404")

	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
