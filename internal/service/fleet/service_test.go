package fleet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/mocks"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/testutil"
)

// fakeCanceler records cancellations
type fakeCanceler struct {
	ids     []string
	reasons []string
	err     error
}

func (f *fakeCanceler) CancelReservation(ctx context.Context, id string, reason string) (*domain.Reservation, error) {
	f.ids = append(f.ids, id)
	f.reasons = append(f.reasons, reason)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Reservation{ID: id, Status: domain.ReservationStatusCanceled}, nil
}

func newTestService(env *testutil.Env, canceler ReservationCanceler) *Service {
	r := env.Repos
	return NewService(r.Users, r.Vehicles, r.Guests, r.Reports, r.Tickets, r.Sites, r.Chargers,
		canceler, env.Events, env.Clock, env.IDs, env.Log)
}

func TestAddVehicle(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, nil)

	// Act
	v, err := service.AddVehicle(context.Background(), "u-1", domain.Vehicle{
		Make: "Nissan", Model: "Leaf", ConnectorType: domain.ConnectorNACS,
		BatteryKWh: 40, TypicalChargeKW: 50, OwnerUserID: "u-3",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v.OwnerUserID != "u-1" {
		t.Errorf("expected owner u-1, got %s", v.OwnerUserID)
	}
	if v.ID != "v-4" {
		t.Errorf("expected id v-4, got %s", v.ID)
	}
	list, _ := service.ListVehicles(context.Background(), "u-1")
	if len(list) != 2 {
		t.Errorf("expected 2 vehicles for u-1, got %d", len(list))
	}
}

func TestAddVehicle_IDCollision(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	env.IDs = mocks.NewSequentialIDs() // next vehicle id is v-1, owned by u-1
	service := newTestService(env, nil)
	ctx := context.Background()

	// Act
	_, err := service.AddVehicle(ctx, "u-3", domain.Vehicle{
		Make: "Nissan", Model: "Leaf", ConnectorType: domain.ConnectorNACS,
		BatteryKWh: 40, TypicalChargeKW: 50,
	})

	// Assert
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	v, _ := env.Repos.Vehicles.FindByID(ctx, "v-1")
	if v == nil || v.OwnerUserID != "u-1" || v.Make != "Kia" {
		t.Errorf("expected v-1 to remain u-1's Kia, got %+v", v)
	}
	list, _ := service.ListVehicles(ctx, "u-3")
	if len(list) != 1 {
		t.Errorf("expected 1 vehicle for u-3, got %d", len(list))
	}
}

func TestAddVehicle_Validation(t *testing.T) {
	tests := []struct {
		name    string
		vehicle domain.Vehicle
	}{
		{"missing model", domain.Vehicle{Make: "Kia", ConnectorType: domain.ConnectorCCS1, BatteryKWh: 60, TypicalChargeKW: 50}},
		{"unknown connector", domain.Vehicle{Make: "Kia", Model: "Niro", ConnectorType: "Schuko", BatteryKWh: 60, TypicalChargeKW: 50}},
		{"zero battery", domain.Vehicle{Make: "Kia", Model: "Niro", ConnectorType: domain.ConnectorCCS1, TypicalChargeKW: 50}},
		{"zero rate", domain.Vehicle{Make: "Kia", Model: "Niro", ConnectorType: domain.ConnectorCCS1, BatteryKWh: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnv(t)
			service := newTestService(env, nil)

			_, err := service.AddVehicle(context.Background(), "u-1", tt.vehicle)

			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateVehicle_OwnerOnly(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, nil)
	nick := "Azul"

	// Act
	_, err := service.UpdateVehicle(context.Background(), "u-2", "v-1", VehiclePatch{Nickname: &nick})
	removeErr := service.RemoveVehicle(context.Background(), "u-2", "v-1")

	// Assert
	if !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("expected ErrPolicyViolation, got %v", err)
	}
	if !errors.Is(removeErr, domain.ErrPolicyViolation) {
		t.Errorf("expected ErrPolicyViolation on remove, got %v", removeErr)
	}
}

func TestUpdateVehicle(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, nil)
	rate := 11.0
	nick := "Azul"

	// Act
	v, err := service.UpdateVehicle(context.Background(), "u-1", "v-1", VehiclePatch{TypicalChargeKW: &rate, Nickname: &nick})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v.TypicalChargeKW != 11 || v.Nickname != "Azul" || v.Make != "Kia" {
		t.Errorf("unexpected vehicle %+v", v)
	}
}

func TestRemoveVehicle(t *testing.T) {
	env := testutil.NewEnv(t)
	service := newTestService(env, nil)

	if err := service.RemoveVehicle(context.Background(), "u-3", "v-3"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	v, _ := env.Repos.Vehicles.FindByID(context.Background(), "v-3")
	if v != nil {
		t.Errorf("expected vehicle removed, got %+v", v)
	}
}

func TestAddGuest_HostOnly(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	service := newTestService(env, nil)

	// Act
	_, err := service.AddGuest(context.Background(), domain.Guest{HostUserID: "u-1", Name: "Visita", LicensePlate: "ABC-123"})

	// Assert
	if !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("expected ErrPolicyViolation, got %v", err)
	}
}

func TestBookGuestReservation(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	ctx := context.Background()
	service := newTestService(env, nil)
	g, err := service.AddGuest(ctx, domain.Guest{HostUserID: "u-2", Name: "Visita", LicensePlate: "ABC-123"})
	if err != nil {
		t.Fatalf("failed to add guest: %v", err)
	}
	env.IDs.Codes = []string{"GUEST-1001"}
	env.Repos.Guests.CreateReservation(ctx, &domain.GuestReservation{ID: "gr-0", GuestID: g.ID, Code: "GUEST-1001"})

	// Act
	gr, err := service.BookGuestReservation(ctx, GuestBooking{
		GuestID: g.ID, HostUserID: "u-2", SiteID: "s-1", ZoneID: "z-1",
		StartAt: testutil.Now.Add(time.Hour), EndAt: testutil.Now.Add(2 * time.Hour),
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(gr.Code, "GUEST-") || gr.Code == "GUEST-1001" {
		t.Errorf("expected a fresh GUEST code, got %s", gr.Code)
	}
	if gr.Status != domain.ReservationStatusRequested {
		t.Errorf("expected requested, got %s", gr.Status)
	}
	stored, _ := env.Repos.Guests.FindGuest(ctx, g.ID)
	if stored.MonthlyReservations != 1 {
		t.Errorf("expected 1 monthly reservation, got %d", stored.MonthlyReservations)
	}
}

func TestBookGuestReservation_OtherHost(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	service := newTestService(env, nil)
	g, _ := service.AddGuest(ctx, domain.Guest{HostUserID: "u-2", Name: "Visita", LicensePlate: "ABC-123"})

	_, err := service.BookGuestReservation(ctx, GuestBooking{
		GuestID: g.ID, HostUserID: "u-1", SiteID: "s-1", ZoneID: "z-1",
		StartAt: testutil.Now.Add(time.Hour), EndAt: testutil.Now.Add(2 * time.Hour),
	})

	if !errors.Is(err, domain.ErrPolicyViolation) {
		t.Errorf("expected ErrPolicyViolation, got %v", err)
	}
}

func TestSubmitUserReport_OccupiedSpotCancels(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	canceler := &fakeCanceler{}
	service := newTestService(env, canceler)

	// Act
	rep, err := service.SubmitUserReport(context.Background(), domain.UserReport{
		ReporterID: "u-3", Type: domain.ReportOccupiedSpot, SiteID: "s-1", BayID: "b-1", ReservationID: "r-9",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rep.Status != domain.ReportStatusPending {
		t.Errorf("expected pending, got %s", rep.Status)
	}
	if len(canceler.ids) != 1 || canceler.ids[0] != "r-9" {
		t.Fatalf("expected r-9 canceled, got %v", canceler.ids)
	}
	if canceler.reasons[0] != "Spot reported occupied by u-3" {
		t.Errorf("unexpected reason %q", canceler.reasons[0])
	}
	if got := len(env.Published(t, ports.TopicReportSubmitted)); got != 1 {
		t.Errorf("expected 1 report event, got %d", got)
	}
}

func TestSubmitUserReport_CancelFailureKeepsReport(t *testing.T) {
	env := testutil.NewEnv(t)
	canceler := &fakeCanceler{err: domain.ErrInvalidTransition}
	service := newTestService(env, canceler)

	rep, err := service.SubmitUserReport(context.Background(), domain.UserReport{
		ReporterID: "u-3", Type: domain.ReportOccupiedSpot, SiteID: "s-1", ReservationID: "r-9",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	all, _ := service.ListReports(context.Background())
	if len(all) != 1 || all[0].ID != rep.ID {
		t.Errorf("expected the report to be stored, got %v", all)
	}
}

func TestSubmitUserReport_OtherTypesDoNotCancel(t *testing.T) {
	env := testutil.NewEnv(t)
	canceler := &fakeCanceler{}
	service := newTestService(env, canceler)

	_, err := service.SubmitUserReport(context.Background(), domain.UserReport{
		ReporterID: "u-3", Type: domain.ReportDamagedCharger, SiteID: "s-1", ReservationID: "r-9",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(canceler.ids) != 0 {
		t.Errorf("expected no cancellation, got %v", canceler.ids)
	}
}

func TestTicketLifecycle(t *testing.T) {
	// Arrange
	env := testutil.NewEnv(t)
	ctx := context.Background()
	service := newTestService(env, nil)

	// Act
	tk, err := service.OpenTicket(ctx, domain.Ticket{ChargerID: "c-2", IssueType: "Connector damaged", Severity: domain.SeverityHigh})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tk.SiteID != "s-1" || tk.BayID != "b-2" {
		t.Errorf("expected s-1/b-2, got %s/%s", tk.SiteID, tk.BayID)
	}
	if !tk.SLADue.Equal(testutil.Now.Add(4 * time.Hour)) {
		t.Errorf("expected SLA in 4h, got %v", tk.SLADue)
	}
	c, _ := env.Repos.Chargers.FindByID(ctx, "c-2")
	if c.Status != domain.ChargerStatusFaulted {
		t.Errorf("expected charger faulted, got %s", c.Status)
	}
	if len(c.LastErrors) == 0 || c.LastErrors[0] != "Connector damaged" {
		t.Errorf("expected issue logged on charger, got %v", c.LastErrors)
	}

	// Act
	resolved, err := service.UpdateTicketStatus(ctx, tk.ID, domain.TicketStatusResolved, "u-op")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved.ResolvedAt == nil || resolved.AssigneeID != "u-op" {
		t.Errorf("unexpected resolved ticket %+v", resolved)
	}
	c, _ = env.Repos.Chargers.FindByID(ctx, "c-2")
	if c.Status != domain.ChargerStatusAvailable {
		t.Errorf("expected charger available, got %s", c.Status)
	}

	_, err = service.UpdateTicketStatus(ctx, tk.ID, domain.TicketStatusInProgress, "")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOpenTicket_Validation(t *testing.T) {
	tests := []struct {
		name   string
		ticket domain.Ticket
		want   error
	}{
		{"missing issue", domain.Ticket{ChargerID: "c-1", Severity: domain.SeverityLow}, domain.ErrValidation},
		{"unknown severity", domain.Ticket{ChargerID: "c-1", IssueType: "x", Severity: "critical"}, domain.ErrValidation},
		{"unknown charger", domain.Ticket{ChargerID: "c-404", IssueType: "x", Severity: domain.SeverityLow}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnv(t)
			service := newTestService(env, nil)

			_, err := service.OpenTicket(context.Background(), tt.ticket)

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
