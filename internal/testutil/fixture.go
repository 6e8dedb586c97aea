// Package testutil provides a small site fixture over the in-memory store
// for service and handler tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/queue"
	"github.com/seu-repo/sigec-site/internal/adapter/storage/memory"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/mocks"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
)

// Now is the fixture reference time, a Monday morning in UTC.
var Now = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

// Env is a ready-to-use test environment.
type Env struct {
	DB     *memory.DB
	Repos  *memory.Repositories
	Clock  *mocks.FixedClock
	IDs    *mocks.SequentialIDs
	Queue  *mocks.MockMessageQueue
	Events *queue.Publisher
	Store  *mocks.MockSnapshotStore
	Locks  *sitelock.Locker
	Log    *zap.Logger
}

// NewEnv loads Snapshot() into a fresh database.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	log := zap.NewNop()
	store := &mocks.MockSnapshotStore{}
	db := memory.NewDB(store, log)
	if err := db.Replace(context.Background(), Snapshot()); err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	mq := mocks.NewMockMessageQueue()
	ids := mocks.NewSequentialIDs()
	// vehicles v-1..v-3 are fixture data
	ids.Skip("v", 3)

	return &Env{
		DB:     db,
		Repos:  memory.NewRepositories(db),
		Clock:  mocks.NewFixedClock(Now),
		IDs:    ids,
		Queue:  mq,
		Events: queue.NewPublisher(mq, "test", log),
		Store:  store,
		Locks:  sitelock.New(),
		Log:    log,
	}
}

// Published returns the decoded events written on topic.
func (e *Env) Published(t *testing.T, topic string) []*queue.Event {
	t.Helper()
	var out []*queue.Event
	for _, raw := range e.Queue.GetPublishedMessages(topic) {
		ev, err := queue.Decode(raw)
		if err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		out = append(out, ev)
	}
	return out
}

// Snapshot is the fixture state:
//
//	s-1 (UTC, cap 100 kW): zone z-1 with b-1/c-1 60 kW, b-2/c-2 80 kW, b-3/c-3 22 kW
//	s-2 (UTC, no policies): zone z-2 with b-9/c-9 11 kW
//
// Users u-1..u-3 are drivers (u-2 hosts guests), u-op is an operator and
// u-mgr a site manager. Each driver owns one vehicle v-N.
func Snapshot() *domain.Snapshot {
	charger := func(id, site, bay string, kw float64, ct domain.ConnectorType) domain.Charger {
		return domain.Charger{
			ID: id, SiteID: site, BayID: bay, Model: "Test " + id, PowerKW: kw,
			Protocol: "OCPP 1.6J", Status: domain.ChargerStatusAvailable,
			Connectors: []domain.Connector{{ID: id + "-1", ChargerID: id, Type: ct, MaxKW: kw}},
		}
	}

	return &domain.Snapshot{
		Sites: []domain.Site{
			{ID: "s-1", Name: "Sede", Timezone: "UTC", RenewablePercent: 80},
			{ID: "s-2", Name: "Planta", Timezone: "UTC", RenewablePercent: 50},
		},
		Zones: []domain.Zone{
			{ID: "z-1", SiteID: "s-1", Name: "Zona A"},
			{ID: "z-2", SiteID: "s-2", Name: "Zona B"},
		},
		Bays: []domain.Bay{
			{ID: "b-1", SiteID: "s-1", ZoneID: "z-1", Label: "E01", ChargerID: "c-1"},
			{ID: "b-2", SiteID: "s-1", ZoneID: "z-1", Label: "E02", ChargerID: "c-2"},
			{ID: "b-3", SiteID: "s-1", ZoneID: "z-1", Label: "E03", ChargerID: "c-3"},
			{ID: "b-9", SiteID: "s-2", ZoneID: "z-2", Label: "E09", ChargerID: "c-9"},
		},
		Chargers: []domain.Charger{
			charger("c-1", "s-1", "b-1", 60, domain.ConnectorCCS1),
			charger("c-2", "s-1", "b-2", 80, domain.ConnectorCCS1),
			charger("c-3", "s-1", "b-3", 22, domain.ConnectorType2),
			charger("c-9", "s-2", "b-9", 11, domain.ConnectorType2),
		},
		Users: []domain.User{
			{ID: "u-1", Name: "Ana", Department: "Ingeniería", Role: domain.RoleDriver},
			{ID: "u-2", Name: "Beto", Department: "Flota", Role: domain.RoleDriver, IsHost: true},
			{ID: "u-3", Name: "Carla", Department: "Ventas", Role: domain.RoleDriver},
			{ID: "u-op", Name: "Oscar", Department: "Ops", Role: domain.RoleOperator},
			{ID: "u-mgr", Name: "Marta", Department: "Ops", Role: domain.RoleSiteManager},
		},
		Vehicles: []domain.Vehicle{
			{ID: "v-1", Make: "Kia", Model: "EV6", ConnectorType: domain.ConnectorCCS1, BatteryKWh: 77, TypicalChargeKW: 60, OwnerUserID: "u-1"},
			{ID: "v-2", Make: "BMW", Model: "iX3", ConnectorType: domain.ConnectorCCS1, BatteryKWh: 74, TypicalChargeKW: 80, OwnerUserID: "u-2"},
			{ID: "v-3", Make: "Renault", Model: "ZOE", ConnectorType: domain.ConnectorType2, BatteryKWh: 52, TypicalChargeKW: 22, OwnerUserID: "u-3"},
		},
		EnergyPolicies: []domain.EnergyPolicy{
			{SiteID: "s-1", CapacityCapKW: 100, BufferMinutes: 5, GraceMinutes: 10, QueuePolicy: domain.QueuePolicyFIFO},
		},
		PricingPolicies: []domain.PricingPolicy{
			{SiteID: "s-1", Currency: "MXN", IdleFeePerMinute: 0.9, TOU: []domain.TOUBlock{
				{StartHour: 0, EndHour: 7, PricePerKWh: 2.8},
				{StartHour: 7, EndHour: 17, PricePerKWh: 3.6},
				{StartHour: 17, EndHour: 24, PricePerKWh: 5.4},
			}},
		},
	}
}
