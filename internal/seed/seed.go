// Package seed builds the synthetic demo state: three sites, their zones,
// bays and chargers, a staff directory, vehicles, policies, and a few days
// of reservations and sessions around a reference time.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// Options controls generation. The same options always yield the same state.
type Options struct {
	// Now anchors "today"; reservations are placed relative to it.
	Now time.Time
	// Location is the wall clock used for reservation hours.
	Location *time.Location
	// RandSeed drives charger statuses and session readings.
	RandSeed uint64
}

// HostUsers may sponsor guests.
var HostUsers = []string{"u-flt-1", "u-ops-1", "u-ing-1"}

// Build returns a fresh snapshot.
func Build(opts Options) *domain.Snapshot {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	rng := rand.New(rand.NewPCG(opts.RandSeed, opts.RandSeed^0x9e3779b97f4a7c15))

	bays := Bays()
	users := Users()
	vehicles := Vehicles()
	reservations := Reservations(users, vehicles, bays, opts.Now.In(opts.Location))
	chargers := Chargers(bays, rng)
	sessions := Sessions(reservations, bays, rng)

	// chargers hosting an open session are busy
	inUse := make(map[string]bool)
	for _, s := range sessions {
		if s.IsActive() {
			inUse[s.ChargerID] = true
		}
	}
	for i := range chargers {
		if inUse[chargers[i].ID] {
			chargers[i].Status = domain.ChargerStatusInUse
		}
	}

	return &domain.Snapshot{
		Sites:           Sites(),
		Zones:           Zones(),
		Bays:            bays,
		Chargers:        chargers,
		Users:           users,
		Vehicles:        vehicles,
		Reservations:    reservations,
		Sessions:        sessions,
		EnergyPolicies:  EnergyPolicies(),
		PricingPolicies: PricingPolicies(),
		Tickets:         Tickets(bays, opts.Now),
	}
}

func Sites() []domain.Site {
	return []domain.Site{
		{ID: "site-hq", Name: "Mabe Sede Central", Timezone: "America/Mexico_City",
			Address: "Av. Reforma 123, Ciudad de México", RenewablePercent: 85},
		{ID: "site-norte", Name: "Planta Norte Monterrey", Timezone: "America/Monterrey",
			Address: "Parque Industrial Norte, Nuevo León", RenewablePercent: 78},
		{ID: "site-bajio", Name: "Centro Bajío", Timezone: "America/Mexico_City",
			Address: "Zona Industrial Bajío, Guanajuato", RenewablePercent: 92},
	}
}

func Zones() []domain.Zone {
	return []domain.Zone{
		{ID: "z-hq-a", SiteID: "site-hq", Name: "Estacionamiento Ejecutivo"},
		{ID: "z-hq-b", SiteID: "site-hq", Name: "Plaza Norte"},
		{ID: "z-hq-c", SiteID: "site-hq", Name: "Área de Visitantes"},
		{ID: "z-n-a", SiteID: "site-norte", Name: "Zona Industrial A"},
		{ID: "z-n-b", SiteID: "site-norte", Name: "Estacionamiento Empleados"},
		{ID: "z-b-a", SiteID: "site-bajio", Name: "Patio Principal"},
		{ID: "z-b-b", SiteID: "site-bajio", Name: "Zona VIP"},
	}
}

// Bays numbers bays globally: eight per HQ zone, six per Norte zone, four per Bajío zone.
func Bays() []domain.Bay {
	var bays []domain.Bay
	idx := 1
	for _, z := range Zones() {
		count := 4
		switch z.SiteID {
		case "site-hq":
			count = 8
		case "site-norte":
			count = 6
		}
		for i := 0; i < count; i++ {
			bays = append(bays, domain.Bay{
				ID:        fmt.Sprintf("bay-%d", idx),
				SiteID:    z.SiteID,
				ZoneID:    z.ID,
				Label:     fmt.Sprintf("E%02d", idx),
				ChargerID: fmt.Sprintf("chg-%d", idx),
			})
			idx++
		}
	}
	return bays
}

var chargerModels = []struct {
	model   string
	powerKW float64
}{
	{"Wallbox Pulsar Plus", 7},
	{"ABB Terra AC", 11},
	{"Schneider EVlink Pro", 22},
	{"ABB Terra HP", 50},
	{"Tritium Veefil-PK", 75},
	{"ABB Terra 360", 150},
	{"Kempower Satellite", 200},
}

var connectorCycle = []domain.ConnectorType{domain.ConnectorCCS1, domain.ConnectorType2, domain.ConnectorNACS}

// Chargers mounts one charger per bay. Statuses are drawn 60/20/10/5/5 across
// Available, InUse, Reserved, Faulted and Unavailable.
func Chargers(bays []domain.Bay, rng *rand.Rand) []domain.Charger {
	statuses := []domain.ChargerStatus{
		domain.ChargerStatusAvailable, domain.ChargerStatusInUse, domain.ChargerStatusReserved,
		domain.ChargerStatusFaulted, domain.ChargerStatusUnavailable,
	}
	weights := []int{60, 20, 10, 5, 5}

	chargers := make([]domain.Charger, 0, len(bays))
	for i, b := range bays {
		m := chargerModels[i%len(chargerModels)]
		id := fmt.Sprintf("chg-%d", i+1)

		status := domain.ChargerStatusAvailable
		roll, cumulative := rng.IntN(100), 0
		for j, w := range weights {
			cumulative += w
			if roll < cumulative {
				status = statuses[j]
				break
			}
		}

		c := domain.Charger{
			ID:       id,
			SiteID:   b.SiteID,
			BayID:    b.ID,
			Model:    m.model,
			PowerKW:  m.powerKW,
			Protocol: "OCPP 1.6J",
			Status:   status,
			Connectors: []domain.Connector{{
				ID: fmt.Sprintf("conn-%d-1", i+1), ChargerID: id,
				Type: connectorCycle[i%len(connectorCycle)], MaxKW: m.powerKW,
			}},
			Firmware: "v2.8.4",
		}
		if m.powerKW >= 50 {
			c.Protocol = "OCPP 2.0.1"
			c.Firmware = "v3.2.1"
		}
		if i%7 == 0 {
			c.LastErrors = []string{"Error de comunicación", "Reinicio automático"}
		}
		chargers = append(chargers, c)
	}
	return chargers
}

// Users is the staff directory. Department drives the demo role.
func Users() []domain.User {
	raw := []struct{ id, name, dept string }{
		{"u-ops-1", "Laura Martínez", "Ops"},
		{"u-ops-2", "Carlos Rodríguez", "Ops"},
		{"u-ing-1", "Ana García", "Ingeniería"},
		{"u-ing-2", "Miguel Torres", "Ingeniería"},
		{"u-ing-3", "Sofia Hernández", "Ingeniería"},
		{"u-ven-1", "Diego Morales", "Ventas"},
		{"u-ven-2", "Carmen López", "Ventas"},
		{"u-ven-3", "Roberto Silva", "Ventas"},
		{"u-flt-1", "María Jiménez", "Flota"},
		{"u-flt-2", "José Ramírez", "Flota"},
		{"u-flt-3", "Patricia Vargas", "Flota"},
		{"u-flt-4", "Fernando Castro", "Flota"},
		{"u-sec-1", "Rosa Mendoza", "Seguridad"},
		{"u-sec-2", "Alberto Ruiz", "Seguridad"},
		{"u-aud-1", "Pablo Guerrero", "Auditoría"},
		{"u-dir-1", "Elena Vásquez", "Ops"},
		{"u-dir-2", "Ricardo Peña", "Ingeniería"},
	}

	users := make([]domain.User, 0, len(raw))
	for _, r := range raw {
		role := domain.RoleDriver
		switch {
		case r.id == "u-dir-1":
			role = domain.RoleSiteManager
		case r.id == "u-dir-2":
			role = domain.RoleAdminLite
		case strings.HasPrefix(r.id, "u-ops-"):
			role = domain.RoleOperator
		case strings.HasPrefix(r.id, "u-sec-"):
			role = domain.RoleTechnician
		}
		users = append(users, domain.User{
			ID: r.id, Name: r.name, Department: r.dept, Role: role, IsHost: isHost(r.id),
		})
	}
	return users
}

func isHost(id string) bool {
	for _, h := range HostUsers {
		if h == id {
			return true
		}
	}
	return false
}

func Vehicles() []domain.Vehicle {
	v := func(id, make_, model string, ct domain.ConnectorType, batt, kw float64, owner, nick string) domain.Vehicle {
		return domain.Vehicle{ID: id, Make: make_, Model: model, ConnectorType: ct,
			BatteryKWh: batt, TypicalChargeKW: kw, OwnerUserID: owner, Nickname: nick}
	}
	return []domain.Vehicle{
		v("v-1", "Nissan", "Leaf", domain.ConnectorType2, 40, 7, "u-flt-1", "Hoja Verde"),
		v("v-2", "Volkswagen", "ID.4", domain.ConnectorCCS1, 77, 11, "u-flt-1", "Azul Cielo"),
		v("v-3", "Tesla", "Model 3", domain.ConnectorNACS, 60, 11, "u-ing-1", "Rayo"),
		v("v-4", "BYD", "Atto 3", domain.ConnectorType2, 60, 11, "u-ven-1", ""),
		v("v-5", "Kia", "EV6", domain.ConnectorCCS1, 77, 22, "u-flt-2", "Tigre"),
		v("v-6", "Hyundai", "IONIQ 5", domain.ConnectorCCS1, 72, 22, "u-ing-2", ""),
		v("v-7", "Chevrolet", "Bolt EUV", domain.ConnectorCCS1, 65, 7, "u-ven-2", "Rayo Dorado"),
		v("v-8", "Renault", "ZOE", domain.ConnectorType2, 52, 22, "u-flt-3", ""),
		v("v-9", "BMW", "iX3", domain.ConnectorCCS1, 74, 11, "u-dir-1", "Elegancia"),
		v("v-10", "Audi", "e-tron GT", domain.ConnectorCCS1, 85, 22, "u-dir-2", "Potencia"),
		v("v-11", "Mercedes", "EQS", domain.ConnectorCCS1, 108, 22, "u-ops-1", ""),
		v("v-12", "Polestar", "2", domain.ConnectorCCS1, 78, 11, "u-ing-3", "Estrella Polar"),
	}
}

func EnergyPolicies() []domain.EnergyPolicy {
	return []domain.EnergyPolicy{
		{SiteID: "site-hq", CapacityCapKW: 150, BufferMinutes: 5, GraceMinutes: 8, QueuePolicy: domain.QueuePolicyFIFO},
		{SiteID: "site-norte", CapacityCapKW: 200, BufferMinutes: 5, GraceMinutes: 10, QueuePolicy: domain.QueuePolicyFIFO},
		{SiteID: "site-bajio", CapacityCapKW: 120, BufferMinutes: 3, GraceMinutes: 12, QueuePolicy: domain.QueuePolicyFIFO},
	}
}

func PricingPolicies() []domain.PricingPolicy {
	return []domain.PricingPolicy{
		{SiteID: "site-hq", Currency: "MXN", IdleFeePerMinute: 0.9, TOU: []domain.TOUBlock{
			{StartHour: 0, EndHour: 7, PricePerKWh: 2.8},
			{StartHour: 7, EndHour: 17, PricePerKWh: 3.6},
			{StartHour: 17, EndHour: 22, PricePerKWh: 5.4}, // pico
			{StartHour: 22, EndHour: 24, PricePerKWh: 2.8},
		}},
		{SiteID: "site-norte", Currency: "MXN", IdleFeePerMinute: 0.8, TOU: []domain.TOUBlock{
			{StartHour: 0, EndHour: 6, PricePerKWh: 2.5},
			{StartHour: 6, EndHour: 18, PricePerKWh: 3.3},
			{StartHour: 18, EndHour: 22, PricePerKWh: 4.9},
			{StartHour: 22, EndHour: 24, PricePerKWh: 2.5},
		}},
		{SiteID: "site-bajio", Currency: "MXN", IdleFeePerMinute: 0.7, TOU: []domain.TOUBlock{
			{StartHour: 0, EndHour: 8, PricePerKWh: 2.2},
			{StartHour: 8, EndHour: 16, PricePerKWh: 3.1},
			{StartHour: 16, EndHour: 21, PricePerKWh: 4.5},
			{StartHour: 21, EndHour: 24, PricePerKWh: 2.2},
		}},
	}
}
