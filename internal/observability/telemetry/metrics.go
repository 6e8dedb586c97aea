package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	ActiveChargingSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sigec_active_charging_sessions",
		Help: "Número de sessões de carregamento ativas por site",
	}, []string{"site"})

	EnergyDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigec_energy_delivered_kwh_total",
		Help: "Total de energia entregue em kWh",
	}, []string{"site"})

	ReservationTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigec_reservation_transitions_total",
		Help: "Transições de estado de reservas",
	}, []string{"status"})

	SuspensionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigec_suspension_points_total",
		Help: "Pontos de suspensão registrados por tipo de infração",
	}, []string{"type"})

	DLMThrottledSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sigec_dlm_throttled_sessions",
		Help: "Sessões limitadas pela divisão de potência na última alocação",
	}, []string{"site"})

	// Métricas de infraestrutura
	SnapshotSaveLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sigec_snapshot_save_seconds",
		Help:    "Latência de gravação do snapshot de estado",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "result"})
)
