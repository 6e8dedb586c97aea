package config

import (
	"time"

	"github.com/seu-repo/sigec-site/internal/adapter/snapshot"
	"github.com/seu-repo/sigec-site/internal/domain"
)

type Config struct {
	App            AppConfig                `mapstructure:"app"`
	HTTP           HTTPConfig               `mapstructure:"http"`
	Logging        LoggingConfig            `mapstructure:"logging"`
	Persistence    PersistenceConfig        `mapstructure:"persistence"`
	Redis          RedisConfig              `mapstructure:"redis"`
	Database       DatabaseConfig           `mapstructure:"database"`
	Queue          QueueConfig              `mapstructure:"queue"`
	OpenTelemetry  OpenTelemetryConfig      `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig         `mapstructure:"prometheus"`
	CircuitBreaker CircuitBreakerConfig     `mapstructure:"circuit_breaker"`
	CORS           CORSConfig               `mapstructure:"cors"`
	Reservation    domain.ReservationConfig `mapstructure:"reservation"`
	Charging       domain.ChargingConfig    `mapstructure:"charging"`
	Suspension     domain.SuspensionConfig  `mapstructure:"suspension"`
	Sweep          SweepConfig              `mapstructure:"sweep"`
	Seed           SeedConfig               `mapstructure:"seed"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AccessLog    bool          `mapstructure:"access_log"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// PersistenceConfig selects the snapshot store
type PersistenceConfig struct {
	Driver    string `mapstructure:"driver"` // memory | file | redis | postgres
	FilePath  string `mapstructure:"file_path"`
	Namespace string `mapstructure:"namespace"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type DatabaseConfig struct {
	URL        string `mapstructure:"url"`
	LogQueries bool   `mapstructure:"log_queries"`
}

type QueueConfig struct {
	Driver string `mapstructure:"driver"` // inprocess | nats | rabbitmq
	URL    string `mapstructure:"url"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	ServiceName string       `mapstructure:"service_name"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
}

type JaegerConfig struct {
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerParam float64 `mapstructure:"sampler_param"`
}

type PrometheusConfig struct {
	Path string `mapstructure:"path"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
	MinRequests      uint32        `mapstructure:"min_requests"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type SeedConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	RandSeed uint64 `mapstructure:"rand_seed"`
	// Timezone of the demo reference day
	Timezone string `mapstructure:"timezone"`
}

// BreakerSettings converts the circuit breaker section for the snapshot stores.
func (c CircuitBreakerConfig) BreakerSettings() snapshot.BreakerSettings {
	return snapshot.BreakerSettings{
		MaxRequests:  c.MaxRequests,
		Interval:     c.Interval,
		Timeout:      c.Timeout,
		FailureRatio: c.FailureThreshold,
		MinRequests:  c.MinRequests,
	}
}
