package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: test\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "test", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "file", cfg.Persistence.Driver)
	assert.Equal(t, "mabe-ev", cfg.Persistence.Namespace)
	assert.Equal(t, 2, cfg.Reservation.WeeklyLimit)
	assert.Equal(t, 3, cfg.Reservation.HostBonus)
	assert.Equal(t, 15, cfg.Reservation.NoShowGraceMinutes)
	assert.Equal(t, "MABE", cfg.Reservation.CodePrefix)
	assert.Equal(t, 4, cfg.Suspension.Threshold)
	assert.Equal(t, 16.0, cfg.Charging.CompletionKWh)
	assert.Equal(t, time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, 0.6, cfg.CircuitBreaker.BreakerSettings().FailureRatio)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
reservation:
  weekly_limit: 5
sweep:
  interval: 30s
`)
	t.Setenv("APP_QUEUE_DRIVER", "nats")
	t.Setenv("QUEUE_URL", "nats://localhost:4222")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Reservation.WeeklyLimit)
	assert.Equal(t, 30*time.Second, cfg.Sweep.Interval)
	assert.Equal(t, "nats", cfg.Queue.Driver)
	assert.Equal(t, "nats://localhost:4222", cfg.Queue.URL)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "http: [unclosed\n")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTP:        HTTPConfig{Port: 8080},
			Logging:     LoggingConfig{Format: "json"},
			Persistence: PersistenceConfig{Driver: "memory"},
			Queue:       QueueConfig{Driver: "inprocess"},
			Sweep:       SweepConfig{Interval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"unknown persistence", func(c *Config) { c.Persistence.Driver = "mongo" }, true},
		{"file without path", func(c *Config) { c.Persistence.Driver = "file" }, true},
		{"redis without url", func(c *Config) { c.Persistence.Driver = "redis" }, true},
		{"rabbitmq without url", func(c *Config) { c.Queue.Driver = "rabbitmq" }, true},
		{"negative limit", func(c *Config) { c.Reservation.WeeklyLimit = -1 }, true},
		{"zero sweep", func(c *Config) { c.Sweep.Interval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			c.Suspension.Threshold = 4
			c.Suspension.Months = 1
			tt.mutate(c)

			err := c.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
