package health

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ok(ctx context.Context) error   { return nil }
func down(ctx context.Context) error { return errors.New("connection refused") }

func TestReady_AllHealthy(t *testing.T) {
	s := NewService("test", zap.NewNop())
	s.RegisterChecker("snapshot", PingCheck(ok, false, zap.NewNop()))
	s.RegisterChecker("queue", PingCheck(ok, true, zap.NewNop()))

	res := s.Ready(context.Background())

	assert.True(t, res.Ready)
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Len(t, res.Checks, 2)
	assert.Equal(t, "snapshot", res.Checks["snapshot"].Name)
}

func TestReady_DegradedStillReady(t *testing.T) {
	s := NewService("test", zap.NewNop())
	s.RegisterChecker("snapshot", PingCheck(ok, false, zap.NewNop()))
	s.RegisterChecker("queue", PingCheck(down, true, zap.NewNop()))

	res := s.Ready(context.Background())

	assert.True(t, res.Ready)
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Contains(t, res.Checks["queue"].Message, "connection refused")
}

func TestReady_Unhealthy(t *testing.T) {
	s := NewService("test", zap.NewNop())
	s.RegisterChecker("snapshot", PingCheck(down, false, zap.NewNop()))
	s.RegisterChecker("queue", PingCheck(down, true, zap.NewNop()))

	res := s.Ready(context.Background())

	assert.False(t, res.Ready)
	assert.Equal(t, StatusUnhealthy, res.Status)
}

func TestFiberHandler_Probes(t *testing.T) {
	s := NewService("1.2.3", zap.NewNop())
	s.RegisterChecker("snapshot", PingCheck(down, false, zap.NewNop()))
	app := fiber.New()
	NewFiberHandler(s).RegisterRoutes(app)

	live, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, live.StatusCode)

	ready, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, ready.StatusCode)
}
