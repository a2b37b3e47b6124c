package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-dogwalk/pkg/config"
	"github.com/opd-ai/go-dogwalk/pkg/engine"
	"github.com/opd-ai/go-dogwalk/pkg/logging"
)

// TestHealthCheckIntegration runs a real simulation behind the readiness probe
func TestHealthCheckIntegration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Runtime.TickRate = 200

	sim, err := engine.NewSimulation(cfg, engine.WithLogger(logging.Discard()))
	require.NoError(t, err)

	healthChecker := NewHealthChecker()
	healthChecker.AddCheck(NewSimulationHealthCheck(sim, time.Second))
	healthChecker.AddCheck(NewMemoryHealthCheck(10000, HeapAllocMB))

	t.Run("unhealthy before the loop starts", func(t *testing.T) {
		health := healthChecker.CheckHealth(context.Background())
		assert.Equal(t, "unhealthy", health.Status)
		assert.Equal(t, "unhealthy", health.Checks["simulation"].Status)
		assert.Equal(t, "healthy", health.Checks["memory"].Status)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx, nil) }()

	require.Eventually(t, func() bool {
		return sim.Running() && sim.Tick() > 2
	}, 2*time.Second, 5*time.Millisecond)

	t.Run("ready while ticking", func(t *testing.T) {
		w := httptest.NewRecorder()
		healthChecker.ReadinessHandler(w, httptest.NewRequest("GET", "/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var response HealthStatus
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "healthy", response.Status)
	})

	cancel()
	require.NoError(t, <-done)

	t.Run("not ready after stop", func(t *testing.T) {
		w := httptest.NewRecorder()
		healthChecker.ReadinessHandler(w, httptest.NewRequest("GET", "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("liveness is independent of the simulation", func(t *testing.T) {
		w := httptest.NewRecorder()
		healthChecker.LivenessHandler(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// TestHealthCheckWithFailures tests health check behavior when components fail
func TestHealthCheckWithFailures(t *testing.T) {
	healthChecker := NewHealthChecker()
	healthChecker.AddCheck(&mockHealthCheck{
		name:    "failing_component",
		healthy: false,
		err:     fmt.Errorf("component is down"),
	})

	w := httptest.NewRecorder()
	healthChecker.ReadinessHandler(w, httptest.NewRequest("GET", "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy", response.Checks["failing_component"].Status)
	assert.Equal(t, "component is down", response.Checks["failing_component"].Message)
}

// TestMemoryHealthCheckIntegration tests memory health check with real memory stats
func TestMemoryHealthCheckIntegration(t *testing.T) {
	healthChecker := NewHealthChecker()
	healthChecker.AddCheck(NewMemoryHealthCheck(10000, HeapAllocMB))

	health := healthChecker.CheckHealth(context.Background())
	assert.Equal(t, "healthy", health.Checks["memory"].Status)

	healthChecker.RemoveCheck("memory")
	healthChecker.AddCheck(NewMemoryHealthCheck(-1, HeapAllocMB))

	health = healthChecker.CheckHealth(context.Background())
	assert.Equal(t, "unhealthy", health.Checks["memory"].Status)
}
