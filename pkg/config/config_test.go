package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-dogwalk/pkg/entity"
	"github.com/opd-ai/go-dogwalk/pkg/leash"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, 24.0, config.Arena.BoundarySize)
	assert.Equal(t, -24.0, config.Arena.FrontBoundary)

	assert.Equal(t, 3.0, config.Owner.Speed)
	assert.Equal(t, 5.0, config.Owner.BounceForce)
	assert.Equal(t, entity.DefaultPatrolDirection, config.Owner.PatrolDirection)
	assert.Equal(t, physics.Vector3D{}, config.Owner.Start)

	assert.Equal(t, 5.0, config.Dog.Speed)
	assert.Equal(t, 10.0, config.Dog.Acceleration)
	assert.Equal(t, 8.0, config.Dog.BounceForce)
	assert.Equal(t, physics.Vector3D{Z: 1.5}, config.Dog.Start)

	assert.Equal(t, leash.Spec{MaxLength: 3, PullStrength: 15, TensionThreshold: 0.7}, config.Leash)

	assert.True(t, config.Camera.Enabled)
	assert.Equal(t, 10.0, config.Camera.MoveSpeed)

	assert.Equal(t, 60, config.Runtime.TickRate)
	assert.Equal(t, 0.1, config.Runtime.MaxDeltaTime)
	assert.Equal(t, 8080, config.Runtime.HealthPort)

	assert.NoError(t, config.Validate())
}

func TestRuntimeConfig_TickInterval(t *testing.T) {
	assert.Equal(t, 0.5, RuntimeConfig{TickRate: 2}.TickInterval())
	assert.Equal(t, 0.0, RuntimeConfig{}.TickInterval())
}

func TestSaveAndLoadConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"json", "walk.json"},
		{"yaml", "walk.yaml"},
		{"yml", "walk.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)

			config := DefaultConfig()
			config.Arena.BoundarySize = 10
			config.Leash.MaxLength = 4
			config.Dog.Start = physics.Vector3D{X: 1, Z: 2}
			config.Camera.Enabled = false

			require.NoError(t, SaveConfig(config, path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, config, loaded)
		})
	}
}

func TestSaveConfig_WritesFlatStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.json")
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw["dog"], "acceleration")
	assert.Contains(t, raw["owner"], "patrolDirection")
	assert.Contains(t, raw["camera"], "moveSpeed")
}

func TestLoadConfig_KeepsDefaultsForMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	content := `
leash:
  maxLength: 5
  pullStrength: 20
  tensionThreshold: 0.5
runtime:
  tickRate: 30
  maxDeltaTime: 0.05
  healthPort: 9000
  logLevel: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5.0, config.Leash.MaxLength)
	assert.Equal(t, 30, config.Runtime.TickRate)
	assert.Equal(t, "DEBUG", config.Runtime.LogLevel)
	assert.Equal(t, DefaultConfig().Dog, config.Dog)
	assert.Equal(t, DefaultConfig().Arena, config.Arena)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "bad.json", `{"arena": {"boundarySize": "wide"`},
		{"yaml", "bad.yaml", "arena: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse config file")
		})
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "config.json")

	err := SaveConfig(DefaultConfig(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SimulationConfig)
		field  string
	}{
		{"zero boundary", func(c *SimulationConfig) { c.Arena.BoundarySize = 0 }, "arena.boundarySize"},
		{"front beyond boundary", func(c *SimulationConfig) { c.Arena.FrontBoundary = 30 }, "arena.frontBoundary"},
		{"negative owner speed", func(c *SimulationConfig) { c.Owner.Speed = -1 }, "owner.speed"},
		{"negative dog acceleration", func(c *SimulationConfig) { c.Dog.Acceleration = -1 }, "dog.acceleration"},
		{"zero tick rate", func(c *SimulationConfig) { c.Runtime.TickRate = 0 }, "runtime.tickRate"},
		{"port out of range", func(c *SimulationConfig) { c.Runtime.HealthPort = 70000 }, "runtime.healthPort"},
		{"zero leash length", func(c *SimulationConfig) { c.Leash.MaxLength = 0 }, "leash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	config := DefaultConfig()
	config.Dog.Speed = -1
	config.Owner.Speed = -1

	err := config.Validate()
	require.Error(t, err)
	assert.Equal(t, 2, strings.Count(err.Error(), ErrInvalidConfig.Error()))
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvTickRate, "30")
	t.Setenv(EnvHealthPort, "9090")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvBoundarySize, "12.5")
	t.Setenv(EnvLeashMaxLength, "4")
	t.Setenv(EnvCameraEnabled, "false")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config))

	assert.Equal(t, 30, config.Runtime.TickRate)
	assert.Equal(t, 9090, config.Runtime.HealthPort)
	assert.Equal(t, "DEBUG", config.Runtime.LogLevel)
	assert.Equal(t, 12.5, config.Arena.BoundarySize)
	assert.Equal(t, 4.0, config.Leash.MaxLength)
	assert.False(t, config.Camera.Enabled)

	// untouched values keep their defaults
	assert.Equal(t, DefaultConfig().Dog, config.Dog)
}

func TestApplyEnvironmentOverrides_Malformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvTickRate, "fast"},
		{EnvDogSpeed, "quick"},
		{EnvCameraEnabled, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			err := ApplyEnvironmentOverrides(DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
