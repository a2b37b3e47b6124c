// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-dogwalk/pkg/camera"
	"github.com/opd-ai/go-dogwalk/pkg/entity"
	"github.com/opd-ai/go-dogwalk/pkg/leash"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SimulationConfig contains configuration for a dog walk simulation
type SimulationConfig struct {
	Arena   physics.Arena `json:"arena" yaml:"arena"`
	Owner   OwnerConfig   `json:"owner" yaml:"owner"`
	Dog     DogConfig     `json:"dog" yaml:"dog"`
	Leash   leash.Spec    `json:"leash" yaml:"leash"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime"`
}

// OwnerConfig contains the owner's start position and movement tuning
type OwnerConfig struct {
	Start             physics.Vector3D `json:"start" yaml:"start"`
	entity.OwnerStats `yaml:",inline"`
}

// DogConfig contains the dog's start position and movement tuning
type DogConfig struct {
	Start           physics.Vector3D `json:"start" yaml:"start"`
	entity.DogStats `yaml:",inline"`
}

// CameraConfig contains camera rig configuration. A disabled camera makes dog
// input world-relative.
type CameraConfig struct {
	Enabled      bool `json:"enabled" yaml:"enabled"`
	camera.Stats `yaml:",inline"`
}

// RuntimeConfig contains tick driver and process configuration
type RuntimeConfig struct {
	TickRate     int     `json:"tickRate" yaml:"tickRate"`
	MaxDeltaTime float64 `json:"maxDeltaTime" yaml:"maxDeltaTime"`
	HealthPort   int     `json:"healthPort" yaml:"healthPort"`
	LogLevel     string  `json:"logLevel" yaml:"logLevel"`
}

// TickInterval returns the nominal delta time in seconds.
func (r RuntimeConfig) TickInterval() float64 {
	if r.TickRate <= 0 {
		return 0
	}
	return 1.0 / float64(r.TickRate)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, using YAML for .yaml/.yml paths
func SaveConfig(config *SimulationConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Arena: physics.Arena{
			BoundarySize:  24,
			FrontBoundary: -24,
		},
		Owner: OwnerConfig{
			Start: physics.Vector3D{},
			OwnerStats: entity.OwnerStats{
				Speed:           3,
				BounceForce:     5,
				PatrolDirection: entity.DefaultPatrolDirection,
			},
		},
		Dog: DogConfig{
			Start: physics.Vector3D{Z: 1.5},
			DogStats: entity.DogStats{
				Speed:        5,
				Acceleration: 10,
				BounceForce:  8,
			},
		},
		Leash: leash.Spec{
			MaxLength:        3,
			PullStrength:     15,
			TensionThreshold: 0.7,
		},
		Camera: CameraConfig{
			Enabled: true,
			Stats: camera.Stats{
				MoveSpeed:     10,
				RotateSpeed:   2,
				VerticalSpeed: 5,
			},
		},
		Runtime: RuntimeConfig{
			TickRate:     60,
			MaxDeltaTime: 0.1,
			HealthPort:   8080,
			LogLevel:     "INFO",
		},
	}
}

// Validate checks the configuration and reports every problem found.
func (c *SimulationConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Arena.BoundarySize > 0, "arena.boundarySize must be positive, got %v", c.Arena.BoundarySize)
	check(c.Arena.FrontBoundary < c.Arena.BoundarySize,
		"arena.frontBoundary (%v) must be less than arena.boundarySize (%v)", c.Arena.FrontBoundary, c.Arena.BoundarySize)
	check(c.Owner.Speed >= 0, "owner.speed must not be negative, got %v", c.Owner.Speed)
	check(c.Owner.BounceForce >= 0, "owner.bounceForce must not be negative, got %v", c.Owner.BounceForce)
	check(c.Owner.Start.IsFinite() && c.Owner.PatrolDirection.IsFinite(), "owner vectors must be finite")
	check(c.Dog.Speed >= 0, "dog.speed must not be negative, got %v", c.Dog.Speed)
	check(c.Dog.Acceleration >= 0, "dog.acceleration must not be negative, got %v", c.Dog.Acceleration)
	check(c.Dog.BounceForce >= 0, "dog.bounceForce must not be negative, got %v", c.Dog.BounceForce)
	check(c.Dog.Start.IsFinite(), "dog.start must be finite")
	check(c.Runtime.TickRate > 0, "runtime.tickRate must be positive, got %d", c.Runtime.TickRate)
	check(c.Runtime.MaxDeltaTime >= 0, "runtime.maxDeltaTime must not be negative, got %v", c.Runtime.MaxDeltaTime)
	check(c.Runtime.HealthPort >= 0 && c.Runtime.HealthPort <= 65535,
		"runtime.healthPort out of range: %d", c.Runtime.HealthPort)

	if err := c.Leash.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}
