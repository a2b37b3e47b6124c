package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables understood by ApplyEnvironmentOverrides
const (
	EnvTickRate        = "DOGWALK_TICK_RATE"
	EnvHealthPort      = "DOGWALK_HEALTH_PORT"
	EnvLogLevel        = "DOGWALK_LOG_LEVEL"
	EnvBoundarySize    = "DOGWALK_BOUNDARY_SIZE"
	EnvFrontBoundary   = "DOGWALK_FRONT_BOUNDARY"
	EnvLeashMaxLength  = "DOGWALK_LEASH_MAX_LENGTH"
	EnvLeashPull       = "DOGWALK_LEASH_PULL_STRENGTH"
	EnvLeashThreshold  = "DOGWALK_LEASH_TENSION_THRESHOLD"
	EnvOwnerSpeed      = "DOGWALK_OWNER_SPEED"
	EnvDogSpeed        = "DOGWALK_DOG_SPEED"
	EnvDogAcceleration = "DOGWALK_DOG_ACCELERATION"
	EnvCameraEnabled   = "DOGWALK_CAMERA_ENABLED"
)

// ApplyEnvironmentOverrides overrides configuration values from DOGWALK_*
// environment variables. Unset variables leave the value untouched; malformed
// values are reported as errors.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	floats := []struct {
		key    string
		target *float64
	}{
		{EnvBoundarySize, &config.Arena.BoundarySize},
		{EnvFrontBoundary, &config.Arena.FrontBoundary},
		{EnvLeashMaxLength, &config.Leash.MaxLength},
		{EnvLeashPull, &config.Leash.PullStrength},
		{EnvLeashThreshold, &config.Leash.TensionThreshold},
		{EnvOwnerSpeed, &config.Owner.Speed},
		{EnvDogSpeed, &config.Dog.Speed},
		{EnvDogAcceleration, &config.Dog.Acceleration},
	}
	for _, f := range floats {
		if err := overrideFloat(f.key, f.target); err != nil {
			return err
		}
	}

	if err := overrideInt(EnvTickRate, &config.Runtime.TickRate); err != nil {
		return err
	}
	if err := overrideInt(EnvHealthPort, &config.Runtime.HealthPort); err != nil {
		return err
	}
	if err := overrideBool(EnvCameraEnabled, &config.Camera.Enabled); err != nil {
		return err
	}
	if v, ok := lookup(EnvLogLevel); ok {
		config.Runtime.LogLevel = strings.ToUpper(v)
	}

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func overrideFloat(key string, target *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = f
	return nil
}

func overrideInt(key string, target *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = i
	return nil
}

func overrideBool(key string, target *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = b
	return nil
}
