// Package validation sanitizes the per-tick values the simulation receives
// from outside collaborators: movement intent and frame delta time.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// Input limits
const (
	MaxInputAxis = 1.0
	MinInputAxis = -1.0

	// DefaultMaxDeltaTime caps frame gaps so a stalled driver does not launch bodies across the arena.
	DefaultMaxDeltaTime = 0.1
)

var (
	// ErrNonFiniteInput is returned for NaN or infinite movement intent.
	ErrNonFiniteInput = errors.New("movement input is not finite")
	// ErrInvalidDeltaTime is returned for a delta time that is not a positive finite number.
	ErrInvalidDeltaTime = errors.New("invalid delta time")
)

// SanitizeMoveInput rejects non-finite input and clamps each axis into [-1, 1].
func SanitizeMoveInput(v physics.Vector2D) (physics.Vector2D, error) {
	if !finite(v.X) || !finite(v.Y) {
		return physics.Vector2D{}, fmt.Errorf("%w: (%v, %v)", ErrNonFiniteInput, v.X, v.Y)
	}
	return physics.Vector2D{
		X: clampAxis(v.X),
		Y: clampAxis(v.Y),
	}, nil
}

// ValidateDeltaTime checks that dt is a positive finite number of seconds.
func ValidateDeltaTime(dt float64) error {
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDeltaTime, dt)
	}
	return nil
}

// CapDeltaTime limits dt to max. A non-positive max disables the cap.
func CapDeltaTime(dt, max float64) float64 {
	if max > 0 && dt > max {
		return max
	}
	return dt
}

// ValidateYaw checks a camera yaw angle.
func ValidateYaw(yaw float64) error {
	if !finite(yaw) {
		return fmt.Errorf("camera yaw is not finite: %v", yaw)
	}
	return nil
}

func clampAxis(f float64) float64 {
	return math.Max(MinInputAxis, math.Min(MaxInputAxis, f))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
