package entity

import (
	"fmt"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
	"github.com/opd-ai/go-dogwalk/pkg/validation"
)

// DogStats tunes the player-driven body.
type DogStats struct {
	Speed        float64 `json:"speed" yaml:"speed"`
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	BounceForce  float64 `json:"bounceForce" yaml:"bounceForce"`
}

// DogInput is the movement intent for one tick.
type DogInput struct {
	Move physics.Vector2D
	// CameraYaw is only used when HasCamera is set.
	CameraYaw float64
	HasCamera bool
}

// Dog is the input-driven body. Its velocity eases toward the commanded
// velocity at a bounded rate.
type Dog struct {
	Body
	Stats          DogStats
	Arena          physics.Arena
	TargetVelocity physics.Vector3D
}

// NewDog creates a dog at rest at position.
func NewDog(position physics.Vector3D, stats DogStats, arena physics.Arena) *Dog {
	return &Dog{
		Body:  newBody("dog", position, stats.Speed),
		Stats: stats,
		Arena: arena,
	}
}

// Direction resolves the ground-plane direction for an input. Without a
// camera, or with no input, the raw input is used as a world direction.
func (in DogInput) Direction() physics.Vector3D {
	if in.HasCamera && !in.Move.IsZero() {
		return physics.CameraRelative(in.Move, in.CameraYaw)
	}
	return physics.GroundDirection(in.Move)
}

// Update advances the dog by one tick. On error the dog's state is left as it was.
func (d *Dog) Update(in DogInput, dt float64) (physics.BoundaryResult, error) {
	if err := checkDeltaTime(d.Name, dt); err != nil {
		return physics.BoundaryResult{}, err
	}
	move, err := validation.SanitizeMoveInput(in.Move)
	if err != nil {
		return physics.BoundaryResult{}, fmt.Errorf("%s: %w", d.Name, err)
	}
	in.Move = move
	if in.HasCamera {
		if err := validation.ValidateYaw(in.CameraYaw); err != nil {
			return physics.BoundaryResult{}, fmt.Errorf("%s: %w", d.Name, err)
		}
	}

	target := in.Direction().Scale(d.Speed)
	velocity := physics.ApproachGround(d.Velocity, target, d.Stats.Acceleration*dt)

	result := d.confine(velocity, d.Arena, d.Stats.BounceForce, dt)
	velocity = result.ApplyVelocity(velocity)

	if err := d.commit(result.Position, velocity); err != nil {
		return physics.BoundaryResult{}, err
	}
	d.TargetVelocity = target
	return result, nil
}
