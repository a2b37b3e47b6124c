// pkg/entity/entity.go
package entity

import (
	"errors"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
	"github.com/opd-ai/go-dogwalk/pkg/validation"
)

// ErrNonFiniteState is returned when an update would leave a body with a NaN
// or infinite position or velocity. The body keeps its previous state.
var ErrNonFiniteState = errors.New("body state is not finite")

// Body is the shared state of a moving body on the ground plane.
type Body struct {
	ecs.BasicEntity
	Name     string
	Position physics.Vector3D
	Velocity physics.Vector3D
	Speed    float64
}

func newBody(name string, position physics.Vector3D, speed float64) Body {
	return Body{
		BasicEntity: ecs.NewBasic(),
		Name:        name,
		Position:    position.Flatten(),
		Speed:       speed,
	}
}

// GetName returns the body's name
func (b *Body) GetName() string {
	return b.Name
}

// GetPosition returns the body's position
func (b *Body) GetPosition() physics.Vector3D {
	return b.Position
}

// GetVelocity returns the body's velocity
func (b *Body) GetVelocity() physics.Vector3D {
	return b.Velocity
}

// SetVelocity replaces the body's velocity. The vertical component is dropped.
func (b *Body) SetVelocity(v physics.Vector3D) {
	b.Velocity = v.Flatten()
}

// confine advances position by velocity*dt and clamps the result into the
// arena. Nothing is committed; callers decide what to do with bounces.
func (b *Body) confine(velocity physics.Vector3D, arena physics.Arena, bounceForce, dt float64) physics.BoundaryResult {
	tentative := b.Position.Add(velocity.Scale(dt)).Flatten()
	return arena.Confine(tentative, bounceForce)
}

// commit stores the new state unless it is degenerate.
func (b *Body) commit(position, velocity physics.Vector3D) error {
	if !position.IsFinite() || !velocity.IsFinite() {
		return fmt.Errorf("%s: %w: position=%v velocity=%v", b.Name, ErrNonFiniteState, position, velocity)
	}
	b.Position = position.Flatten()
	b.Velocity = velocity.Flatten()
	return nil
}

func checkDeltaTime(name string, dt float64) error {
	if err := validation.ValidateDeltaTime(dt); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
