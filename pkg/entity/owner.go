package entity

import (
	"math"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// DefaultPatrolDirection is used whenever the patrol direction degenerates to zero.
var DefaultPatrolDirection = physics.Vector3D{X: 0, Y: 0, Z: -1}

// OwnerStats tunes the autonomous body.
type OwnerStats struct {
	Speed           float64          `json:"speed" yaml:"speed"`
	BounceForce     float64          `json:"bounceForce" yaml:"bounceForce"`
	PatrolDirection physics.Vector3D `json:"patrolDirection" yaml:"patrolDirection"`
}

// Owner walks a straight patrol line at constant speed and turns around at
// the arena edges.
type Owner struct {
	Body
	Stats           OwnerStats
	Arena           physics.Arena
	PatrolDirection physics.Vector3D
}

// NewOwner creates an owner at position heading along the configured patrol direction.
func NewOwner(position physics.Vector3D, stats OwnerStats, arena physics.Arena) *Owner {
	o := &Owner{
		Body:            newBody("owner", position, stats.Speed),
		Stats:           stats,
		Arena:           arena,
		PatrolDirection: stats.PatrolDirection,
	}
	o.ensurePatrolDirection()
	o.Velocity = o.patrolVelocity()
	return o
}

func (o *Owner) ensurePatrolDirection() {
	if o.PatrolDirection.IsZero() {
		o.PatrolDirection = DefaultPatrolDirection
	}
}

func (o *Owner) patrolVelocity() physics.Vector3D {
	return o.PatrolDirection.Normalize().Scale(o.Speed).Flatten()
}

// Update advances the owner by one tick. A bounce reverses the offending
// component of the patrol direction instead of injecting a bounce velocity.
func (o *Owner) Update(dt float64) (physics.BoundaryResult, error) {
	if err := checkDeltaTime(o.Name, dt); err != nil {
		return physics.BoundaryResult{}, err
	}
	o.ensurePatrolDirection()

	direction := o.PatrolDirection
	result := o.confine(o.patrolVelocity(), o.Arena, o.Stats.BounceForce, dt)
	direction.X = turnAround(direction.X, result.X.Crossing)
	direction.Z = turnAround(direction.Z, result.Z.Crossing)

	velocity := direction.Normalize().Scale(o.Speed).Flatten()
	if err := o.commit(result.Position, velocity); err != nil {
		return physics.BoundaryResult{}, err
	}
	o.PatrolDirection = direction
	return result, nil
}

// turnAround points a direction component back toward the interior.
func turnAround(component float64, crossing physics.Crossing) float64 {
	switch crossing {
	case physics.CrossedMax:
		return -math.Abs(component)
	case physics.CrossedMin:
		return math.Abs(component)
	default:
		return component
	}
}
