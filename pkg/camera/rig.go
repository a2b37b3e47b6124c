// Package camera provides the observing camera rig. The simulation only needs
// its yaw; the rest lets a driver fly the camera around the arena.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// Rig defaults
var (
	HomePosition = physics.Vector3D{X: 0, Y: 12, Z: 18}
	HomePitch    = mgl64.DegToRad(-35)
	MaxPitch     = mgl64.DegToRad(80)
)

// LookDeadZone is the stick magnitude below which pitch input is ignored.
const LookDeadZone = 0.1

// Stats tunes the rig.
type Stats struct {
	MoveSpeed     float64 `json:"moveSpeed" yaml:"moveSpeed"`
	RotateSpeed   float64 `json:"rotateSpeed" yaml:"rotateSpeed"`
	VerticalSpeed float64 `json:"verticalSpeed" yaml:"verticalSpeed"`
}

// Rig is a free-flying camera with yaw and pitch.
type Rig struct {
	Stats    Stats
	Position physics.Vector3D
	Pitch    float64
	yaw      float64
}

// NewRig creates a rig at its home pose.
func NewRig(stats Stats) *Rig {
	r := &Rig{Stats: stats}
	r.GoHome()
	return r
}

// GoHome restores the home position and rotation.
func (r *Rig) GoHome() {
	r.Position = HomePosition
	r.Pitch = HomePitch
	r.yaw = 0
}

// Yaw returns the rotation around the vertical axis in radians.
func (r *Rig) Yaw() float64 {
	return r.yaw
}

// Forward is the horizontal direction the camera looks along.
func (r *Rig) Forward() physics.Vector3D {
	sin, cos := math.Sincos(r.yaw)
	return physics.Vector3D{X: -sin, Z: -cos}
}

// Right is the horizontal direction to the camera's right.
func (r *Rig) Right() physics.Vector3D {
	sin, cos := math.Sincos(r.yaw)
	return physics.Vector3D{X: cos, Z: -sin}
}

// Move translates the rig along dir at MoveSpeed. A zero direction is ignored.
func (r *Rig) Move(dir physics.Vector3D, dt float64) {
	if dir.IsZero() {
		return
	}
	r.Position = r.Position.Add(dir.Normalize().Scale(r.Stats.MoveSpeed * dt))
}

// MoveLocal moves relative to the camera's own heading. forward and right are
// in [-1,1]; vertical climbs or sinks at VerticalSpeed.
func (r *Rig) MoveLocal(forward, right, vertical, dt float64) {
	r.Move(r.Forward().Scale(forward).Add(r.Right().Scale(right)), dt)
	if vertical != 0 {
		r.Position.Y += vertical * r.Stats.VerticalSpeed * dt
	}
}

// Rotate turns the rig around the vertical axis; positive input turns left.
func (r *Rig) Rotate(input, dt float64) {
	if input == 0 {
		return
	}
	r.yaw += input * r.Stats.RotateSpeed * dt
}

// Look tilts the rig. Inputs inside the dead zone are ignored and the
// pitch is limited to ±80°.
func (r *Rig) Look(vertical, dt float64) {
	if math.Abs(vertical) <= LookDeadZone {
		return
	}
	r.Pitch = mgl64.Clamp(r.Pitch+vertical*r.Stats.RotateSpeed*dt, -MaxPitch, MaxPitch)
}
