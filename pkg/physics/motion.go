package physics

import "math"

// MoveToward moves current toward target by at most maxDelta without overshooting.
func MoveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// ApproachGround smooths velocity toward target on X and Z independently and
// forces the vertical component to zero.
func ApproachGround(velocity, target Vector3D, maxDelta float64) Vector3D {
	return Vector3D{
		X: MoveToward(velocity.X, target.X, maxDelta),
		Z: MoveToward(velocity.Z, target.Z, maxDelta),
	}
}
