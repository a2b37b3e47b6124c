package physics

// CameraRelative turns a movement intent into a ground-plane direction as seen
// from a camera rotated yaw radians around the vertical axis. Input X maps to
// world X and input Y ("forward") maps to world Z before rotation, so a yaw of
// zero is the identity.
func CameraRelative(input Vector2D, yaw float64) Vector3D {
	if input.IsZero() {
		return Vector3D{}
	}
	r := input.Rotate(yaw)
	return Vector3D{X: r.X, Z: r.Y}
}

// GroundDirection maps a movement intent straight onto the ground plane.
func GroundDirection(input Vector2D) Vector3D {
	return Vector3D{X: input.X, Z: input.Y}
}
