package physics

// Bounds is a closed interval on one axis.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval, edges included.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Crossing tells which edge of a Bounds a value was pushed back from.
type Crossing int

const (
	NoCrossing Crossing = iota
	CrossedMin
	CrossedMax
)

// AxisResult is the outcome of clamping a single coordinate.
type AxisResult struct {
	Value    float64
	Crossing Crossing
	// Bounce is the replacement velocity component, valid only when Crossing != NoCrossing.
	Bounce float64
}

// Bounced reports whether the coordinate was outside the interval.
func (r AxisResult) Bounced() bool {
	return r.Crossing != NoCrossing
}

// ClampAxis clamps value into b. Only values strictly beyond an edge are
// clamped; the returned bounce points back toward the interior with the given
// force.
func ClampAxis(value float64, b Bounds, bounceForce float64) AxisResult {
	switch {
	case value > b.Max:
		return AxisResult{Value: b.Max, Crossing: CrossedMax, Bounce: -bounceForce}
	case value < b.Min:
		return AxisResult{Value: b.Min, Crossing: CrossedMin, Bounce: bounceForce}
	default:
		return AxisResult{Value: value}
	}
}

// Arena is the rectangular ground area bodies are confined to. X spans
// [-BoundarySize, BoundarySize] and Z spans [FrontBoundary, BoundarySize].
type Arena struct {
	BoundarySize  float64 `json:"boundarySize" yaml:"boundarySize"`
	FrontBoundary float64 `json:"frontBoundary" yaml:"frontBoundary"`
}

// XBounds returns the symmetric left/right interval.
func (a Arena) XBounds() Bounds {
	return Bounds{Min: -a.BoundarySize, Max: a.BoundarySize}
}

// ZBounds returns the front/back interval.
func (a Arena) ZBounds() Bounds {
	return Bounds{Min: a.FrontBoundary, Max: a.BoundarySize}
}

// BoundaryResult holds the per-axis outcome of confining a position to an arena.
type BoundaryResult struct {
	Position Vector3D
	X        AxisResult
	Z        AxisResult
}

// Bounced reports whether either axis was clamped.
func (r BoundaryResult) Bounced() bool {
	return r.X.Bounced() || r.Z.Bounced()
}

// ApplyVelocity overwrites the velocity components of the axes that bounced.
func (r BoundaryResult) ApplyVelocity(velocity Vector3D) Vector3D {
	if r.X.Bounced() {
		velocity.X = r.X.Bounce
	}
	if r.Z.Bounced() {
		velocity.Z = r.Z.Bounce
	}
	return velocity
}

// Confine clamps pos into the arena on X and Z independently. The vertical
// component is passed through untouched.
func (a Arena) Confine(pos Vector3D, bounceForce float64) BoundaryResult {
	x := ClampAxis(pos.X, a.XBounds(), bounceForce)
	z := ClampAxis(pos.Z, a.ZBounds(), bounceForce)
	return BoundaryResult{
		Position: Vector3D{X: x.Value, Y: pos.Y, Z: z.Value},
		X:        x,
		Z:        z,
	}
}
