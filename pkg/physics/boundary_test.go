package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testBoundarySize  = 24.0
	testFrontBoundary = -24.0
	testBounceForce   = 8.0
)

func testArena() Arena {
	return Arena{BoundarySize: testBoundarySize, FrontBoundary: testFrontBoundary}
}

func TestClampAxis(t *testing.T) {
	b := Bounds{Min: -24, Max: 24}
	tests := []struct {
		name     string
		input    float64
		value    float64
		crossing Crossing
		bounce   float64
	}{
		{"over_max", 25, 24, CrossedMax, -testBounceForce},
		{"under_min", -25, -24, CrossedMin, testBounceForce},
		{"inside", 10, 10, NoCrossing, 0},
		{"exactly_max", 24, 24, NoCrossing, 0},
		{"exactly_min", -24, -24, NoCrossing, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampAxis(tt.input, b, testBounceForce)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.crossing, got.Crossing)
			assert.Equal(t, tt.bounce, got.Bounce)
		})
	}
}

func TestArena_ConfineInsideIsUnchanged(t *testing.T) {
	a := testArena()
	positions := []Vector3D{
		{X: 0, Z: 0},
		{X: 24, Z: 24},
		{X: -24, Z: -24},
		{X: 12.5, Z: -3},
	}
	for _, p := range positions {
		r := a.Confine(p, testBounceForce)
		assert.Equal(t, p, r.Position)
		assert.False(t, r.Bounced())
	}
}

func TestArena_ConfineBeyondEdges(t *testing.T) {
	a := testArena()

	right := a.Confine(Vector3D{X: 30, Z: 0}, testBounceForce)
	assert.Equal(t, testBoundarySize, right.Position.X)
	assert.Equal(t, -testBounceForce, right.X.Bounce)
	assert.False(t, right.Z.Bounced())

	left := a.Confine(Vector3D{X: -30, Z: 0}, testBounceForce)
	assert.Equal(t, -testBoundarySize, left.Position.X)
	assert.Equal(t, testBounceForce, left.X.Bounce)

	back := a.Confine(Vector3D{Z: 25}, testBounceForce)
	assert.Equal(t, testBoundarySize, back.Position.Z)
	assert.Equal(t, -testBounceForce, back.Z.Bounce)

	front := a.Confine(Vector3D{Z: -25}, testBounceForce)
	assert.Equal(t, testFrontBoundary, front.Position.Z)
	assert.Equal(t, testBounceForce, front.Z.Bounce)
}

func TestArena_AsymmetricFront(t *testing.T) {
	a := Arena{BoundarySize: 10, FrontBoundary: -4}
	r := a.Confine(Vector3D{X: -9, Z: -5}, 2)
	assert.Equal(t, Vector3D{X: -9, Z: -4}, r.Position)
	assert.False(t, r.X.Bounced())
	assert.Equal(t, CrossedMin, r.Z.Crossing)
}

func TestArena_ConfineIsIdempotent(t *testing.T) {
	a := testArena()
	in := Vector3D{X: 40, Z: -40}

	first := a.Confine(in, testBounceForce)
	second := a.Confine(in, testBounceForce)
	assert.Equal(t, first, second)

	again := a.Confine(first.Position, testBounceForce)
	assert.Equal(t, first.Position, again.Position)
	assert.False(t, again.Bounced())
}

func TestBoundaryResult_ApplyVelocity(t *testing.T) {
	r := testArena().Confine(Vector3D{X: 25, Z: 3}, testBounceForce)
	v := r.ApplyVelocity(Vector3D{X: 5, Z: 1})
	assert.Equal(t, Vector3D{X: -testBounceForce, Z: 1}, v)
}
