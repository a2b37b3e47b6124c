package leash

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// Attachment offsets for drawing the leash line.
var (
	OwnerAttachOffset = physics.Vector3D{Y: -0.5}
	DogAttachOffset   = physics.Vector3D{Y: 0.2}
)

// Attachments returns the two endpoints of the leash line.
func Attachments(owner, dog physics.Vector3D) (physics.Vector3D, physics.Vector3D) {
	return owner.Add(OwnerAttachOffset), dog.Add(DogAttachOffset)
}

// SlackColor is the leash color while slack.
var SlackColor = rgb(0.4, 0.2, 0.1)

// Tint returns the leash color for a tension state. A tense leash reddens as
// the tension climbs from the threshold toward 1.
func Tint(state TensionState, threshold float64) color.NRGBA {
	if !state.IsTense || threshold >= 1 {
		return SlackColor
	}
	t := mgl64.Clamp((state.TensionAmount-threshold)/(1-threshold), 0, 1)
	return rgb(0.4+(1.0-0.4)*t, 0.2, 0.1)
}

func rgb(r, g, b float64) color.NRGBA {
	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xff}
}

func channel(f float64) uint8 {
	return uint8(math.Round(mgl64.Clamp(f, 0, 1) * 255))
}
