package engine

import "github.com/opd-ai/go-dogwalk/pkg/physics"

// InputSource supplies the dog's movement intent for a tick. tick is the
// number of ticks completed so far.
type InputSource interface {
	Move(tick uint64) physics.Vector2D
}

// Segment holds one input vector for a number of ticks.
type Segment struct {
	Move  physics.Vector2D
	Ticks uint64
}

// ScriptedInput replays segments in order and then holds zero input, or
// starts over when Loop is set.
type ScriptedInput struct {
	Segments []Segment
	Loop     bool
}

// NewScriptedInput creates a script from segments.
func NewScriptedInput(segments ...Segment) *ScriptedInput {
	return &ScriptedInput{Segments: segments}
}

// Move returns the segment input covering tick.
func (s *ScriptedInput) Move(tick uint64) physics.Vector2D {
	if n := s.Length(); s.Loop && n > 0 {
		tick %= n
	}
	for _, seg := range s.Segments {
		if tick < seg.Ticks {
			return seg.Move
		}
		tick -= seg.Ticks
	}
	return physics.Vector2D{}
}

// Length returns the number of scripted ticks.
func (s *ScriptedInput) Length() uint64 {
	var n uint64
	for _, seg := range s.Segments {
		n += seg.Ticks
	}
	return n
}
