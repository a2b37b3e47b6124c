package engine

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogwalk/pkg/logging"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// ecs.World runs higher priorities first.
const (
	ownerPriority = 30
	dogPriority   = 20
	leashPriority = 10
)

// frame carries one tick's inputs to the systems and collects their errors.
type frame struct {
	ctx  context.Context
	tick uint64
	dt   float64
	move physics.Vector2D
	errs []error
}

func (f *frame) reset(ctx context.Context, tick uint64, dt float64, move physics.Vector2D) {
	f.ctx = ctx
	f.tick = tick
	f.dt = dt
	f.move = move
	f.errs = f.errs[:0]
}

func (f *frame) fail(err error) {
	f.errs = append(f.errs, err)
}

// stepSystem adapts one tick step to ecs.System. A failing or panicking step
// is recorded on the frame and does not stop the steps after it.
type stepSystem struct {
	name     string
	priority int
	entityID uint64
	removed  bool
	frame    *frame
	logger   *logging.Logger
	run      func(*frame) error
}

func newStepSystem(name string, priority int, entityID uint64, f *frame, logger *logging.Logger, run func(*frame) error) *stepSystem {
	return &stepSystem{
		name:     name,
		priority: priority,
		entityID: entityID,
		frame:    f,
		logger:   logger,
		run:      run,
	}
}

// Priority satisfies ecs.Prioritizer
func (s *stepSystem) Priority() int {
	return s.priority
}

// Update satisfies the ecs.System interface. The float32 delta is ignored in
// favour of the frame's float64 one.
func (s *stepSystem) Update(float32) {
	if s.removed {
		return
	}
	f := s.frame
	defer func() {
		if r := recover(); r != nil {
			s.logger.Recovered(f.ctx, s.name, r, "tick", f.tick)
			f.fail(&StepError{Step: s.name, Tick: f.tick, Err: fmt.Errorf("%w: %v", ErrStepPanicked, r)})
		}
	}()

	if err := s.run(f); err != nil {
		s.logger.Error(f.ctx, "tick step failed", err, "component", s.name, "tick", f.tick)
		f.fail(&StepError{Step: s.name, Tick: f.tick, Err: err})
	}
}

// Remove satisfies the ecs.System interface. Removing the entity a step
// drives disables the step.
func (s *stepSystem) Remove(basic ecs.BasicEntity) {
	if s.entityID != 0 && basic.ID() == s.entityID {
		s.removed = true
	}
}
