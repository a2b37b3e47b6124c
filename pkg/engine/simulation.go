// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogwalk/pkg/config"
	"github.com/opd-ai/go-dogwalk/pkg/entity"
	"github.com/opd-ai/go-dogwalk/pkg/event"
	"github.com/opd-ai/go-dogwalk/pkg/leash"
	"github.com/opd-ai/go-dogwalk/pkg/logging"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
	"github.com/opd-ai/go-dogwalk/pkg/validation"
)

// Step names, in execution order
const (
	StepOwner = "owner"
	StepDog   = "dog"
	StepLeash = "leash"
)

// ErrStepPanicked marks a step that panicked and was recovered.
var ErrStepPanicked = errors.New("step panicked")

// StepError records one failed step of a tick.
type StepError struct {
	Step string
	Tick uint64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed at tick %d: %v", e.Step, e.Tick, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// YawSource supplies the observing camera's horizontal angle in radians.
type YawSource interface {
	Yaw() float64
}

// TickInput is what the driver supplies for one tick.
type TickInput struct {
	Move      physics.Vector2D
	DeltaTime float64
}

// Simulation owns the two bodies and the leash between them and advances
// them in a fixed order: owner, dog, leash.
//
// Event handlers run synchronously inside Step and must not call back into
// the Simulation.
type Simulation struct {
	Config *config.SimulationConfig

	mu       sync.RWMutex
	owner    *entity.Owner
	dog      *entity.Dog
	leash    *leash.Constraint
	bus      *event.Bus
	yaw      YawSource
	world    *ecs.World
	frame    *frame
	tick     uint64
	running  bool
	lastStep time.Time
	maxTicks uint64
	observer TickObserver

	runID  string
	ctx    context.Context
	logger *logging.Logger
}

// TickObserver is called by Run after every tick, outside the simulation lock.
type TickObserver func(tick uint64, dt float64, state leash.TensionState)

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the simulation's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithYawSource makes dog input camera-relative. Without one, input is
// interpreted in world space.
func WithYawSource(y YawSource) Option {
	return func(s *Simulation) { s.yaw = y }
}

// WithBus publishes simulation events on an existing bus.
func WithBus(b *event.Bus) Option {
	return func(s *Simulation) { s.bus = b }
}

// WithTickLimit stops Run after n ticks. Zero means no limit.
func WithTickLimit(n uint64) Option {
	return func(s *Simulation) { s.maxTicks = n }
}

// WithTickObserver registers a callback Run invokes after every tick.
func WithTickObserver(fn TickObserver) Option {
	return func(s *Simulation) { s.observer = fn }
}

// NewSimulation validates cfg and wires the owner, dog and leash.
func NewSimulation(cfg *config.SimulationConfig, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		Config: cfg,
		runID:  logging.GenerateCorrelationID(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLogger()
	}
	if s.bus == nil {
		s.bus = event.NewEventBus()
	}
	s.ctx = logging.WithCorrelationID(context.Background(), s.runID)
	base := s.logger.With("run_id", s.runID)
	s.logger = base.Component("engine")

	s.owner = entity.NewOwner(cfg.Owner.Start, cfg.Owner.OwnerStats, cfg.Arena)
	s.dog = entity.NewDog(cfg.Dog.Start, cfg.Dog.DogStats, cfg.Arena)
	s.leash = leash.NewConstraint(cfg.Leash, s.owner, s.dog,
		leash.WithPublisher(s.bus),
		leash.WithLogger(base.Component("leash")),
	)

	s.frame = &frame{}
	s.world = &ecs.World{}
	s.world.AddSystem(newStepSystem(StepOwner, ownerPriority, s.owner.ID(), s.frame, base, s.stepOwner))
	s.world.AddSystem(newStepSystem(StepDog, dogPriority, s.dog.ID(), s.frame, base, s.stepDog))
	s.world.AddSystem(newStepSystem(StepLeash, leashPriority, 0, s.frame, base, s.stepLeash))

	s.logger.Info(s.ctx, "simulation created",
		"owner_start", cfg.Owner.Start,
		"dog_start", cfg.Dog.Start,
		"leash_max_length", cfg.Leash.MaxLength,
		"camera_relative", s.yaw != nil,
	)
	return s, nil
}

// Step runs one tick. Every step runs even if an earlier one failed; the
// failures are returned joined. An invalid delta time fails the whole tick
// and the tick counter does not advance.
func (s *Simulation) Step(in TickInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tick + 1
	if err := validation.ValidateDeltaTime(in.DeltaTime); err != nil {
		return &StepError{Step: "tick", Tick: next, Err: err}
	}
	dt := validation.CapDeltaTime(in.DeltaTime, s.Config.Runtime.MaxDeltaTime)

	s.frame.reset(s.ctx, next, dt, in.Move)
	s.world.Update(float32(dt))

	s.tick = next
	s.lastStep = time.Now()

	for _, err := range s.frame.errs {
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.bus.Publish(event.NewStepFailedEvent(s, stepErr.Step, stepErr.Tick, stepErr.Err))
		}
	}
	return errors.Join(s.frame.errs...)
}

// dogInput reads the camera yaw, if any. It runs inside the dog step so a
// faulty yaw source only fails that step.
func (s *Simulation) dogInput(move physics.Vector2D) entity.DogInput {
	in := entity.DogInput{Move: move}
	if s.yaw != nil {
		in.CameraYaw = s.yaw.Yaw()
		in.HasCamera = true
	}
	return in
}

func (s *Simulation) stepOwner(f *frame) error {
	result, err := s.owner.Update(f.dt)
	if err != nil {
		return err
	}
	s.publishBounce(&s.owner.Body, result)
	return nil
}

func (s *Simulation) stepDog(f *frame) error {
	result, err := s.dog.Update(s.dogInput(f.move), f.dt)
	if err != nil {
		return err
	}
	s.publishBounce(&s.dog.Body, result)
	return nil
}

func (s *Simulation) stepLeash(f *frame) error {
	result, err := s.leash.Update(f.dt, f.tick)
	if err != nil {
		return err
	}
	if result.Changed {
		s.logger.Info(f.ctx, "leash tension changed",
			"tick", f.tick,
			"is_tense", result.State.IsTense,
			"tension", result.State.TensionAmount,
			"distance", result.State.Distance,
		)
	}
	return nil
}

func (s *Simulation) publishBounce(body *entity.Body, result physics.BoundaryResult) {
	if !result.Bounced() {
		return
	}
	s.bus.Publish(event.NewBounceEvent(s, body.Name, body.ID(), result.X.Bounced(), result.Z.Bounced()))
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// LastStep returns when the most recent tick completed.
func (s *Simulation) LastStep() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStep
}

// Running reports whether Run is driving the simulation.
func (s *Simulation) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Owner returns the owner body.
func (s *Simulation) Owner() *entity.Owner {
	return s.owner
}

// Dog returns the dog body.
func (s *Simulation) Dog() *entity.Dog {
	return s.dog
}

// Leash returns the leash constraint.
func (s *Simulation) Leash() *leash.Constraint {
	return s.leash
}

// Tension returns the leash state computed by the most recent tick.
func (s *Simulation) Tension() leash.TensionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leash.State()
}

// Events returns the bus simulation events are published on.
func (s *Simulation) Events() *event.Bus {
	return s.bus
}

// RunID identifies this simulation in logs.
func (s *Simulation) RunID() string {
	return s.runID
}

// Context returns a context carrying the run ID as correlation ID.
func (s *Simulation) Context() context.Context {
	return s.ctx
}
