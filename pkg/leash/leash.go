// Package leash implements the elastic link between the owner and the dog:
// tension measurement, overstretch correction and slack/tense edge detection.
package leash

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogwalk/pkg/event"
	"github.com/opd-ai/go-dogwalk/pkg/logging"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
	"github.com/opd-ai/go-dogwalk/pkg/validation"
)

// ErrInvalidSpec is returned by Spec.Validate.
var ErrInvalidSpec = errors.New("invalid leash spec")

// Spec holds the leash tuning.
type Spec struct {
	MaxLength        float64 `json:"maxLength" yaml:"maxLength"`
	PullStrength     float64 `json:"pullStrength" yaml:"pullStrength"`
	TensionThreshold float64 `json:"tensionThreshold" yaml:"tensionThreshold"`
}

// Validate checks MaxLength > 0, PullStrength >= 0 and 0 < TensionThreshold < 1.
func (s Spec) Validate() error {
	switch {
	case !(s.MaxLength > 0):
		return fmt.Errorf("%w: maxLength must be positive, got %v", ErrInvalidSpec, s.MaxLength)
	case !(s.PullStrength >= 0):
		return fmt.Errorf("%w: pullStrength must not be negative, got %v", ErrInvalidSpec, s.PullStrength)
	case !(s.TensionThreshold > 0 && s.TensionThreshold < 1):
		return fmt.Errorf("%w: tensionThreshold must be in (0,1), got %v", ErrInvalidSpec, s.TensionThreshold)
	}
	return nil
}

// TensionState is recomputed from scratch every tick.
type TensionState struct {
	Distance      float64
	TensionAmount float64
	Overstretch   float64
	IsTense       bool
}

// TensionAmount is distance/maxLength clamped into [0,1].
func TensionAmount(distance, maxLength float64) float64 {
	return mgl64.Clamp(distance/maxLength, 0, 1)
}

// Overstretch is how far distance exceeds maxLength, or zero.
func Overstretch(distance, maxLength float64) float64 {
	if distance <= maxLength {
		return 0
	}
	return distance - maxLength
}

// Measure derives the tension state for two endpoint positions.
func (s Spec) Measure(owner, dog physics.Vector3D) TensionState {
	distance := owner.Distance(dog)
	amount := TensionAmount(distance, s.MaxLength)
	return TensionState{
		Distance:      distance,
		TensionAmount: amount,
		Overstretch:   Overstretch(distance, s.MaxLength),
		IsTense:       amount > s.TensionThreshold,
	}
}

// Anchor is a leash endpoint the constraint only reads.
type Anchor interface {
	GetPosition() physics.Vector3D
}

// Pullable is a leash endpoint the constraint may pull on.
type Pullable interface {
	Anchor
	GetVelocity() physics.Vector3D
	SetVelocity(physics.Vector3D)
}

// Result reports what one update did.
type Result struct {
	State   TensionState
	Impulse physics.Vector3D
	// Changed is set on the tick the slack/tense state flipped.
	Changed bool
}

// Constraint ties a Pullable dog to an Anchor owner.
type Constraint struct {
	spec      Spec
	owner     Anchor
	dog       Pullable
	publisher event.Publisher
	logger    *logging.Logger

	state    TensionState
	wasTense bool
}

// Option configures a Constraint.
type Option func(*Constraint)

// WithPublisher sets where tension-change events are sent.
func WithPublisher(p event.Publisher) Option {
	return func(c *Constraint) { c.publisher = p }
}

// WithLogger sets the constraint's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Constraint) { c.logger = l }
}

// NewConstraint links owner and dog. A missing endpoint leaves the constraint
// detached: it is logged here and every Update is a no-op.
func NewConstraint(spec Spec, owner Anchor, dog Pullable, opts ...Option) *Constraint {
	c := &Constraint{spec: spec, owner: owner, dog: dog}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if isNil(c.owner) {
		c.owner = nil
		c.logger.Error(context.Background(), "leash owner endpoint missing", nil)
	}
	if isNil(c.dog) {
		c.dog = nil
		c.logger.Error(context.Background(), "leash dog endpoint missing", nil)
	}
	return c
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// Spec returns the leash tuning.
func (c *Constraint) Spec() Spec {
	return c.spec
}

// Attached reports whether both endpoints are present.
func (c *Constraint) Attached() bool {
	return c.owner != nil && c.dog != nil
}

// State returns the tension computed by the most recent update.
func (c *Constraint) State() TensionState {
	return c.state
}

// IsTense reports the current slack/tense state.
func (c *Constraint) IsTense() bool {
	return c.wasTense
}

// Update measures the leash and, when it is overstretched, adds a pull toward
// the owner to the dog's velocity. It must run after both bodies moved for the
// tick. A tension-change event is published only when the state flips.
func (c *Constraint) Update(dt float64, tick uint64) (Result, error) {
	if !c.Attached() {
		return Result{}, nil
	}
	if err := validation.ValidateDeltaTime(dt); err != nil {
		return Result{}, fmt.Errorf("leash: %w", err)
	}

	ownerPos := c.owner.GetPosition()
	dogPos := c.dog.GetPosition()
	if !ownerPos.IsFinite() || !dogPos.IsFinite() {
		return Result{}, fmt.Errorf("leash: endpoint position is not finite: owner=%v dog=%v", ownerPos, dogPos)
	}

	state := c.spec.Measure(ownerPos, dogPos)
	result := Result{State: state}

	if state.Overstretch > 0 {
		pull := ownerPos.Sub(dogPos).Normalize()
		result.Impulse = pull.Scale(c.spec.PullStrength * state.Overstretch * dt)
		c.dog.SetVelocity(c.dog.GetVelocity().Add(result.Impulse))
	}

	c.state = state
	if state.IsTense != c.wasTense {
		c.wasTense = state.IsTense
		result.Changed = true
		if c.publisher != nil {
			c.publisher.Publish(event.NewTensionEvent(c, state.IsTense, state.TensionAmount, tick))
		}
	}
	return result, nil
}
