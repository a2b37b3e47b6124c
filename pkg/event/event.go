// pkg/event/event.go
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted   Type = "simulation_started"
	SimulationStopped   Type = "simulation_stopped"
	LeashTensionChanged Type = "leash_tension_changed"
	BodyBounced         Type = "body_bounced"
	StepFailed          Type = "step_failed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Publisher is the write side of a Bus.
type Publisher interface {
	Publish(event Event)
}

// Subscription identifies one registered handler.
type Subscription struct {
	ID        string
	EventType Type
	handler   Handler
	bus       *Bus
}

// Cancel removes the subscription from its bus.
func (s *Subscription) Cancel() bool {
	if s.bus == nil {
		return false
	}
	return s.bus.Unsubscribe(s)
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]*Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]*Subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{
		ID:        uuid.NewString(),
		EventType: eventType,
		handler:   handler,
		bus:       b,
	}
	b.handlers[eventType] = append(b.handlers[eventType], sub)
	return sub
}

// Unsubscribe removes a previously registered handler. It reports whether the
// subscription was found.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[sub.EventType]
	for i, s := range subs {
		if s.ID == sub.ID {
			b.handlers[sub.EventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// SubscriberCount returns the number of handlers registered for eventType.
func (b *Bus) SubscriberCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]*Subscription(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

// TensionEvent is raised when the leash flips between slack and tense.
type TensionEvent struct {
	BaseEvent
	IsTense       bool
	TensionAmount float64
	Tick          uint64
}

// NewTensionEvent creates a new tension change event
func NewTensionEvent(source interface{}, isTense bool, tensionAmount float64, tick uint64) *TensionEvent {
	return &TensionEvent{
		BaseEvent: BaseEvent{
			EventType: LeashTensionChanged,
			Source:    source,
		},
		IsTense:       isTense,
		TensionAmount: tensionAmount,
		Tick:          tick,
	}
}

// BounceEvent is raised when a body is pushed back from an arena edge.
type BounceEvent struct {
	BaseEvent
	Body     string
	EntityID uint64
	AxisX    bool
	AxisZ    bool
}

// NewBounceEvent creates a new bounce event
func NewBounceEvent(source interface{}, body string, entityID uint64, axisX, axisZ bool) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{
			EventType: BodyBounced,
			Source:    source,
		},
		Body:     body,
		EntityID: entityID,
		AxisX:    axisX,
		AxisZ:    axisZ,
	}
}

// StepFailedEvent is raised when one step of a tick fails and is skipped.
type StepFailedEvent struct {
	BaseEvent
	Step string
	Tick uint64
	Err  error
}

// NewStepFailedEvent creates a new step failure event
func NewStepFailedEvent(source interface{}, step string, tick uint64, err error) *StepFailedEvent {
	return &StepFailedEvent{
		BaseEvent: BaseEvent{
			EventType: StepFailed,
			Source:    source,
		},
		Step: step,
		Tick: tick,
		Err:  err,
	}
}
