// pkg/event/event_test.go
package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()
	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
	assert.Zero(t, bus.SubscriberCount(LeashTensionChanged))
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"tension event", LeashTensionChanged, "leash"},
		{"started event", SimulationStarted, 42},
		{"empty source", SimulationStopped, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			assert.Equal(t, tt.eventType, e.GetType())
			assert.Equal(t, tt.source, e.GetSource())
		})
	}
}

func TestBusSubscribe_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(LeashTensionChanged, func(Event) {})
	sub2 := bus.Subscribe(LeashTensionChanged, func(Event) {})
	bus.Subscribe(BodyBounced, func(Event) {})

	assert.NotEmpty(t, sub1.ID)
	assert.NotEqual(t, sub1.ID, sub2.ID)
	assert.Equal(t, 2, bus.SubscriberCount(LeashTensionChanged))
	assert.Equal(t, 1, bus.SubscriberCount(BodyBounced))
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(LeashTensionChanged, func(Event) { order = append(order, 1) })
	bus.Subscribe(LeashTensionChanged, func(Event) { order = append(order, 2) })
	bus.Subscribe(SimulationStarted, func(Event) { order = append(order, 3) })

	bus.Publish(NewTensionEvent("test", true, 0.9, 7))

	assert.Equal(t, []int{1, 2}, order)
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(&BaseEvent{EventType: SimulationStopped})
	})
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	sub := bus.Subscribe(LeashTensionChanged, func(Event) { calls++ })
	other := bus.Subscribe(LeashTensionChanged, func(Event) { calls += 10 })

	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub), "second unsubscribe should report not found")
	assert.False(t, bus.Unsubscribe(nil))

	bus.Publish(NewTensionEvent(nil, false, 0.1, 1))
	assert.Equal(t, 10, calls)

	assert.True(t, other.Cancel())
	bus.Publish(NewTensionEvent(nil, false, 0.1, 2))
	assert.Equal(t, 10, calls)
}

func TestBusPublish_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	var sub *Subscription
	sub = bus.Subscribe(LeashTensionChanged, func(Event) {
		calls++
		sub.Cancel()
	})

	bus.Publish(NewTensionEvent(nil, true, 1, 1))
	bus.Publish(NewTensionEvent(nil, false, 0, 2))
	assert.Equal(t, 1, calls)
}

func TestNewTensionEvent(t *testing.T) {
	e := NewTensionEvent("leash", true, 0.85, 12)

	assert.Equal(t, LeashTensionChanged, e.GetType())
	assert.Equal(t, "leash", e.GetSource())
	assert.True(t, e.IsTense)
	assert.Equal(t, 0.85, e.TensionAmount)
	assert.Equal(t, uint64(12), e.Tick)
}

func TestNewBounceEvent(t *testing.T) {
	e := NewBounceEvent(nil, "dog", 3, true, false)

	assert.Equal(t, BodyBounced, e.GetType())
	assert.Equal(t, "dog", e.Body)
	assert.Equal(t, uint64(3), e.EntityID)
	assert.True(t, e.AxisX)
	assert.False(t, e.AxisZ)
}

func TestNewStepFailedEvent(t *testing.T) {
	cause := errors.New("boom")
	e := NewStepFailedEvent(nil, "leash", 4, cause)

	assert.Equal(t, StepFailed, e.GetType())
	assert.Equal(t, "leash", e.Step)
	assert.ErrorIs(t, e.Err, cause)
}
