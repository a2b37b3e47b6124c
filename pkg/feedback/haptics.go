// Package feedback holds the presentation-side observers of leash tension.
// They only consume tension-change events and tension snapshots; drawing and
// device access stay behind small interfaces.
package feedback

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogwalk/pkg/event"
	"github.com/opd-ai/go-dogwalk/pkg/leash"
)

// Rumble tuning
const (
	WeakMotorScale   = 0.3
	StrongMotorScale = 0.5
	RumblePulse      = 100 * time.Millisecond
)

// Rumbler drives a controller's vibration motors.
type Rumbler interface {
	Start(weak, strong float64, duration time.Duration)
	Stop()
}

// RumbleStrength maps a tension above threshold onto [0,1].
func RumbleStrength(tension, threshold float64) float64 {
	if threshold >= 1 {
		return 0
	}
	return mgl64.Clamp((tension-threshold)/(1-threshold), 0, 1)
}

// Haptics rumbles while the leash is tense and stops on the tense-to-slack edge.
type Haptics struct {
	rumbler   Rumbler
	threshold float64
	tense     bool
	sub       *event.Subscription
}

// NewHaptics creates a haptics observer for a leash with the given threshold.
func NewHaptics(rumbler Rumbler, threshold float64) *Haptics {
	return &Haptics{rumbler: rumbler, threshold: threshold}
}

// Attach subscribes to tension changes on bus.
func (h *Haptics) Attach(bus *event.Bus) {
	h.sub = bus.Subscribe(event.LeashTensionChanged, h.handle)
}

// Detach cancels the subscription made by Attach.
func (h *Haptics) Detach() {
	if h.sub != nil {
		h.sub.Cancel()
		h.sub = nil
	}
}

func (h *Haptics) handle(e event.Event) {
	te, ok := e.(*event.TensionEvent)
	if !ok {
		return
	}
	h.tense = te.IsTense
	if te.IsTense {
		h.pulse(te.TensionAmount)
		return
	}
	h.rumbler.Stop()
}

// Track refreshes the rumble from the current tension. Call it once per tick.
func (h *Haptics) Track(state leash.TensionState) {
	if h.tense && state.IsTense {
		h.pulse(state.TensionAmount)
	}
}

// Active reports whether the rumble is running.
func (h *Haptics) Active() bool {
	return h.tense
}

func (h *Haptics) pulse(tension float64) {
	s := RumbleStrength(tension, h.threshold)
	h.rumbler.Start(s*WeakMotorScale, s*StrongMotorScale, RumblePulse)
}
