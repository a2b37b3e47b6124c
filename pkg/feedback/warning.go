package feedback

import (
	"image/color"

	"github.com/opd-ai/go-dogwalk/pkg/event"
)

// FlashInterval is how long each flash phase of the warning lasts, in seconds.
const FlashInterval = 0.15

// Warning background colors for the two flash phases.
var (
	FlashOnColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 128}
	FlashOffColor = color.NRGBA{R: 255, G: 77, B: 0, A: 77}
)

// WarningIndicator is the state behind the on-screen "leash tension" banner.
type WarningIndicator struct {
	visible    bool
	flashOn    bool
	flashTimer float64
	sub        *event.Subscription
}

// NewWarningIndicator creates a hidden indicator.
func NewWarningIndicator() *WarningIndicator {
	return &WarningIndicator{}
}

// Attach subscribes to tension changes on bus.
func (w *WarningIndicator) Attach(bus *event.Bus) {
	w.sub = bus.Subscribe(event.LeashTensionChanged, w.handle)
}

// Detach cancels the subscription made by Attach.
func (w *WarningIndicator) Detach() {
	if w.sub != nil {
		w.sub.Cancel()
		w.sub = nil
	}
}

func (w *WarningIndicator) handle(e event.Event) {
	if te, ok := e.(*event.TensionEvent); ok {
		w.visible = te.IsTense
		w.flashTimer = 0
	}
}

// Update advances the flash animation by dt seconds.
func (w *WarningIndicator) Update(dt float64) {
	if !w.visible {
		return
	}
	w.flashTimer += dt
	if w.flashTimer >= FlashInterval {
		w.flashTimer = 0
		w.flashOn = !w.flashOn
	}
}

// Visible reports whether the banner is shown.
func (w *WarningIndicator) Visible() bool {
	return w.visible
}

// Color returns the banner background for the current flash phase.
func (w *WarningIndicator) Color() color.NRGBA {
	if w.flashOn {
		return FlashOnColor
	}
	return FlashOffColor
}
