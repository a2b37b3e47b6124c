package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-dogwalk/pkg/event"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

// Run drives ticks at the configured tick rate until ctx is cancelled or the
// tick limit is reached. Step errors are logged and never stop the loop.
func (s *Simulation) Run(ctx context.Context, input InputSource) error {
	interval := time.Second / time.Duration(s.Config.Runtime.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.start()
	defer s.stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			move := physics.Vector2D{}
			if input != nil {
				move = input.Move(s.Tick())
			}
			if err := s.Step(TickInput{Move: move, DeltaTime: dt}); err != nil {
				s.logger.Warn(s.ctx, "tick completed with errors", "error", err)
			}
			if s.observer != nil {
				s.observer(s.Tick(), dt, s.Tension())
			}
			if s.maxTicks > 0 && s.Tick() >= s.maxTicks {
				return nil
			}
		}
	}
}

// start marks the simulation running and announces it
func (s *Simulation) start() {
	s.mu.Lock()
	s.running = true
	s.lastStep = time.Now()
	s.mu.Unlock()

	s.logger.Info(s.ctx, "simulation started", "tick_rate", s.Config.Runtime.TickRate)
	s.bus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
}

// stop marks the simulation halted and announces it
func (s *Simulation) stop() {
	s.mu.Lock()
	s.running = false
	tick := s.tick
	s.mu.Unlock()

	s.logger.Info(s.ctx, "simulation stopped", "ticks", tick)
	s.bus.Publish(&event.BaseEvent{
		EventType: event.SimulationStopped,
		Source:    s,
	})
}
