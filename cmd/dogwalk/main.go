// cmd/dogwalk/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-dogwalk/pkg/camera"
	"github.com/opd-ai/go-dogwalk/pkg/config"
	"github.com/opd-ai/go-dogwalk/pkg/engine"
	"github.com/opd-ai/go-dogwalk/pkg/event"
	"github.com/opd-ai/go-dogwalk/pkg/feedback"
	"github.com/opd-ai/go-dogwalk/pkg/health"
	"github.com/opd-ai/go-dogwalk/pkg/leash"
	"github.com/opd-ai/go-dogwalk/pkg/logging"
	"github.com/opd-ai/go-dogwalk/pkg/physics"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "dogwalk.yaml", "Path to configuration file (.yaml, .yml or .json)")
	createDefault := flag.Bool("default", false, "Create default configuration file and exit")
	maxTicks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	logFile := flag.String("log-file", "", "Also append plain-text logs to this file")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg, *logFile)
	if err != nil {
		logger.Error(ctx, "Failed to open log file", err,
			"log_file", *logFile,
		)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(ctx, logger, cfg, *maxTicks); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		closeLog()
		os.Exit(1)
	}
}

// loadConfig reads the file if it exists, otherwise starts from defaults, then
// applies environment overrides and validates.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.SimulationConfig, error) {
	var cfg *config.SimulationConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.SimulationConfig, logFile string) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.Runtime.LogLevel)
	opts := logging.Options{Level: &level}
	closeLog := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return logging.NewLogger(), closeLog, err
		}
		opts.Writer = io.MultiWriter(os.Stdout, f)
		opts.Text = true
		closeLog = func() { f.Close() }
	}
	return logging.NewLoggerWithOptions(opts), closeLog, nil
}

// walkScript loops a short walk: forward, a turn to the right, back again.
func walkScript(tickRate int) *engine.ScriptedInput {
	second := uint64(tickRate)
	return &engine.ScriptedInput{
		Loop: true,
		Segments: []engine.Segment{
			{Move: physics.Vector2D{Y: 1}, Ticks: 2 * second},
			{Move: physics.Vector2D{X: 1}, Ticks: second},
			{Move: physics.Vector2D{Y: -1}, Ticks: 2 * second},
			{Move: physics.Vector2D{}, Ticks: second},
		},
	}
}

// logRumbler stands in for a controller and logs the rumble it would play.
type logRumbler struct {
	ctx    context.Context
	logger *logging.Logger
}

func (r *logRumbler) Start(weak, strong float64, duration time.Duration) {
	r.logger.Debug(r.ctx, "Rumble", "weak", weak, "strong", strong, "duration", duration)
}

func (r *logRumbler) Stop() {
	r.logger.Debug(r.ctx, "Rumble stopped")
}

func run(ctx context.Context, logger *logging.Logger, cfg *config.SimulationConfig, maxTicks uint64) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithTickLimit(maxTicks),
	}

	rig := camera.NewRig(cfg.Camera.Stats)
	if cfg.Camera.Enabled {
		opts = append(opts, engine.WithYawSource(rig))
	}

	warning := feedback.NewWarningIndicator()
	var haptics *feedback.Haptics
	opts = append(opts, engine.WithTickObserver(func(tick uint64, dt float64, state leash.TensionState) {
		warning.Update(dt)
		haptics.Track(state)
	}))

	sim, err := engine.NewSimulation(cfg, opts...)
	if err != nil {
		return err
	}
	ctx = logging.WithCorrelationID(ctx, sim.RunID())

	haptics = feedback.NewHaptics(&logRumbler{ctx: ctx, logger: logger.Component("haptics")}, cfg.Leash.TensionThreshold)
	haptics.Attach(sim.Events())
	defer haptics.Detach()
	warning.Attach(sim.Events())
	defer warning.Detach()

	sim.Events().Subscribe(event.LeashTensionChanged, func(e event.Event) {
		te, ok := e.(*event.TensionEvent)
		if !ok {
			return
		}
		logger.Info(ctx, "Leash tension changed",
			"tick", te.Tick,
			"is_tense", te.IsTense,
			"tension", te.TensionAmount,
			"warning_visible", warning.Visible(),
		)
	})
	sim.Events().Subscribe(event.BodyBounced, func(e event.Event) {
		if be, ok := e.(*event.BounceEvent); ok {
			logger.Debug(ctx, "Body bounced", "body", be.Body, "x", be.AxisX, "z", be.AxisZ)
		}
	})

	// Setup health checks
	healthChecker := health.NewHealthChecker()
	staleAfter := 10 * time.Duration(float64(time.Second)*cfg.Runtime.TickInterval())
	healthChecker.AddCheck(health.NewSimulationHealthCheck(sim, max(staleAfter, time.Second)))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(500, health.HeapAllocMB))

	healthServer := health.NewServer(cfg.Runtime.HealthPort, healthChecker)
	go func() {
		logger.Info(ctx, "Starting health check server",
			"port", cfg.Runtime.HealthPort,
		)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()

	logger.Info(ctx, "Starting dog walk",
		"tick_rate", cfg.Runtime.TickRate,
		"camera_relative", cfg.Camera.Enabled,
		"max_ticks", maxTicks,
	)
	runErr := sim.Run(ctx, walkScript(cfg.Runtime.TickRate))

	logger.Info(ctx, "Shutting down",
		"ticks", sim.Tick(),
		"owner", sim.Owner().GetPosition(),
		"dog", sim.Dog().GetPosition(),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health check server shutdown failed", err)
	}
	return runErr
}
