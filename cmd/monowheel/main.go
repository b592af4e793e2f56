// cmd/monowheel/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-monowheel/pkg/config"
	"github.com/opd-ai/go-monowheel/pkg/event"
	"github.com/opd-ai/go-monowheel/pkg/health"
	hostengo "github.com/opd-ai/go-monowheel/pkg/host/engo"
	"github.com/opd-ai/go-monowheel/pkg/logging"
	"github.com/opd-ai/go-monowheel/pkg/telemetry"
	"github.com/opd-ai/go-monowheel/pkg/vehicle"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (json, yaml or toml)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	window := flag.Bool("window", false, "Ride interactively in an engo window")
	frames := flag.Int("frames", 720, "Frames to simulate in headless mode")
	fps := flag.Int("fps", 60, "Simulation frame rate")
	healthAddr := flag.String("health", "", "Serve health probes on this address, e.g. :8080")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", errors.New("-default requires -config"))
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	recorder, err := telemetry.NewRecorder(nil)
	if err != nil {
		logger.Error(ctx, "Failed to create metrics recorder", err)
		os.Exit(1)
	}
	defer recorder.Close()

	t := newTrack(cfg)
	watchEvents(ctx, logger, t.bus)

	if *window {
		runWindow(cfg, t, logger, recorder, *width, *height, *fps)
		return
	}

	if err := runHeadless(ctx, cfg, t, logger, recorder, *frames, *fps, *healthAddr); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

// runWindow rides the track under engo.Run with keyboard input.
func runWindow(cfg *config.VehicleConfig, t *track, logger *logging.Logger, recorder *telemetry.Recorder, width, height, fps int) {
	input := hostengo.NewKeyboardInput(nil)
	scene := hostengo.NewScene(t.assemble(cfg, input, logger, recorder), cfg.Resources.MaxFuel/4)

	opts := engo.RunOptions{
		Title:    "Go Monowheel",
		Width:    width,
		Height:   height,
		VSync:    true,
		FPSLimit: fps,
	}
	engo.Run(opts, scene)
}

// runHeadless replays the scripted ride at a fixed step.
func runHeadless(ctx context.Context, cfg *config.VehicleConfig, t *track, logger *logging.Logger, recorder *telemetry.Recorder, frames, fps int, healthAddr string) error {
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)

	world := &ecs.World{}
	c, err := t.assemble(cfg, newScript(dt), logger, recorder)(hostengo.NewScheduler(world), nil)
	if err != nil {
		return logging.WrapError(err, "assemble vehicle")
	}
	defer c.Teardown()
	defer t.bridge.Close()

	var server *http.Server
	if healthAddr != "" {
		server = serveHealth(ctx, logger, c, healthAddr)
		defer server.Shutdown(context.Background())
	}

	for i := 0; i < frames && !c.Destroyed(); i++ {
		world.Update(float32(dt))
	}

	pose := c.Pose()
	logger.Info(ctx, "Ride finished",
		"frames", frames,
		"surface", c.Surface().String(),
		"speed", c.Speed(),
		"fuel", c.Fuel(),
		"durability", c.Durability(),
		"x", pose.Position.X(),
		"y", pose.Position.Y(),
		"z", pose.Position.Z(),
		"raycasts", c.Queries(),
	)

	if server != nil {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		logger.Info(ctx, "Serving health probes until interrupted", "address", healthAddr)
		<-sigChan
	}
	return nil
}

func serveHealth(ctx context.Context, logger *logging.Logger, c *vehicle.Controller, addr string) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewVehicleHealthCheck(c))
	checker.AddCheck(health.NewReserveHealthCheck(c, 1, 10))

	server := &http.Server{
		Addr:              addr,
		Handler:           checker.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health server failed", err, "address", addr)
		}
	}()
	return server
}

func watchEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.FuelExhausted, func(e event.Event) {
		logger.Warn(ctx, "Out of fuel", "vehicle", e.GetSource())
	})
	bus.Subscribe(event.VehicleDestroyed, func(e event.Event) {
		logger.Warn(ctx, "Vehicle destroyed", "vehicle", e.GetSource())
	})
	bus.Subscribe(event.SurfaceChanged, func(e event.Event) {
		if se, ok := e.(*event.SurfaceEvent); ok {
			logger.Debug(ctx, "Surface changed", "from", se.From, "to", se.To)
		}
	})
}
