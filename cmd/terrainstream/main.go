package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"voxelterrain/internal/config"
	"voxelterrain/internal/pipeline"
	"voxelterrain/internal/stream"
	"voxelterrain/internal/terrain"
	"voxelterrain/internal/world"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to terrain stream configuration file")
	flag.Parse()

	if _, err := writeConfigFromEnv(cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "sync config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()
	if d := cfg.Observer.Duration.Duration(); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("terrain stream exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool := pipeline.NewPool(cfg.Stream.Workers, logger)
	defer pool.Shutdown()

	engine := stream.NewEngine(cfg.Stream, terrain.NewGenerator(cfg.Terrain), pool, logger)
	renderer := newMeshTracker()
	engine.SetRenderer(renderer)

	observer := newScriptedObserver(cfg.Observer.Start, cfg.Observer.Velocity, time.Now)
	frames := newFrameLogger(logger, renderer, cfg.Stream.DrawRadius)

	logger.Info("terrain stream starting",
		"workers", pool.Workers(),
		"zoneRadius", cfg.Stream.ZoneRadius,
		"tickRate", cfg.Stream.TickRate.Duration().String(),
		"start", fmt.Sprint(cfg.Observer.Start),
	)

	driver := stream.NewDriver(engine, observer, cfg.Stream.TickRate.Duration(), frames.frame)
	driver.Start(ctx)
	driver.Wait()

	stats := engine.Stats()
	logger.Info("terrain stream stopped",
		"frames", frames.count,
		"resident", stats.ResidentChunks,
		"meshed", stats.MeshedChunks,
		"generating", stats.GeneratingChunks,
		"stale", stats.StaleDiscarded,
		"uploadedFaces", renderer.Faces(),
	)

	if cfg.Preview.Enabled {
		pos := observer.Position()
		area := world.AreaAround(int(pos[0]), int(pos[2]), cfg.Preview.HalfExtent)
		path, err := world.SaveAreaPreview(engine.World(), area, cfg.Preview.OutputDir)
		if err != nil {
			return fmt.Errorf("save preview: %w", err)
		}
		logger.Info("preview written", "path", path)
	}
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
			return
		}

		// Ensure the process terminates if shutdown stalls.
		time.AfterFunc(10*time.Second, func() {
			logger.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
