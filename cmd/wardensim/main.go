package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/warden/internal/ai"
	"github.com/udisondev/warden/internal/config"
	"github.com/udisondev/warden/internal/observer"
)

const WardenConfigPath = "config/warden.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := WardenConfigPath
	if p := os.Getenv("WARDEN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadWarden(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.Sim.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("warden simulator starting",
		"config", cfgPath,
		"log_level", cfg.Sim.LogLevel,
		"tick_interval", cfg.Sim.TickInterval,
		"realtime", cfg.Sim.Realtime)

	sim, err := newSimulation(cfg)
	if err != nil {
		return fmt.Errorf("building simulation: %w", err)
	}

	var obs *observer.Server
	if cfg.Sim.ObserverAddr != "" {
		obs = observer.NewServer()
		sim.onFrame = func(f observer.Frame) {
			if err := obs.Publish(f); err != nil {
				slog.Warn("publishing frame", "tick", f.Tick, "error", err)
			}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Stopping the ticks ends the run, observer included.
		defer cancel()
		if err := sim.run(gctx, cfg.Sim); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if obs != nil {
		g.Go(func() error {
			slog.Info("starting observer", "addr", cfg.Sim.ObserverAddr)
			if err := obs.Run(gctx, cfg.Sim.ObserverAddr); err != nil {
				return fmt.Errorf("observer: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	sim.logSummary()
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
