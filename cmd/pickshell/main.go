package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"pickshell/internal/config"
	"pickshell/internal/engine"
	"pickshell/internal/game"
	"pickshell/internal/logx"
)

func init() {
	// GL contexts are bound to the OS thread that created them.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "pickshell.toml", "path to the TOML config")
	writeConfig := flag.Bool("write-config", false, "write the default config to -config and exit")
	flag.Parse()

	// Resolve relative config paths next to the executable for deployed
	// builds.
	if execPath, err := os.Executable(); err == nil {
		if err := enterExecDir(execPath); err != nil {
			slog.Warn("staying in working directory", "err", err)
		}
	}

	if *writeConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// enterExecDir changes to the directory holding execPath. "go run" binaries
// live in a temp go-build directory and are left alone.
func enterExecDir(execPath string) error {
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return nil
	}
	return os.Chdir(execDir)
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel())

	b := newBackend()
	logger.Info("starting", "backend", b.name, "config", configPath)

	g := game.New(game.Options{
		FovY:     float32(cfg.Camera.FovY),
		Near:     float32(cfg.Camera.Near),
		Far:      float32(cfg.Camera.Far),
		Distance: float32(cfg.Camera.Distance),
	})

	e, err := engine.New(g, b.platform, cfg.EngineOptions(logger))
	if err != nil {
		logger.Error("engine construction failed", "err", err)
		return err
	}
	e.Closed.AddListener(func() {
		logger.Info("window closed")
	})
	defer func() {
		if err := e.Close(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := b.drive(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped")
	return nil
}

// backend is one window/renderer implementation plus the way it drives the
// engine. Exactly one is compiled in, selected by build tag.
type backend struct {
	name     string
	platform engine.Platform
	drive    func(ctx context.Context, e *engine.Engine) error
}
