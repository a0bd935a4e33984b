// Command sprintcharts writes the burndown and velocity charts of
// the current sprint, as PNG and PDF files, under docs/images/charts.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/truesight/sprintcharts/internal/config"
	"github.com/truesight/sprintcharts/internal/generate"
	"github.com/truesight/sprintcharts/sprint"
)

func main() {
	var level slog.LevelVar // info until the config is read
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if l, err := cfg.Level(); err == nil {
		level.Set(l)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping", "signal", sig)
		cancel()
	}()

	slog.Debug("generating charts", "output_dir", cfg.OutputDir, "dpi", cfg.DPI)
	if _, err := generate.Run(ctx, cfg, sprint.Sprint0(), os.Stdout); err != nil {
		slog.Error("chart generation failed", "error", err)
		os.Exit(1)
	}
}
