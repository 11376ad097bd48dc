// The dashboard API server. Loads configuration from config.yaml (path
// overridable via DASHBOARD_CONFIG), serves the trade-log analytics API,
// and shuts down cleanly on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quant-dashboard/internal/config"
	"quant-dashboard/internal/logger"
	"quant-dashboard/internal/server"
	"quant-dashboard/internal/source"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()

	configPath := os.Getenv("DASHBOARD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return err
	}

	src, err := source.New(cfg)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Trade-log source configured",
		"mode", cfg.Source.Mode,
		"csv_dir", cfg.Source.CSVDir)

	srv := server.New(fmt.Sprintf(":%d", cfg.Server.Port), src, cfg)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "Server shutdown incomplete", "error", err)
	}
	return logger.Shutdown(shutdownCtx)
}
