package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftzlab/ftzsim/internal/config"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/ftzlab/ftzsim/internal/modules/planning"
	"github.com/ftzlab/ftzsim/internal/server"
	"github.com/ftzlab/ftzsim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootstrapLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting free-zone trade simulator")

	// Load the chart of accounts, falling back to the built-in chart
	chart := ledger.DefaultChart()
	if cfg.ChartPath != "" {
		loaded, err := ledger.LoadChartFromXLSX(cfg.ChartPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ChartPath).Msg("Failed to load chart of accounts")
		}
		chart = loaded
		log.Info().Str("path", cfg.ChartPath).Int("accounts", len(chart.Entries)).Msg("Loaded chart of accounts")
	}

	// Initialize the search service
	search := planning.NewSearch(cfg.EvalWorkers, log)

	// Initialize HTTP server
	srv := server.New(server.Config{
		Log:     log,
		Config:  cfg,
		Search:  search,
		Chart:   chart,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
