package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/weakspot/internal/api"
	"github.com/vytor/weakspot/internal/config"
	"github.com/vytor/weakspot/internal/db"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/repository/sqlite"
	"github.com/vytor/weakspot/internal/services"
	"github.com/vytor/weakspot/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Weakspot Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("max_games=%d", cfg.MaxGames)
	log.Debug("analysis_workers=%d", cfg.AnalysisWorkers)
	log.Debug("report_worker_count=%d", cfg.ReportWorkerCount)
	log.Debug("report_queue_size=%d", cfg.ReportQueueSize)
	log.Debug("color_match=%s", cfg.ColorMatch)
	log.Debug("percent_base=%s", cfg.PercentBase)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	analyzer, err := services.NewAnalyzerFromConfig(cfg)
	if err != nil {
		log.Error("failed to set up analyzer: %v", err)
		os.Exit(1)
	}
	profileCfg, err := services.ProfileConfigFrom(cfg)
	if err != nil {
		log.Error("invalid profile configuration: %v", err)
		os.Exit(1)
	}

	// Initialize worker pool
	reportPool := worker.NewPool("reports", cfg.ReportWorkerCount, cfg.ReportQueueSize)

	// Initialize services
	reportRepo := sqlite.NewReportRepository(database.DB)
	profileService := services.NewProfileService(analyzer, profileCfg)
	reportService := services.NewReportService(reportRepo, profileService, reportPool)

	srv := &api.Server{
		ReportService: reportService,
		DB:            database,
	}

	reportPool.Start(ctx)

	if n, err := reportService.ResumePending(ctx); err != nil {
		log.Warn("failed to resume pending reports: %v", err)
	} else if n > 0 {
		log.Info("resumed %d pending reports", n)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Reports still running are reset to pending on the next start.
	log.Debug("stopping report pool")
	reportPool.Stop()

	log.Info("===========================================")
	log.Info("Weakspot Server Stopped")
	log.Info("===========================================")
}
