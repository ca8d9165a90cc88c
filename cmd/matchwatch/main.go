package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchwatch/internal/api"
	"matchwatch/internal/config"
	"matchwatch/internal/datastore"
	"matchwatch/internal/differ"
	"matchwatch/internal/logger"
	"matchwatch/internal/scheduler"
	"matchwatch/internal/scraper"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; env vars are authoritative.
	_ = godotenv.Load()

	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		gCfg.ServerConfig.ListenAddress = ":" + port
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Match tracker starting")

	store, err := datastore.NewStore(gCfg.StorageConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open state store")
	}
	defer store.Close()

	orchestrator := scraper.NewOrchestrator(gCfg.ScraperConfig, zLogger)
	runner := scheduler.NewRunner(orchestrator, store, differ.NewDiffer(zLogger), zLogger)

	if flags.Once {
		result, err := runner.Run(context.Background())
		if err != nil {
			zLogger.Error().Err(err).Msg("Update failed")
			os.Exit(1)
		}
		zLogger.Info().Bool("has_changes", result.HasChanges).Msg("Update finished")
		return
	}

	// First start with an empty store: run the pipeline once so the API has
	// something to serve before the first scheduled window.
	snapshot, meta, err := store.Load()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to read persisted state")
	}
	if snapshot == nil {
		zLogger.Info().Msg("No persisted snapshot found, running initial update")
		if _, err := runner.Run(context.Background()); err != nil {
			zLogger.Error().Err(err).Msg("Initial update failed, continuing with empty state")
		}
	} else {
		zLogger.Info().
			Int("teams", meta.TotalTeams).
			Int("matches", meta.TotalMatches).
			Str("season", meta.Season).
			Msg("Persisted snapshot loaded")
	}

	var sched *scheduler.Scheduler
	if gCfg.SchedulerConfig.Enabled {
		sched, err = scheduler.NewScheduler(gCfg.SchedulerConfig, runner, zLogger)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to initialize scheduler")
		}
		sched.Start()
	}

	handler := api.NewHandler(store, runner, gCfg.SchedulerConfig.Enabled, zLogger)
	server := &http.Server{
		Addr:    gCfg.ServerConfig.ListenAddress,
		Handler: api.NewRouter(handler, gCfg.ServerConfig, zLogger),
	}

	go func() {
		zLogger.Info().Str("address", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zLogger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zLogger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zLogger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if sched != nil {
		sched.Stop()
	}
	zLogger.Info().Msg("Shutdown complete")
}
