// Package main is the entry point for the qop operator algebra service.
// It exposes symbolic fermionic and qubit operator arithmetic, fermion-to-
// qubit encodings, and cached spectrum computation over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spinworks/qop/internal/config"
	"github.com/spinworks/qop/internal/database"
	"github.com/spinworks/qop/internal/modules/spectra"
	"github.com/spinworks/qop/internal/scheduler"
	"github.com/spinworks/qop/internal/server"
	"github.com/spinworks/qop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting qop service")

	// Spectra cache is re-derivable, so it runs on the cache profile
	// (synchronous writes off)
	spectraDB, err := database.New(database.Config{
		Path:    cfg.SpectraDBPath(),
		Profile: database.ProfileCache,
		Name:    "spectra",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open spectra database")
	}
	defer spectraDB.Close()

	spectraRepo := spectra.NewRepository(spectraDB, log)
	if err := spectraRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize spectra schema")
	}
	spectraService := spectra.NewService(spectraRepo, cfg.MaxQubits, cfg.Tolerance, log)

	sched := scheduler.New(log)
	cleanupJob := spectra.NewCleanupJob(
		spectraRepo,
		time.Duration(cfg.CacheTTLHours)*time.Hour,
		log,
	)
	if err := sched.AddJob(cfg.CleanupSchedule, cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:            log,
		Config:         cfg,
		SpectraDB:      spectraDB,
		SpectraService: spectraService,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("qop service stopped")
}
