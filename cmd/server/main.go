package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/config"
	"github.com/jyasskin/920-checkin/internal/database"
	"github.com/jyasskin/920-checkin/internal/handler"
	"github.com/jyasskin/920-checkin/internal/logger"
	"github.com/jyasskin/920-checkin/internal/repository"
	"github.com/jyasskin/920-checkin/internal/router"
	"github.com/jyasskin/920-checkin/internal/service"
	"github.com/jyasskin/920-checkin/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting 9:20 check-in backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	// The month cache is optional: a missing Redis downgrades to direct
	// Postgres reads instead of blocking startup.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, month cache disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	classTypeRepo := repository.NewClassTypeRepository(pool)
	monthRepo := repository.NewMonthRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	signupRepo := repository.NewSignupRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	monthCache := service.NewMonthCache(rdb, cfg.MonthCacheTTL, log)
	scheduleService := service.NewScheduleService(
		studentRepo, classTypeRepo, monthRepo, classRepo, signupRepo, monthCache, log)
	rosterService := service.NewRosterService(studentRepo, classTypeRepo)
	signupService := service.NewSignupService(signupRepo, monthCache, log)
	sampleDataService := service.NewSampleDataService(
		pool, studentRepo, classTypeRepo, signupRepo, scheduleService, monthCache, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Schedule:   handler.NewScheduleHandler(scheduleService, log),
		SampleData: handler.NewSampleDataHandler(sampleDataService, log),
		Roster:     handler.NewRosterHandler(rosterService),
		Signup:     handler.NewSignupHandler(signupService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
