package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jyasskin/920-checkin/internal/config"
	"github.com/jyasskin/920-checkin/internal/database"
	"github.com/jyasskin/920-checkin/internal/logger"
	"github.com/jyasskin/920-checkin/internal/repository"
	"github.com/jyasskin/920-checkin/internal/service"
)

// Installs the sample fixture from the command line, for setting up a fresh
// environment without going through the HTTP confirmation form. Destructive:
// wipes every existing record first.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache invalidation")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	studentRepo := repository.NewStudentRepository(pool)
	classTypeRepo := repository.NewClassTypeRepository(pool)
	monthRepo := repository.NewMonthRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	signupRepo := repository.NewSignupRepository(pool)

	monthCache := service.NewMonthCache(rdb, cfg.MonthCacheTTL, log)
	scheduleService := service.NewScheduleService(
		studentRepo, classTypeRepo, monthRepo, classRepo, signupRepo, monthCache, log)
	sampleDataService := service.NewSampleDataService(
		pool, studentRepo, classTypeRepo, signupRepo, scheduleService, monthCache, log)

	if err := sampleDataService.Install(ctx); err != nil {
		log.Fatal().Err(err).Msg("Sample data installation failed")
	}
	fmt.Println("Sample data installed")
}
