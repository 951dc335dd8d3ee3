package main

import (
	"context"
	"flag"
	"log"
	"time"

	"hamdukhub/internal/pkg/logger"
	"hamdukhub/internal/platform/config"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/repositories"
	"hamdukhub/internal/workers"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userRepo := repositories.NewAPIUserRepository(db)
	logRepo := repositories.NewUsageLogRepository(db)
	windowRepo := repositories.NewRateWindowRepository(db)

	log.Println("Starting background workers...")

	go runUsageResetWorker(cfg, userRepo)
	go runCleanupWorker(cfg, logRepo, windowRepo)

	// Keep process alive
	select {}
}

func runUsageResetWorker(cfg *config.Config, users *repositories.APIUserRepository) {
	interval := cfg.Usage.ResetInterval
	if interval <= 0 {
		// Monthly accounting period by default.
		interval = 30 * 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := workers.ResetUsageCounters(ctx, users); err != nil {
			log.Printf("Usage reset failed: %v", err)
		}
		cancel()
	}
}

func runCleanupWorker(cfg *config.Config, logs *repositories.UsageLogRepository, windows *repositories.RateWindowRepository) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := workers.PurgeUsageLogs(ctx, logs, cfg.Usage.RetentionDays); err != nil {
			log.Printf("Usage log purge failed: %v", err)
		}
		if err := workers.PurgeRateWindows(ctx, windows); err != nil {
			log.Printf("Rate window purge failed: %v", err)
		}
		cancel()
	}
}
