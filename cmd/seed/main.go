package main

import (
	"context"
	"log"
	"time"

	"github.com/devHarshShah/itinerary/internal/config"
	"github.com/devHarshShah/itinerary/internal/database"
	"github.com/devHarshShah/itinerary/internal/logger"
	"github.com/devHarshShah/itinerary/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := database.InitSchema(ctx, pool); err != nil {
		appLog.Fatal("Failed to initialize schema", "error", err)
	}

	if err := seed.Run(ctx, pool, appLog); err != nil {
		appLog.Fatal("Seeding failed", "error", err)
	}

	appLog.Info("Seeding complete")
}
