package main

import (
	"context"
	"flag"
	"log"

	"quizbank/internal/config"
	"quizbank/internal/database"
	"quizbank/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "number of migrations to roll back instead of migrating up")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()

	if *down > 0 {
		if err := database.RollbackMigrations(db, cfg.DB.Driver, *down); err != nil {
			l.Fatal("Failed to roll back migrations", zap.Int("steps", *down), zap.Error(err))
		}
		return
	}

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
