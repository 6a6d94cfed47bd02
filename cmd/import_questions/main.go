package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"quizbank/internal/adapter"
	"quizbank/internal/cache"
	"quizbank/internal/config"
	"quizbank/internal/database"
	"quizbank/internal/domain"
	"quizbank/internal/logger"
	"quizbank/internal/repository"
	"quizbank/internal/service"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "questions", "directory containing <category>.txt question files")
	difficulty := flag.Int("difficulty", domain.DefaultDifficulty, "difficulty assigned to imported questions (1-3)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	// the API caches the category list, so imports must invalidate the shared cache
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			l.Fatal("Failed to initialize Redis client", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		l.Warn("Redis cache is not configured. Cached category lists will expire on their own.")
	}

	questionService := service.NewQuestionService(
		repository.NewSQLXQuestionRepository(db),
		repository.NewTransactionManagerAdapter(db),
		cacheAdapter,
		cfg.CacheTTLs.Categories,
	)

	l.Info("Importing question files", zap.String("dir", *dir), zap.Int("difficulty", *difficulty))
	result, err := questionService.ImportDirectory(ctx, *dir, *difficulty)
	if err != nil {
		l.Fatal("Import failed", zap.String("dir", *dir), zap.Error(err))
	}
	l.Info("Import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
}
