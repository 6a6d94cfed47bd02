// @title Quiz Bank API
// @version 1.0
// @description Question bank, practice sessions and progress tracking for exam preparation.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quizbank/cmd/api/docs"
	"quizbank/internal/adapter"
	"quizbank/internal/cache"
	"quizbank/internal/config"
	"quizbank/internal/database"
	"quizbank/internal/domain"
	"quizbank/internal/handler"
	"quizbank/internal/logger"
	"quizbank/internal/middleware"
	"quizbank/internal/repository"
	"quizbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// newCache picks Redis when an address is configured and the in-process cache otherwise.
func newCache(cfg config.RedisConfig, appLogger *zap.Logger) domain.Cache {
	if cfg.Address == "" {
		appLogger.Info("Redis address not set, using in-memory cache")
		return adapter.NewMemoryCacheAdapter()
	}
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return adapter.NewRedisCacheAdapter(redisClient)
}

// buildApp wires repositories, services and handlers into a fiber app.
func buildApp(cfg *config.Config, db *sqlx.DB, cacheAdapter domain.Cache) (*fiber.App, error) {
	// Initialize repositories
	questionRepository := repository.NewSQLXQuestionRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		return nil, err
	}
	questionService := service.NewQuestionService(questionRepository, txManager, cacheAdapter, cfg.CacheTTLs.Categories)
	practiceService := service.NewPracticeService(questionRepository, attemptRepository, cacheAdapter, cfg.Practice)
	userService := service.NewUserService(userRepository, attemptRepository, questionRepository)
	logger.Get().Info("Services initialized")

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return domain.NewInternalError("Database unavailable", err)
		}
		if err := cacheAdapter.Ping(c.Context()); err != nil {
			return domain.NewInternalError("Cache unavailable", err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler.SetupRoutes(app, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Question: handler.NewQuestionHandler(questionService),
		Practice: handler.NewPracticeHandler(practiceService),
		User:     handler.NewUserHandler(userService),
	}, authService)

	return app, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	cacheAdapter := newCache(cfg.Redis, appLogger)

	app, err := buildApp(cfg, db, cacheAdapter)
	if err != nil {
		appLogger.Fatal("Failed to build application", zap.Error(err))
	}

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("db_driver", cfg.DB.Driver),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
