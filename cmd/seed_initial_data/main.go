package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"quizbank/cmd/seed_initial_data/internal/seedmodels"
	"quizbank/internal/config"
	"quizbank/internal/database"
	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"
	"quizbank/internal/repository"
	"quizbank/internal/service"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultManifestPath = "configs/seed_data/seed.yaml"

func loadManifest(path string) (*seedmodels.SeedManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest %s: %w", path, err)
	}
	var manifest seedmodels.SeedManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse seed manifest %s: %w", path, err)
	}
	return &manifest, nil
}

func main() {
	manifestPath := flag.String("manifest", defaultManifestPath, "seed manifest (yaml)")
	flag.Parse()

	ctx := context.Background()
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
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatal("Failed to load seed manifest", zap.Error(err))
	}
	log.Info("Loaded seed manifest",
		zap.String("path", *manifestPath),
		zap.Int("users", len(manifest.Users)),
		zap.Int("question_files", len(manifest.Questions)))

	userRepo := repository.NewSQLXUserRepository(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)
	userService := service.NewUserService(userRepo, repository.NewSQLXAttemptRepository(db), questionRepo)
	questionService := service.NewQuestionService(questionRepo, repository.NewTransactionManagerAdapter(db), nil, cfg.CacheTTLs.Categories)

	for _, account := range manifest.Users {
		seedAccount(ctx, log, userService, account)
	}

	// relative question paths are resolved against the manifest's directory
	baseDir := filepath.Dir(*manifestPath)
	for _, qf := range manifest.Questions {
		seedQuestionFile(ctx, log, questionService, baseDir, qf)
	}
	log.Info("Initial data seeding process completed.")
}

func seedAccount(ctx context.Context, log *zap.Logger, users service.UserService, account seedmodels.SeedAccount) {
	profile, err := users.CreateUser(ctx, dto.CreateUserRequest{
		Username: account.Username,
		Password: account.Password,
		Email:    account.Email,
		IsAdmin:  account.IsAdmin,
	})
	switch {
	case domain.HasCode(err, domain.CodeDuplicate):
		log.Info("User already exists, skipping", zap.String("username", account.Username))
	case err != nil:
		log.Error("Failed to create user", zap.String("username", account.Username), zap.Error(err))
	default:
		log.Info("Created user", zap.String("id", profile.ID), zap.String("username", profile.Username), zap.Bool("is_admin", profile.IsAdmin))
	}
}

func seedQuestionFile(ctx context.Context, log *zap.Logger, questions service.QuestionService, baseDir string, qf seedmodels.SeedQuestionFile) {
	path := qf.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		log.Error("Failed to open question file", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	result, err := questions.ImportFile(ctx, filepath.Base(path), f, qf.Category, qf.Difficulty)
	if err != nil {
		log.Error("Failed to import question file", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("Imported question file",
		zap.String("path", path),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
}
