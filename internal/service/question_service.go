package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"quizbank/internal/cache"
	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// questionFileExt is the extension of question bank files read by ImportDirectory.
const questionFileExt = ".txt"

// QuestionService manages the question bank.
type QuestionService interface {
	CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	ListQuestions(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) (*dto.QuestionListResponse, error)
	UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
	ImportText(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error)
	ImportFile(ctx context.Context, filename string, r io.Reader, category string, difficulty int) (*dto.ImportQuestionsResponse, error)
	ImportDirectory(ctx context.Context, dir string, difficulty int) (*dto.ImportQuestionsResponse, error)
	PreviewQuestions(ctx context.Context, req dto.PreviewQuestionsRequest) *dto.PreviewQuestionsResponse
	GetAllCategories(ctx context.Context) ([]string, error)
}

type questionServiceImpl struct {
	repo          domain.QuestionRepository
	txManager     domain.TransactionManager
	cache         domain.Cache
	categoriesTTL time.Duration
}

// NewQuestionService creates a new QuestionService. cache may be nil.
func NewQuestionService(repo domain.QuestionRepository, txManager domain.TransactionManager, cache domain.Cache, categoriesTTL time.Duration) QuestionService {
	return &questionServiceImpl{
		repo:          repo,
		txManager:     txManager,
		cache:         cache,
		categoriesTTL: categoriesTTL,
	}
}

func resolveDifficulty(difficulty int) (int, error) {
	if difficulty == 0 {
		return domain.DefaultDifficulty, nil
	}
	if difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("difficulty", difficulty, domain.MinDifficulty, domain.MaxDifficulty)}
	}
	return difficulty, nil
}

func (s *questionServiceImpl) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	difficulty, err := resolveDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	q := domain.NewQuestion(
		domain.QuestionType(strings.TrimSpace(req.QuestionType)),
		strings.TrimSpace(req.Content),
		trimOptions(req.Options),
		strings.TrimSpace(req.Answer),
		strings.TrimSpace(req.Explanation),
		difficulty,
		strings.TrimSpace(req.Category),
	)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateQuestion(ctx, q); err != nil {
		return nil, domain.NewInternalError("Failed to create question", err)
	}
	s.invalidateCategories(ctx)
	return toQuestionResponse(q), nil
}

func trimOptions(options []string) []string {
	var out []string
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (s *questionServiceImpl) getQuestion(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return q, nil
}

func (s *questionServiceImpl) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	q, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(q), nil
}

func (s *questionServiceImpl) ListQuestions(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) (*dto.QuestionListResponse, error) {
	if filters.QuestionType != "" && !domain.QuestionType(filters.QuestionType).Valid() {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("question_type", filters.QuestionType)}
	}
	questions, total, err := s.repo.ListQuestions(ctx, filters, pagination)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}
	items := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		items[i] = *toQuestionResponse(q)
	}
	return &dto.QuestionListResponse{
		Questions:      items,
		PaginationInfo: newPaginationInfo(total, pagination),
	}, nil
}

// UpdateQuestion applies only the fields present in req and validates the result.
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	q, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.QuestionType != nil {
		q.Type = domain.QuestionType(strings.TrimSpace(*req.QuestionType))
	}
	if req.Content != nil {
		q.Content = strings.TrimSpace(*req.Content)
	}
	if req.Options != nil {
		q.Options = trimOptions(*req.Options)
	}
	if req.Answer != nil {
		q.Answer = strings.TrimSpace(*req.Answer)
	}
	if req.Explanation != nil {
		q.Explanation = strings.TrimSpace(*req.Explanation)
	}
	if req.Difficulty != nil {
		q.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		q.Category = strings.TrimSpace(*req.Category)
	}
	if q.Type != domain.QuestionTypeMultipleChoice {
		q.Options = nil
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		if domain.HasCode(err, domain.CodeQuestionNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update question", err)
	}
	s.invalidateCategories(ctx)
	return toQuestionResponse(q), nil
}

func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		if domain.HasCode(err, domain.CodeQuestionNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete question", err)
	}
	s.invalidateCategories(ctx)
	logger.Get().Info("Question deleted", zap.String("questionID", id))
	return nil
}

func (s *questionServiceImpl) ImportText(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("category")}
	}
	difficulty, err := resolveDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	result := domain.ImportQuestions(req.Text, category, difficulty)
	return s.persist(ctx, result)
}

// ImportFile imports an uploaded question file. An empty category falls back to the file name without extension.
func (s *questionServiceImpl) ImportFile(ctx context.Context, filename string, r io.Reader, category string, difficulty int) (*dto.ImportQuestionsResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = categoryFromFilename(filename)
	}
	if category == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("category")}
	}
	difficulty, err := resolveDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read %s: %v", filename, err))
	}
	result := domain.ImportQuestions(string(data), category, difficulty)
	return s.persist(ctx, result)
}

func categoryFromFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ImportDirectory parses every question file in dir concurrently and stores the
// result in one transaction. Each file's category is its name without extension.
// A missing directory imports nothing.
func (s *questionServiceImpl) ImportDirectory(ctx context.Context, dir string, difficulty int) (*dto.ImportQuestionsResponse, error) {
	difficulty, err := resolveDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Get().Warn("Question directory does not exist", zap.String("dir", dir))
			return &dto.ImportQuestionsResponse{IDs: []string{}}, nil
		}
		return nil, domain.NewInternalError("Failed to read question directory", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), questionFileExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	results := make([]domain.ImportResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			result := domain.ImportQuestions(string(data), categoryFromFilename(name), difficulty)
			results[i] = result
			logger.Get().Debug("Parsed question file",
				zap.String("file", name),
				zap.Int("questions", len(result.Questions)),
				zap.Int("skipped", result.Skipped))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to read question files", err)
	}

	var merged domain.ImportResult
	for _, r := range results {
		merged.Questions = append(merged.Questions, r.Questions...)
		merged.Skipped += r.Skipped
	}
	return s.persist(ctx, merged)
}

// persist stores all parsed questions atomically.
func (s *questionServiceImpl) persist(ctx context.Context, result domain.ImportResult) (*dto.ImportQuestionsResponse, error) {
	resp := &dto.ImportQuestionsResponse{Skipped: result.Skipped, IDs: []string{}}
	if len(result.Questions) == 0 {
		return resp, nil
	}

	var ids []string
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ids = ids[:0]
		for _, q := range result.Questions {
			id, err := s.repo.CreateQuestion(txCtx, q)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to import questions", err)
	}

	s.invalidateCategories(ctx)
	resp.Imported = len(ids)
	resp.IDs = ids
	logger.Get().Info("Questions imported", zap.Int("imported", resp.Imported), zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// PreviewQuestions parses text without storing anything.
func (s *questionServiceImpl) PreviewQuestions(ctx context.Context, req dto.PreviewQuestionsRequest) *dto.PreviewQuestionsResponse {
	result := domain.ParseQuestionText(req.Text)
	items := make([]dto.PreviewQuestionItem, len(result.Questions))
	for i, q := range result.Questions {
		items[i] = dto.PreviewQuestionItem{
			QuestionType: string(q.Type),
			Content:      q.Content,
			Options:      q.Options,
			Answer:       q.Answer,
			Explanation:  q.Explanation,
			Markdown:     domain.FormatQuestionMarkdown(q),
		}
	}
	return &dto.PreviewQuestionsResponse{Questions: items, Skipped: result.Skipped}
}

// GetAllCategories serves the category list from the cache when possible.
func (s *questionServiceImpl) GetAllCategories(ctx context.Context) ([]string, error) {
	key := cache.CategoriesKey()
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var categories []string
			if jsonErr := json.Unmarshal([]byte(cached), &categories); jsonErr == nil {
				return categories, nil
			}
			logger.Get().Warn("Discarding malformed categories cache entry", zap.String("key", key))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Categories cache lookup failed", zap.Error(err))
		}
	}

	categories, err := s.repo.GetAllCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get categories", err)
	}
	if categories == nil {
		categories = []string{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.categoriesTTL); err != nil {
				logger.Get().Warn("Failed to cache categories", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (s *questionServiceImpl) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.CategoriesKey()); err != nil {
		logger.Get().Warn("Failed to invalidate categories cache", zap.Error(err))
	}
}
