package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dateFilterLayout is the format of the start_date and end_date filters.
const dateFilterLayout = "2006-01-02"

// UserService covers the signed-in user's own data and the admin account management.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GetUserAttempts(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptsResponse, error)
	GetWrongQuestions(ctx context.Context, userID string, filters dto.WrongQuestionFilters, pagination dto.Pagination) (*dto.WrongQuestionsResponse, error)
	ReviewWrongQuestion(ctx context.Context, userID, questionID, answer string) (*dto.AnswerResultResponse, error)
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)

	ListUsers(ctx context.Context, pagination dto.Pagination) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserProfileResponse, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error)
	DeleteUser(ctx context.Context, actingUserID, userID string) error
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	attemptRepo  domain.AttemptRepository
	questionRepo domain.QuestionRepository
	now          func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	attemptRepo domain.AttemptRepository,
	questionRepo domain.QuestionRepository,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

func (s *userServiceImpl) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User %s not found", userID))
	}
	return user, nil
}

// GetUserProfile retrieves a user's profile information.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserProfileResponse(user), nil
}

func validateDateFilters(filters dto.AttemptFilters) error {
	var errs domain.ValidationErrors
	if filters.StartDate != "" {
		if _, err := time.Parse(dateFilterLayout, filters.StartDate); err != nil {
			errs = append(errs, domain.NewInvalidFormatError("start_date", filters.StartDate))
		}
	}
	if filters.EndDate != "" {
		if _, err := time.Parse(dateFilterLayout, filters.EndDate); err != nil {
			errs = append(errs, domain.NewInvalidFormatError("end_date", filters.EndDate))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GetUserAttempts retrieves a user's answer history, newest first.
func (s *userServiceImpl) GetUserAttempts(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptsResponse, error) {
	if err := validateDateFilters(filters); err != nil {
		return nil, err
	}
	details, total, err := s.attemptRepo.GetAttemptsByUserID(ctx, userID, filters, pagination)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get attempts", err)
	}

	items := make([]dto.AttemptItem, len(details))
	for i, d := range details {
		items[i] = dto.AttemptItem{
			AttemptID:   d.ID,
			QuestionID:  d.QuestionID,
			Content:     d.Question.Content,
			Category:    d.Question.Category,
			Difficulty:  d.Question.Difficulty,
			UserAnswer:  d.UserAnswer,
			IsCorrect:   d.IsCorrect,
			AttemptedAt: d.AttemptedAt,
		}
	}
	return &dto.AttemptsResponse{
		Attempts:       items,
		PaginationInfo: newPaginationInfo(total, pagination),
	}, nil
}

// GetWrongQuestions lists every question the user got wrong at least once, keeping the latest wrong attempt.
func (s *userServiceImpl) GetWrongQuestions(ctx context.Context, userID string, filters dto.WrongQuestionFilters, pagination dto.Pagination) (*dto.WrongQuestionsResponse, error) {
	if !domain.ValidWrongSort(filters.Sort) {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("sort", filters.Sort)}
	}
	details, err := s.attemptRepo.GetWrongAttempts(ctx, userID, strings.TrimSpace(filters.Category))
	if err != nil {
		return nil, domain.NewInternalError("Failed to get wrong questions", err)
	}

	wrong := domain.LatestWrongPerQuestion(details)
	domain.SortWrongQuestions(wrong, filters.Sort)

	page := pageOf(wrong, pagination)
	items := make([]dto.WrongQuestionItem, len(page))
	for i, d := range page {
		items[i] = dto.WrongQuestionItem{
			AttemptID:     d.ID,
			QuestionID:    d.QuestionID,
			QuestionType:  string(d.Question.Type),
			Content:       d.Question.Content,
			Options:       d.Question.Options,
			Category:      d.Question.Category,
			Difficulty:    d.Question.Difficulty,
			UserAnswer:    d.UserAnswer,
			CorrectAnswer: d.Question.Answer,
			Explanation:   d.Question.Explanation,
			AttemptedAt:   d.AttemptedAt,
		}
	}
	return &dto.WrongQuestionsResponse{
		TotalWrong:     len(wrong),
		ByCategory:     domain.CountByCategory(wrong),
		Questions:      items,
		PaginationInfo: newPaginationInfo(len(wrong), pagination),
	}, nil
}

// ReviewWrongQuestion answers a question again outside a practice session and records the attempt.
func (s *userServiceImpl) ReviewWrongQuestion(ctx context.Context, userID, questionID, answer string) (*dto.AnswerResultResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("answer")}
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(questionID)
	}

	correct := domain.IsCorrect(q, answer)
	if err := s.attemptRepo.RecordAttempt(ctx, domain.NewAttempt(userID, q.ID, answer, correct)); err != nil {
		return nil, domain.NewInternalError("Failed to record attempt", err)
	}
	return toAnswerResult(q, answer, correct, true), nil
}

// GetUserStats aggregates the learning dashboard.
func (s *userServiceImpl) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	var facts []domain.AttemptFact
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.getUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		facts, err = s.attemptRepo.GetAttemptFacts(gctx, userID)
		if err != nil {
			return domain.NewInternalError("Failed to get attempt statistics", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := domain.ComputeUserStats(facts, s.now())
	return &dto.UserStatsResponse{
		TotalAttempts:  stats.TotalAttempts,
		CorrectAnswers: stats.CorrectAnswers,
		Accuracy:       stats.Accuracy,
		Streak:         stats.Streak,
		ByCategory:     toGroupStatItems(stats.ByCategory),
		ByDifficulty:   toGroupStatItems(stats.ByDifficulty),
		DailyProgress:  toDailyProgressItems(stats.DailyProgress),
	}, nil
}

func toGroupStatItems(groups []domain.GroupStat) []dto.GroupStatItem {
	items := make([]dto.GroupStatItem, len(groups))
	for i, g := range groups {
		items[i] = dto.GroupStatItem{Key: g.Key, Attempts: g.Attempts, Correct: g.Correct, Accuracy: g.Accuracy()}
	}
	return items
}

func toDailyProgressItems(days []domain.GroupStat) []dto.DailyProgressItem {
	items := make([]dto.DailyProgressItem, len(days))
	for i, d := range days {
		items[i] = dto.DailyProgressItem{Date: d.Key, Attempts: d.Attempts, Correct: d.Correct}
	}
	return items
}

// --- Administration ---

func (s *userServiceImpl) ListUsers(ctx context.Context, pagination dto.Pagination) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.ListUsers(ctx, pagination)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list users", err)
	}
	items := make([]dto.UserProfileResponse, len(users))
	for i, u := range users {
		items[i] = *toUserProfileResponse(u)
	}
	return &dto.UserListResponse{
		Users:          items,
		PaginationInfo: newPaginationInfo(total, pagination),
	}, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserProfileResponse, error) {
	user, err := newUserAccount(req.Username, req.Password, req.Email, req.IsAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if domain.HasCode(err, domain.CodeDuplicate) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to create user", err)
	}
	logger.Get().Info("User created by admin", zap.String("userID", user.ID), zap.Bool("isAdmin", user.IsAdmin))
	return toUserProfileResponse(user), nil
}

// UpdateUser changes only the provided fields. A new password is re-hashed.
func (s *userServiceImpl) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Password != nil {
		if err := domain.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, domain.NewInternalError("Failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if domain.HasCode(err, domain.CodeDuplicate) || domain.HasCode(err, domain.CodeNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update user", err)
	}
	return toUserProfileResponse(user), nil
}

// DeleteUser removes an account and its history. Administrators cannot delete themselves.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actingUserID, userID string) error {
	if actingUserID == userID {
		return domain.NewForbiddenError("Administrators cannot delete their own account")
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if domain.HasCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete user", err)
	}
	logger.Get().Info("User deleted", zap.String("userID", userID), zap.String("deletedBy", actingUserID))
	return nil
}
