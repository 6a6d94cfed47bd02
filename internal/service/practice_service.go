package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/cache"
	"quizbank/internal/config"
	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionLockTTL bounds how long a crashed request can keep a session locked.
const sessionLockTTL = 10 * time.Second

// PracticeService runs practice sessions. Session state lives in the cache between requests.
type PracticeService interface {
	StartSession(ctx context.Context, userID string, req dto.StartPracticeRequest) (*dto.PracticeSessionResponse, error)
	GetSession(ctx context.Context, userID, sessionID string) (*dto.PracticeSessionResponse, error)
	SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*dto.AnswerResultResponse, error)
	SkipQuestion(ctx context.Context, userID, sessionID string) (*dto.AnswerResultResponse, error)
	GetSummary(ctx context.Context, userID, sessionID string) (*dto.PracticeSummaryResponse, error)
}

type practiceServiceImpl struct {
	questionRepo domain.QuestionRepository
	attemptRepo  domain.AttemptRepository
	cache        domain.Cache
	cfg          config.PracticeConfig
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	questionRepo domain.QuestionRepository,
	attemptRepo domain.AttemptRepository,
	cache domain.Cache,
	cfg config.PracticeConfig,
) PracticeService {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = domain.DefaultPracticeCount
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = domain.MaxPracticeCount
	}
	return &practiceServiceImpl{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		cache:        cache,
		cfg:          cfg,
	}
}

func (s *practiceServiceImpl) StartSession(ctx context.Context, userID string, req dto.StartPracticeRequest) (*dto.PracticeSessionResponse, error) {
	var verrs domain.ValidationErrors
	category := strings.TrimSpace(req.Category)
	if category == "" {
		verrs = append(verrs, domain.NewMissingFieldError("category"))
	}
	difficulty, err := resolveDifficulty(req.Difficulty)
	if err != nil {
		verrs = append(verrs, err.(domain.ValidationErrors)...)
	}
	count := req.Count
	if count == 0 {
		count = s.cfg.DefaultCount
	}
	if count < 1 || count > s.cfg.MaxCount {
		verrs = append(verrs, domain.NewOutOfRangeError("count", req.Count, 1, s.cfg.MaxCount))
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	questions, err := s.questionRepo.GetRandomQuestions(ctx, count, category, difficulty)
	if err != nil {
		return nil, domain.NewInternalError("Failed to select practice questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No questions found for category %q with difficulty %d", category, difficulty))
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	session := domain.NewPracticeSession(uuid.NewString(), userID, category, difficulty, ids)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Info("Practice session started",
		zap.String("sessionID", session.ID),
		zap.String("userID", userID),
		zap.String("category", category),
		zap.Int("difficulty", difficulty),
		zap.Int("questions", len(ids)))
	return sessionResponse(session, questions[0]), nil
}

func sessionResponse(session *domain.PracticeSession, current *domain.Question) *dto.PracticeSessionResponse {
	resp := &dto.PracticeSessionResponse{
		SessionID:  session.ID,
		Category:   session.Category,
		Difficulty: session.Difficulty,
		Total:      session.Total(),
		Finished:   session.Finished(),
	}
	if current != nil && !session.Finished() {
		resp.Index = session.CurrentIndex + 1
		resp.Question = toPracticeQuestionItem(current)
	} else {
		resp.Index = session.Total()
	}
	return resp
}

func (s *practiceServiceImpl) GetSession(ctx context.Context, userID, sessionID string) (*dto.PracticeSessionResponse, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.touch(ctx, sessionID)
	if session.Finished() {
		return sessionResponse(session, nil), nil
	}
	q, err := s.currentQuestion(ctx, session)
	if err != nil {
		return nil, err
	}
	return sessionResponse(session, q), nil
}

func (s *practiceServiceImpl) SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*dto.AnswerResultResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("answer")}
	}
	return s.record(ctx, userID, sessionID, answer, false)
}

// SkipQuestion records the current question as skipped, which counts as incorrect.
func (s *practiceServiceImpl) SkipQuestion(ctx context.Context, userID, sessionID string) (*dto.AnswerResultResponse, error) {
	return s.record(ctx, userID, sessionID, domain.SkippedAnswer, true)
}

// record grades the current question under the session lock, so concurrent
// submissions cannot record the same question twice.
func (s *practiceServiceImpl) record(ctx context.Context, userID, sessionID, answer string, skipped bool) (*dto.AnswerResultResponse, error) {
	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Finished() {
		return nil, domain.NewSessionFinishedError(sessionID)
	}
	q, err := s.currentQuestion(ctx, session)
	if err != nil {
		return nil, err
	}

	correct := false
	if !skipped {
		correct = domain.IsCorrect(q, answer)
	}
	if err := s.attemptRepo.RecordAttempt(ctx, domain.NewAttempt(userID, q.ID, answer, correct)); err != nil {
		return nil, domain.NewInternalError("Failed to record attempt", err)
	}

	session.Record(answer, correct, skipped)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Debug("Practice answer recorded",
		zap.String("sessionID", sessionID),
		zap.String("questionID", q.ID),
		zap.Bool("correct", correct))
	result := toAnswerResult(q, answer, correct, session.Finished())
	result.Skipped = skipped
	return result, nil
}

func (s *practiceServiceImpl) GetSummary(ctx context.Context, userID, sessionID string) (*dto.PracticeSummaryResponse, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	answered := session.QuestionIDs[:len(session.Answers)]
	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, answered)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session questions", err)
	}
	byID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	results := make([]dto.PracticeResultItem, 0, len(answered))
	for i, id := range answered {
		item := dto.PracticeResultItem{
			QuestionID: id,
			UserAnswer: session.Answers[i],
			IsCorrect:  session.Results[i],
			Skipped:    session.WasSkipped(i),
		}
		// questions deleted since the session started keep their recorded outcome
		if q, ok := byID[id]; ok {
			item.Content = q.Content
			item.Difficulty = q.Difficulty
			item.CorrectAnswer = q.Answer
		}
		results = append(results, item)
	}

	return &dto.PracticeSummaryResponse{
		SessionID: session.ID,
		Total:     session.Total(),
		Answered:  len(session.Answers),
		Correct:   session.CorrectCount(),
		Accuracy:  session.Accuracy(),
		Finished:  session.Finished(),
		Results:   results,
	}, nil
}

func (s *practiceServiceImpl) currentQuestion(ctx context.Context, session *domain.PracticeSession) (*domain.Question, error) {
	id, _ := session.CurrentQuestionID()
	q, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return q, nil
}

// lock takes the per-session answer lock. A held lock means another answer is in flight.
func (s *practiceServiceImpl) lock(ctx context.Context, sessionID string) (func(), error) {
	key := cache.PracticeSessionLockKey(sessionID)
	acquired, err := s.cache.SetNX(ctx, key, uuid.NewString(), sessionLockTTL)
	if err != nil {
		return nil, domain.NewInternalError("Failed to lock practice session", err)
	}
	if !acquired {
		logger.Get().Info("Practice session busy", zap.String("sessionID", sessionID))
		return nil, domain.NewSessionBusyError(sessionID)
	}
	return func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.Get().Warn("Failed to release practice session lock", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}, nil
}

// touch slides the session expiry forward while the user is still viewing it.
func (s *practiceServiceImpl) touch(ctx context.Context, sessionID string) {
	if s.cfg.SessionTTL <= 0 {
		return
	}
	if err := s.cache.Expire(ctx, cache.PracticeSessionKey(sessionID), s.cfg.SessionTTL); err != nil {
		logger.Get().Warn("Failed to refresh practice session ttl", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

// load fetches a session and checks that it belongs to userID.
func (s *practiceServiceImpl) load(ctx context.Context, userID, sessionID string) (*domain.PracticeSession, error) {
	raw, err := s.cache.Get(ctx, cache.PracticeSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("Failed to load practice session", err)
	}

	var session domain.PracticeSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		logger.Get().Error("Corrupt practice session in cache", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to decode practice session", err)
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("Practice session belongs to another user")
	}
	return &session, nil
}

func (s *practiceServiceImpl) save(ctx context.Context, session *domain.PracticeSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("Failed to encode practice session", err)
	}
	if err := s.cache.Set(ctx, cache.PracticeSessionKey(session.ID), string(data), s.cfg.SessionTTL); err != nil {
		return domain.NewInternalError("Failed to store practice session", err)
	}
	return nil
}
