package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quizbank/internal/adapter"
	"quizbank/internal/cache"
	"quizbank/internal/config"
	"quizbank/internal/domain"
	"quizbank/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var practiceQuestions = []*domain.Question{
	{ID: "q1", Type: domain.QuestionTypeMultipleChoice, Content: "进程和线程的主要区别是什么？",
		Options: []string{"A. 进程是资源分配的基本单位", "B. 线程是资源分配的基本单位"}, Answer: "A",
		Explanation: "线程是调度的基本单位", Difficulty: 2, Category: "OS"},
	{ID: "q2", Type: domain.QuestionTypeTrueFalse, Content: "死锁产生的必要条件包括循环等待。",
		Answer: "对", Difficulty: 2, Category: "OS"},
	{ID: "q3", Type: domain.QuestionTypeShortAnswer, Content: "页面置换算法LRU的全称？",
		Answer: "Least Recently Used", Difficulty: 2, Category: "OS"},
}

type practiceFixture struct {
	svc         PracticeService
	questions   *MockQuestionRepository
	attempts    *MockAttemptRepository
	cache       *adapter.MemoryCacheAdapter
	recorded    []*domain.Attempt
	sessionTTL  time.Duration
	defaultSize int
}

func newPracticeFixture(t *testing.T) *practiceFixture {
	f := &practiceFixture{
		questions:   new(MockQuestionRepository),
		attempts:    new(MockAttemptRepository),
		cache:       adapter.NewMemoryCacheAdapter(),
		sessionTTL:  time.Hour,
		defaultSize: 3,
	}
	for _, q := range practiceQuestions {
		f.questions.On("GetQuestionByID", mock.Anything, q.ID).Return(q, nil).Maybe()
	}
	f.attempts.On("RecordAttempt", mock.Anything, mock.AnythingOfType("*domain.Attempt")).
		Return(nil).
		Run(func(args mock.Arguments) {
			f.recorded = append(f.recorded, args.Get(1).(*domain.Attempt))
		}).Maybe()
	f.svc = NewPracticeService(f.questions, f.attempts, f.cache, config.PracticeConfig{
		SessionTTL:   f.sessionTTL,
		DefaultCount: f.defaultSize,
		MaxCount:     20,
	})
	return f
}

func (f *practiceFixture) start(t *testing.T, userID string) *dto.PracticeSessionResponse {
	f.questions.On("GetRandomQuestions", mock.Anything, 3, "OS", 2).Return(practiceQuestions, nil).Once()
	resp, err := f.svc.StartSession(context.Background(), userID, dto.StartPracticeRequest{Category: "OS"})
	require.NoError(t, err)
	return resp
}

func TestPracticeService_StartSession(t *testing.T) {
	f := newPracticeFixture(t)
	resp := f.start(t, "u1")

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, resp.Index)
	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Finished)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q1", resp.Question.ID)
	assert.Len(t, resp.Question.Options, 2)

	_, err := f.cache.Get(context.Background(), cache.PracticeSessionKey(resp.SessionID))
	assert.NoError(t, err)
}

func TestPracticeService_StartSession_Validation(t *testing.T) {
	f := newPracticeFixture(t)

	tests := []struct {
		name  string
		req   dto.StartPracticeRequest
		field string
	}{
		{"missing category", dto.StartPracticeRequest{Category: " "}, "category"},
		{"difficulty too high", dto.StartPracticeRequest{Category: "OS", Difficulty: 5}, "difficulty"},
		{"count too high", dto.StartPracticeRequest{Category: "OS", Count: 21}, "count"},
		{"negative count", dto.StartPracticeRequest{Category: "OS", Count: -1}, "count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.StartSession(context.Background(), "u1", tt.req)
			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
	f.questions.AssertNotCalled(t, "GetRandomQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPracticeService_StartSession_NoQuestions(t *testing.T) {
	f := newPracticeFixture(t)
	f.questions.On("GetRandomQuestions", mock.Anything, 5, "空类别", 3).Return([]*domain.Question{}, nil)

	_, err := f.svc.StartSession(context.Background(), "u1", dto.StartPracticeRequest{Category: "空类别", Difficulty: 3, Count: 5})
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))
}

func TestPracticeService_FullSession(t *testing.T) {
	f := newPracticeFixture(t)
	ctx := context.Background()
	session := f.start(t, "u1")

	// "a. anything" keeps only its first character
	res, err := f.svc.SubmitAnswer(ctx, "u1", session.SessionID, "a. 进程")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, "A", res.CorrectAnswer)
	assert.Equal(t, "线程是调度的基本单位", res.Explanation)
	assert.False(t, res.Finished)

	current, err := f.svc.GetSession(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.Index)
	assert.Equal(t, "q2", current.Question.ID)

	res, err = f.svc.SkipQuestion(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.True(t, res.Skipped)
	assert.Equal(t, domain.SkippedAnswer, res.UserAnswer)

	res, err = f.svc.SubmitAnswer(ctx, "u1", session.SessionID, "least recently used")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.True(t, res.Finished)

	_, err = f.svc.SubmitAnswer(ctx, "u1", session.SessionID, "A")
	assert.True(t, domain.HasCode(err, domain.CodeSessionFinished))

	finished, err := f.svc.GetSession(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	assert.True(t, finished.Finished)
	assert.Nil(t, finished.Question)

	require.Len(t, f.recorded, 3)
	assert.Equal(t, "q2", f.recorded[1].QuestionID)
	assert.Equal(t, domain.SkippedAnswer, f.recorded[1].UserAnswer)
	assert.False(t, f.recorded[1].IsCorrect)

	f.questions.On("GetQuestionsByIDs", mock.Anything, []string{"q1", "q2", "q3"}).Return(practiceQuestions, nil)
	summary, err := f.svc.GetSummary(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Answered)
	assert.Equal(t, 2, summary.Correct)
	assert.InDelta(t, 66.67, summary.Accuracy, 0.01)
	require.Len(t, summary.Results, 3)
	assert.True(t, summary.Results[1].Skipped)
	assert.Equal(t, "对", summary.Results[1].CorrectAnswer)
}

func TestPracticeService_SubmitAnswer_Empty(t *testing.T) {
	f := newPracticeFixture(t)
	session := f.start(t, "u1")

	_, err := f.svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "   ")
	var verrs domain.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Empty(t, f.recorded)
}

func TestPracticeService_SessionOwnership(t *testing.T) {
	f := newPracticeFixture(t)
	session := f.start(t, "u1")

	_, err := f.svc.SubmitAnswer(context.Background(), "u2", session.SessionID, "A")
	assert.True(t, domain.HasCode(err, domain.CodeForbidden))
	_, err = f.svc.GetSummary(context.Background(), "u2", session.SessionID)
	assert.True(t, domain.HasCode(err, domain.CodeForbidden))
	assert.Empty(t, f.recorded)
}

func TestPracticeService_UnknownSession(t *testing.T) {
	f := newPracticeFixture(t)

	_, err := f.svc.GetSession(context.Background(), "u1", "no-such-session")
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
}

func TestPracticeService_PartialSummary(t *testing.T) {
	f := newPracticeFixture(t)
	session := f.start(t, "u1")

	_, err := f.svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "B")
	require.NoError(t, err)

	// q1 was deleted after it was answered
	f.questions.On("GetQuestionsByIDs", mock.Anything, []string{"q1"}).Return([]*domain.Question{}, nil)
	summary, err := f.svc.GetSummary(context.Background(), "u1", session.SessionID)
	require.NoError(t, err)
	assert.False(t, summary.Finished)
	assert.Equal(t, 1, summary.Answered)
	assert.Equal(t, 0, summary.Correct)
	assert.Equal(t, 0.0, summary.Accuracy)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "B", summary.Results[0].UserAnswer)
	assert.Empty(t, summary.Results[0].Content)
}

func TestPracticeService_RecordFailureKeepsPosition(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	memCache := adapter.NewMemoryCacheAdapter()
	svc := NewPracticeService(questions, attempts, memCache, config.PracticeConfig{SessionTTL: time.Hour})

	questions.On("GetRandomQuestions", mock.Anything, domain.DefaultPracticeCount, "OS", 2).Return(practiceQuestions[:1], nil)
	questions.On("GetQuestionByID", mock.Anything, "q1").Return(practiceQuestions[0], nil)
	attempts.On("RecordAttempt", mock.Anything, mock.Anything).Return(errors.New("database is locked")).Once()

	session, err := svc.StartSession(context.Background(), "u1", dto.StartPracticeRequest{Category: "OS"})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "A")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))

	current, err := svc.GetSession(context.Background(), "u1", session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Index)
	assert.False(t, current.Finished)

	// the failed request released the session lock
	attempts.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
	res, err := svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "A")
	require.NoError(t, err)
	assert.True(t, res.Finished)
}

func TestPracticeService_ConcurrentSubmitsRecordOnce(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := NewPracticeService(questions, attempts, adapter.NewMemoryCacheAdapter(), config.PracticeConfig{SessionTTL: time.Hour})

	questions.On("GetRandomQuestions", mock.Anything, domain.DefaultPracticeCount, "OS", 2).Return(practiceQuestions[:1], nil)
	questions.On("GetQuestionByID", mock.Anything, "q1").Return(practiceQuestions[0], nil)
	var recorded atomic.Int32
	attempts.On("RecordAttempt", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) {
			recorded.Add(1)
			time.Sleep(5 * time.Millisecond)
		})

	session, err := svc.StartSession(context.Background(), "u1", dto.StartPracticeRequest{Category: "OS"})
	require.NoError(t, err)

	const submits = 10
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		errs      = make(chan error, submits)
	)
	for i := 0; i < submits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "A"); err != nil {
				errs <- err
				return
			}
			succeeded.Add(1)
		}()
	}
	wg.Wait()
	close(errs)

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(1), recorded.Load())
	for err := range errs {
		assert.True(t, domain.HasCode(err, domain.CodeSessionBusy) || domain.HasCode(err, domain.CodeSessionFinished), err.Error())
	}
}

func TestPracticeService_SubmitAnswer_LockedSession(t *testing.T) {
	f := newPracticeFixture(t)
	session := f.start(t, "u1")

	locked, err := f.cache.SetNX(context.Background(), cache.PracticeSessionLockKey(session.SessionID), "other-request", time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	_, err = f.svc.SubmitAnswer(context.Background(), "u1", session.SessionID, "A")
	assert.True(t, domain.HasCode(err, domain.CodeSessionBusy))
	_, err = f.svc.SkipQuestion(context.Background(), "u1", session.SessionID)
	assert.True(t, domain.HasCode(err, domain.CodeSessionBusy))
	assert.Empty(t, f.recorded)
}

func TestPracticeService_SubmitAnswer_LockError(t *testing.T) {
	c := new(MockCache)
	attempts := new(MockAttemptRepository)
	svc := NewPracticeService(new(MockQuestionRepository), attempts, c, config.PracticeConfig{SessionTTL: time.Hour})

	c.On("SetNX", mock.Anything, cache.PracticeSessionLockKey("s1"), mock.AnythingOfType("string"), 10*time.Second).
		Return(false, errors.New("redis down"))

	_, err := svc.SubmitAnswer(context.Background(), "u1", "s1", "A")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	attempts.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
}

func TestPracticeService_TypedSkipTokenIsGraded(t *testing.T) {
	f := newPracticeFixture(t)
	ctx := context.Background()
	session := f.start(t, "u1")

	_, err := f.svc.SubmitAnswer(ctx, "u1", session.SessionID, "A")
	require.NoError(t, err)

	// q2 is true/false; the typed text is an answer, not a skip
	res, err := f.svc.SubmitAnswer(ctx, "u1", session.SessionID, domain.SkippedAnswer)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.False(t, res.IsCorrect)

	res, err = f.svc.SkipQuestion(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	f.questions.On("GetQuestionsByIDs", mock.Anything, []string{"q1", "q2", "q3"}).Return(practiceQuestions, nil)
	summary, err := f.svc.GetSummary(ctx, "u1", session.SessionID)
	require.NoError(t, err)
	require.Len(t, summary.Results, 3)
	assert.False(t, summary.Results[1].Skipped)
	assert.Equal(t, domain.SkippedAnswer, summary.Results[1].UserAnswer)
	assert.True(t, summary.Results[2].Skipped)
}

func TestPracticeService_GetSession_RefreshesTTL(t *testing.T) {
	questions := new(MockQuestionRepository)
	c := new(MockCache)
	svc := NewPracticeService(questions, new(MockAttemptRepository), c, config.PracticeConfig{SessionTTL: 2 * time.Hour})

	session := domain.NewPracticeSession("s1", "u1", "OS", 2, []string{"q1"})
	raw, err := json.Marshal(session)
	require.NoError(t, err)
	key := cache.PracticeSessionKey("s1")
	c.On("Get", mock.Anything, key).Return(string(raw), nil)
	c.On("Expire", mock.Anything, key, 2*time.Hour).Return(nil).Once()
	questions.On("GetQuestionByID", mock.Anything, "q1").Return(practiceQuestions[0], nil)

	resp, err := svc.GetSession(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "q1", resp.Question.ID)
	c.AssertExpectations(t)

	// a refresh failure does not fail the read
	c.On("Expire", mock.Anything, key, 2*time.Hour).Return(errors.New("redis down")).Once()
	_, err = svc.GetSession(context.Background(), "u1", "s1")
	assert.NoError(t, err)
}
