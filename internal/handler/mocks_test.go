package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/handler"
	"quizbank/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockAuthService
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfileResponse, error)
	LoginFunc        func(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfileResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

// ValidateJWT accepts the fixed test tokens "user-token" and "admin-token".
func (m *MockAuthService) ValidateJWT(_ context.Context, tokenString string) (*dto.AuthClaims, error) {
	switch tokenString {
	case "user-token":
		return &dto.AuthClaims{UserID: testUserID, Username: "alice", TokenType: "access"}, nil
	case "admin-token":
		return &dto.AuthClaims{UserID: testAdminID, Username: "admin", IsAdmin: true, TokenType: "access"}, nil
	}
	return nil, errors.New("invalid jwt token")
}
func (m *MockAuthService) CreateJWT(context.Context, *domain.User, time.Duration, string) (string, error) {
	panic("MockAuthService.CreateJWT not implemented")
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}

// MockQuestionService
type MockQuestionService struct {
	CreateQuestionFunc   func(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestionFunc      func(ctx context.Context, id string) (*dto.QuestionResponse, error)
	ListQuestionsFunc    func(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) (*dto.QuestionListResponse, error)
	UpdateQuestionFunc   func(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestionFunc   func(ctx context.Context, id string) error
	ImportTextFunc       func(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error)
	ImportFileFunc       func(ctx context.Context, filename string, r io.Reader, category string, difficulty int) (*dto.ImportQuestionsResponse, error)
	PreviewQuestionsFunc func(ctx context.Context, req dto.PreviewQuestionsRequest) *dto.PreviewQuestionsResponse
	GetAllCategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, req)
	}
	panic("MockQuestionService.CreateQuestionFunc not implemented")
}
func (m *MockQuestionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	if m.GetQuestionFunc != nil {
		return m.GetQuestionFunc(ctx, id)
	}
	panic("MockQuestionService.GetQuestionFunc not implemented")
}
func (m *MockQuestionService) ListQuestions(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) (*dto.QuestionListResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, filters, pagination)
	}
	panic("MockQuestionService.ListQuestionsFunc not implemented")
}
func (m *MockQuestionService) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, id, req)
	}
	panic("MockQuestionService.UpdateQuestionFunc not implemented")
}
func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteQuestionFunc not implemented")
}
func (m *MockQuestionService) ImportText(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error) {
	if m.ImportTextFunc != nil {
		return m.ImportTextFunc(ctx, req)
	}
	panic("MockQuestionService.ImportTextFunc not implemented")
}
func (m *MockQuestionService) ImportFile(ctx context.Context, filename string, r io.Reader, category string, difficulty int) (*dto.ImportQuestionsResponse, error) {
	if m.ImportFileFunc != nil {
		return m.ImportFileFunc(ctx, filename, r, category, difficulty)
	}
	panic("MockQuestionService.ImportFileFunc not implemented")
}
func (m *MockQuestionService) ImportDirectory(context.Context, string, int) (*dto.ImportQuestionsResponse, error) {
	panic("MockQuestionService.ImportDirectory not implemented")
}
func (m *MockQuestionService) PreviewQuestions(ctx context.Context, req dto.PreviewQuestionsRequest) *dto.PreviewQuestionsResponse {
	if m.PreviewQuestionsFunc != nil {
		return m.PreviewQuestionsFunc(ctx, req)
	}
	panic("MockQuestionService.PreviewQuestionsFunc not implemented")
}
func (m *MockQuestionService) GetAllCategories(ctx context.Context) ([]string, error) {
	if m.GetAllCategoriesFunc != nil {
		return m.GetAllCategoriesFunc(ctx)
	}
	panic("MockQuestionService.GetAllCategoriesFunc not implemented")
}

// MockPracticeService
type MockPracticeService struct {
	StartSessionFunc func(ctx context.Context, userID string, req dto.StartPracticeRequest) (*dto.PracticeSessionResponse, error)
	GetSessionFunc   func(ctx context.Context, userID, sessionID string) (*dto.PracticeSessionResponse, error)
	SubmitAnswerFunc func(ctx context.Context, userID, sessionID, answer string) (*dto.AnswerResultResponse, error)
	SkipQuestionFunc func(ctx context.Context, userID, sessionID string) (*dto.AnswerResultResponse, error)
	GetSummaryFunc   func(ctx context.Context, userID, sessionID string) (*dto.PracticeSummaryResponse, error)
}

func (m *MockPracticeService) StartSession(ctx context.Context, userID string, req dto.StartPracticeRequest) (*dto.PracticeSessionResponse, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, userID, req)
	}
	panic("MockPracticeService.StartSessionFunc not implemented")
}
func (m *MockPracticeService) GetSession(ctx context.Context, userID, sessionID string) (*dto.PracticeSessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, userID, sessionID)
	}
	panic("MockPracticeService.GetSessionFunc not implemented")
}
func (m *MockPracticeService) SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*dto.AnswerResultResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, userID, sessionID, answer)
	}
	panic("MockPracticeService.SubmitAnswerFunc not implemented")
}
func (m *MockPracticeService) SkipQuestion(ctx context.Context, userID, sessionID string) (*dto.AnswerResultResponse, error) {
	if m.SkipQuestionFunc != nil {
		return m.SkipQuestionFunc(ctx, userID, sessionID)
	}
	panic("MockPracticeService.SkipQuestionFunc not implemented")
}
func (m *MockPracticeService) GetSummary(ctx context.Context, userID, sessionID string) (*dto.PracticeSummaryResponse, error) {
	if m.GetSummaryFunc != nil {
		return m.GetSummaryFunc(ctx, userID, sessionID)
	}
	panic("MockPracticeService.GetSummaryFunc not implemented")
}

// MockUserService
type MockUserService struct {
	GetUserProfileFunc      func(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GetUserAttemptsFunc     func(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptsResponse, error)
	GetWrongQuestionsFunc   func(ctx context.Context, userID string, filters dto.WrongQuestionFilters, pagination dto.Pagination) (*dto.WrongQuestionsResponse, error)
	ReviewWrongQuestionFunc func(ctx context.Context, userID, questionID, answer string) (*dto.AnswerResultResponse, error)
	GetUserStatsFunc        func(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	ListUsersFunc           func(ctx context.Context, pagination dto.Pagination) (*dto.UserListResponse, error)
	CreateUserFunc          func(ctx context.Context, req dto.CreateUserRequest) (*dto.UserProfileResponse, error)
	UpdateUserFunc          func(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error)
	DeleteUserFunc          func(ctx context.Context, actingUserID, userID string) error
}

func (m *MockUserService) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	panic("MockUserService.GetUserProfileFunc not implemented")
}
func (m *MockUserService) GetUserAttempts(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptsResponse, error) {
	if m.GetUserAttemptsFunc != nil {
		return m.GetUserAttemptsFunc(ctx, userID, filters, pagination)
	}
	panic("MockUserService.GetUserAttemptsFunc not implemented")
}
func (m *MockUserService) GetWrongQuestions(ctx context.Context, userID string, filters dto.WrongQuestionFilters, pagination dto.Pagination) (*dto.WrongQuestionsResponse, error) {
	if m.GetWrongQuestionsFunc != nil {
		return m.GetWrongQuestionsFunc(ctx, userID, filters, pagination)
	}
	panic("MockUserService.GetWrongQuestionsFunc not implemented")
}
func (m *MockUserService) ReviewWrongQuestion(ctx context.Context, userID, questionID, answer string) (*dto.AnswerResultResponse, error) {
	if m.ReviewWrongQuestionFunc != nil {
		return m.ReviewWrongQuestionFunc(ctx, userID, questionID, answer)
	}
	panic("MockUserService.ReviewWrongQuestionFunc not implemented")
}
func (m *MockUserService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	if m.GetUserStatsFunc != nil {
		return m.GetUserStatsFunc(ctx, userID)
	}
	panic("MockUserService.GetUserStatsFunc not implemented")
}
func (m *MockUserService) ListUsers(ctx context.Context, pagination dto.Pagination) (*dto.UserListResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, pagination)
	}
	panic("MockUserService.ListUsersFunc not implemented")
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserProfileResponse, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	panic("MockUserService.CreateUserFunc not implemented")
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateUserFunc not implemented")
}
func (m *MockUserService) DeleteUser(ctx context.Context, actingUserID, userID string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, actingUserID, userID)
	}
	panic("MockUserService.DeleteUserFunc not implemented")
}

// --- Test app ---

const (
	testUserID     = "01HZY3K6X8Q2W5N7R9T1V3B5D7"
	testAdminID    = "01HZY3K6X8Q2W5N7R9T1V3B5A1"
	testQuestionID = "01HZY3K6X8Q2W5N7R9T1V3B5Q1"
	testSessionID  = "6f1c1f5e-8a3b-4c2d-9e0f-112233445566"
)

type testServices struct {
	auth     *MockAuthService
	question *MockQuestionService
	practice *MockPracticeService
	user     *MockUserService
}

func newTestApp() (*fiber.App, *testServices) {
	svcs := &testServices{
		auth:     &MockAuthService{},
		question: &MockQuestionService{},
		practice: &MockPracticeService{},
		user:     &MockUserService{},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.Handlers{
		Auth:     handler.NewAuthHandler(svcs.auth),
		Question: handler.NewQuestionHandler(svcs.question),
		Practice: handler.NewPracticeHandler(svcs.practice),
		User:     handler.NewUserHandler(svcs.user),
	}, svcs.auth)
	return app, svcs
}

// doRequest sends body as JSON (when non-nil) with an optional bearer token.
func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
