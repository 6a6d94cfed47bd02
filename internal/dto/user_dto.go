package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest represents the request body for creating an account.
// @Description Request body for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest represents the request body for logging in.
// @Description Request body for user login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	TokenType    string              `json:"token_type"`
	ExpiresIn    int64               `json:"expires_in"` // seconds until the access token expires
	User         UserProfileResponse `json:"user"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// UserProfileResponse defines the structure for a user's profile information.
type UserProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is used by administrators to add accounts.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest only changes the fields that are present.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

// UserListResponse is the response for the admin user listing.
type UserListResponse struct {
	Users          []UserProfileResponse `json:"users"`
	PaginationInfo PaginationInfo        `json:"pagination_info"`
}

// --- Pagination and Filtering DTOs ---

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
	Page   int `query:"page"`   // Page number (alternative to offset)
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// AttemptFilters defines parameters for filtering lists of attempts.
type AttemptFilters struct {
	Category  string `query:"category"`
	StartDate string `query:"start_date"` // Format: YYYY-MM-DD
	EndDate   string `query:"end_date"`   // Format: YYYY-MM-DD
	IsCorrect *bool  `query:"is_correct"` // Pointer for tri-state: true, false, or omit for no filter
}

// WrongQuestionFilters defines parameters for the wrong question list.
type WrongQuestionFilters struct {
	Category string `query:"category"`
	Sort     string `query:"sort"` // recent, difficulty_asc, difficulty_desc
}

// --- Attempt history DTOs ---

// AttemptItem represents a single recorded answer in a list.
type AttemptItem struct {
	AttemptID   string    `json:"attempt_id"`
	QuestionID  string    `json:"question_id"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Difficulty  int       `json:"difficulty"`
	UserAnswer  string    `json:"user_answer"`
	IsCorrect   bool      `json:"is_correct"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// AttemptsResponse is the response for listing a user's attempts.
type AttemptsResponse struct {
	Attempts       []AttemptItem  `json:"attempts"`
	PaginationInfo PaginationInfo `json:"pagination_info"`
}

// --- Wrong question DTOs ---

// WrongQuestionItem is the latest wrong attempt of one question.
type WrongQuestionItem struct {
	AttemptID     string    `json:"attempt_id"`
	QuestionID    string    `json:"question_id"`
	QuestionType  string    `json:"question_type"`
	Content       string    `json:"content"`
	Options       []string  `json:"options,omitempty"`
	Category      string    `json:"category"`
	Difficulty    int       `json:"difficulty"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
	AttemptedAt   time.Time `json:"attempted_at"`
}

// WrongQuestionsResponse lists wrong questions together with per-category totals.
type WrongQuestionsResponse struct {
	TotalWrong     int                 `json:"total_wrong"`
	ByCategory     map[string]int      `json:"by_category"`
	Questions      []WrongQuestionItem `json:"questions"`
	PaginationInfo PaginationInfo      `json:"pagination_info"`
}

// ReviewAnswerRequest answers a wrong question again outside of a practice session.
type ReviewAnswerRequest struct {
	Answer string `json:"answer"`
}

// --- Statistics DTOs ---

// GroupStatItem aggregates attempts for one category or difficulty.
type GroupStatItem struct {
	Key      string  `json:"key"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// DailyProgressItem aggregates attempts of one calendar day.
type DailyProgressItem struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// UserStatsResponse is the learning dashboard payload.
type UserStatsResponse struct {
	TotalAttempts  int                 `json:"total_attempts"`
	CorrectAnswers int                 `json:"correct_answers"`
	Accuracy       float64             `json:"accuracy"`
	Streak         int                 `json:"streak"`
	ByCategory     []GroupStatItem     `json:"by_category"`
	ByDifficulty   []GroupStatItem     `json:"by_difficulty"`
	DailyProgress  []DailyProgressItem `json:"daily_progress"`
}
