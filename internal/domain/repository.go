package domain

import (
	"context"

	"quizbank/internal/dto"
)

// QuestionRepository defines the interface for question persistence.
// Lookups return (nil, nil) when nothing matches.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *Question) (string, error)
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]*Question, error)
	// GetRandomQuestions samples up to count questions. An empty category or a zero difficulty disables that filter.
	GetRandomQuestions(ctx context.Context, count int, category string, difficulty int) ([]*Question, error)
	ListQuestions(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) ([]*Question, int, error)
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id string) error
	GetAllCategories(ctx context.Context) ([]string, error)
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context, pagination dto.Pagination) ([]*User, int, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, userID string) error
}

// AttemptRepository defines the interface for the append-only answer history.
type AttemptRepository interface {
	RecordAttempt(ctx context.Context, attempt *Attempt) error
	GetAttemptsByUserID(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) ([]AttemptDetail, int, error)
	// GetWrongAttempts returns every incorrect attempt joined with its question, newest first.
	GetWrongAttempts(ctx context.Context, userID string, category string) ([]AttemptDetail, error)
	GetAttemptFacts(ctx context.Context, userID string) ([]AttemptFact, error)
}

// TransactionManager runs fn inside a single database transaction.
// Repositories called with the context passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
