package dto

import "time"

// QuestionResponse represents a question in the API response
// @Description Question bank entry
type QuestionResponse struct {
	ID           string    `json:"id"`
	QuestionType string    `json:"question_type"`
	Content      string    `json:"content"`
	Options      []string  `json:"options,omitempty"`
	Answer       string    `json:"answer"`
	Explanation  string    `json:"explanation,omitempty"`
	Difficulty   int       `json:"difficulty"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateQuestionRequest represents a manually authored question
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	QuestionType string   `json:"question_type" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	Options      []string `json:"options,omitempty"`
	Answer       string   `json:"answer" validate:"required"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   int      `json:"difficulty"`
	Category     string   `json:"category" validate:"required"`
}

// UpdateQuestionRequest only changes the fields that are present.
type UpdateQuestionRequest struct {
	QuestionType *string   `json:"question_type,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Options      *[]string `json:"options,omitempty"`
	Answer       *string   `json:"answer,omitempty"`
	Explanation  *string   `json:"explanation,omitempty"`
	Difficulty   *int      `json:"difficulty,omitempty"`
	Category     *string   `json:"category,omitempty"`
}

// QuestionFilters are the query parameters of the admin question list.
type QuestionFilters struct {
	Category     string `query:"category"`
	Difficulty   int    `query:"difficulty"`
	QuestionType string `query:"question_type"`
}

// QuestionListResponse is the response for listing questions.
type QuestionListResponse struct {
	Questions      []QuestionResponse `json:"questions"`
	PaginationInfo PaginationInfo     `json:"pagination_info"`
}

// ImportQuestionsRequest carries question text in the blank-line separated format.
// @Description Request body for importing questions from text
type ImportQuestionsRequest struct {
	Text       string `json:"text" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty"`
}

// ImportQuestionsResponse reports how many blocks were stored and how many were skipped.
type ImportQuestionsResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	IDs      []string `json:"ids"`
}

// PreviewQuestionsRequest parses text without storing anything.
type PreviewQuestionsRequest struct {
	Text string `json:"text" validate:"required"`
}

// PreviewQuestionItem is a parsed question together with its markdown rendering.
type PreviewQuestionItem struct {
	QuestionType string   `json:"question_type"`
	Content      string   `json:"content"`
	Options      []string `json:"options,omitempty"`
	Answer       string   `json:"answer"`
	Explanation  string   `json:"explanation,omitempty"`
	Markdown     string   `json:"markdown"`
}

// PreviewQuestionsResponse is the result of a dry-run import.
type PreviewQuestionsResponse struct {
	Questions []PreviewQuestionItem `json:"questions"`
	Skipped   int                   `json:"skipped"`
}

// CategoriesResponse lists the distinct question categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
