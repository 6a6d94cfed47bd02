package domain

import (
	"strings"
	"time"
)

// QuestionType is inferred from the source text, never chosen by the author.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	}
	return false
}

const (
	MinDifficulty     = 1
	MaxDifficulty     = 3
	DefaultDifficulty = 2
)

// Question is a single entry of the question bank.
type Question struct {
	ID          string
	Type        QuestionType
	Content     string
	Options     []string // display order, multiple choice only
	Answer      string   // canonical answer as authored
	Explanation string
	Difficulty  int // 1: easy, 2: medium, 3: hard
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(questionType QuestionType, content string, options []string, answer, explanation string, difficulty int, category string) *Question {
	now := time.Now()
	return &Question{
		Type:        questionType,
		Content:     content,
		Options:     options,
		Answer:      answer,
		Explanation: explanation,
		Difficulty:  difficulty,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OptionsText joins the options the way they are stored and displayed.
func (q *Question) OptionsText() string {
	return strings.Join(q.Options, "\n")
}

// SplitOptions is the inverse of OptionsText.
func SplitOptions(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Validate validates a question before it is persisted
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Content) == "" {
		errs = append(errs, NewMissingFieldError("content"))
	}
	if strings.TrimSpace(q.Answer) == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if strings.TrimSpace(q.Category) == "" {
		errs = append(errs, NewMissingFieldError("category"))
	}
	if !q.Type.Valid() {
		errs = append(errs, NewInvalidFormatError("question_type", string(q.Type)))
	}
	if q.Type == QuestionTypeMultipleChoice && len(q.Options) == 0 {
		errs = append(errs, NewMissingFieldError("options"))
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		errs = append(errs, NewOutOfRangeError("difficulty", q.Difficulty, MinDifficulty, MaxDifficulty))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DifficultyStars renders difficulty the way the practice pages show it.
func DifficultyStars(difficulty int) string {
	if difficulty <= 0 {
		difficulty = DefaultDifficulty
	}
	return strings.Repeat("★", difficulty)
}

// ImportResult is the outcome of a lenient batch import.
type ImportResult struct {
	Questions []*Question
	Skipped   int
}
