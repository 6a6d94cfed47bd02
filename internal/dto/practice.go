package dto

// StartPracticeRequest selects the questions of a new practice session.
// @Description Request body for starting a practice session
type StartPracticeRequest struct {
	Category   string `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty"` // 1..3, defaults to 2
	Count      int    `json:"count"`      // defaults to the configured session size
}

// PracticeQuestionItem is a question as shown while practising; it never carries the answer.
type PracticeQuestionItem struct {
	ID           string   `json:"id"`
	QuestionType string   `json:"question_type"`
	Content      string   `json:"content"`
	Options      []string `json:"options,omitempty"`
	Difficulty   int      `json:"difficulty"`
	Category     string   `json:"category"`
}

// PracticeSessionResponse describes the session and its current question.
type PracticeSessionResponse struct {
	SessionID  string                `json:"session_id"`
	Category   string                `json:"category"`
	Difficulty int                   `json:"difficulty"`
	Index      int                   `json:"index"` // 1-based position of the current question
	Total      int                   `json:"total"`
	Finished   bool                  `json:"finished"`
	Question   *PracticeQuestionItem `json:"question,omitempty"`
}

// SubmitAnswerRequest is the body of the answer endpoint.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// AnswerResultResponse is the feedback for one graded answer.
type AnswerResultResponse struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Skipped       bool   `json:"skipped"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	Finished      bool   `json:"finished"`
}

// PracticeResultItem is one row of the session summary.
type PracticeResultItem struct {
	QuestionID    string `json:"question_id"`
	Content       string `json:"content"`
	Difficulty    int    `json:"difficulty"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Skipped       bool   `json:"skipped"`
}

// PracticeSummaryResponse is shown when a session is over.
type PracticeSummaryResponse struct {
	SessionID string               `json:"session_id"`
	Total     int                  `json:"total"`
	Answered  int                  `json:"answered"`
	Correct   int                  `json:"correct"`
	Accuracy  float64              `json:"accuracy"` // percent
	Finished  bool                 `json:"finished"`
	Results   []PracticeResultItem `json:"results"`
}
