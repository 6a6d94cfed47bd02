package domain

import "time"

const (
	DefaultPracticeCount = 5
	MaxPracticeCount     = 20
)

// PracticeSession is the server-side state of one practice run.
// It is serialized into the cache between requests.
type PracticeSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Category     string    `json:"category"`
	Difficulty   int       `json:"difficulty"`
	QuestionIDs  []string  `json:"question_ids"`
	CurrentIndex int       `json:"current_index"`
	Answers      []string  `json:"answers"`
	Results      []bool    `json:"results"`
	Skipped      []bool    `json:"skipped"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewPracticeSession creates a session positioned on its first question.
func NewPracticeSession(id, userID, category string, difficulty int, questionIDs []string) *PracticeSession {
	return &PracticeSession{
		ID:          id,
		UserID:      userID,
		Category:    category,
		Difficulty:  difficulty,
		QuestionIDs: questionIDs,
		Answers:     make([]string, 0, len(questionIDs)),
		Results:     make([]bool, 0, len(questionIDs)),
		Skipped:     make([]bool, 0, len(questionIDs)),
		CreatedAt:   time.Now(),
	}
}

// Total is the number of questions in the session.
func (s *PracticeSession) Total() int {
	return len(s.QuestionIDs)
}

// Finished reports whether every question has been answered or skipped.
func (s *PracticeSession) Finished() bool {
	return s.CurrentIndex >= len(s.QuestionIDs)
}

// CurrentQuestionID returns the id of the question awaiting an answer.
func (s *PracticeSession) CurrentQuestionID() (string, bool) {
	if s.Finished() {
		return "", false
	}
	return s.QuestionIDs[s.CurrentIndex], true
}

// Record stores the outcome of the current question and advances.
func (s *PracticeSession) Record(answer string, correct, skipped bool) {
	if s.Finished() {
		return
	}
	s.Answers = append(s.Answers, answer)
	s.Results = append(s.Results, correct)
	s.Skipped = append(s.Skipped, skipped)
	s.CurrentIndex++
}

// WasSkipped reports whether the i-th answered question was skipped.
func (s *PracticeSession) WasSkipped(i int) bool {
	return i >= 0 && i < len(s.Skipped) && s.Skipped[i]
}

// CorrectCount is the number of correct answers so far.
func (s *PracticeSession) CorrectCount() int {
	n := 0
	for _, ok := range s.Results {
		if ok {
			n++
		}
	}
	return n
}

// Accuracy is the percentage of correct answers over the whole session.
func (s *PracticeSession) Accuracy() float64 {
	return Percentage(s.CorrectCount(), s.Total())
}
