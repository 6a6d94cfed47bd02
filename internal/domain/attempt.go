package domain

import (
	"sort"
	"time"
)

// SkippedAnswer is recorded as the user's answer when a question is skipped.
const SkippedAnswer = "跳过"

// Attempt is one graded answer. Attempts are append-only.
type Attempt struct {
	ID          string
	UserID      string
	QuestionID  string
	UserAnswer  string
	IsCorrect   bool
	AttemptedAt time.Time
}

// NewAttempt creates an attempt stamped with the current time.
func NewAttempt(userID, questionID, userAnswer string, isCorrect bool) *Attempt {
	return &Attempt{
		UserID:      userID,
		QuestionID:  questionID,
		UserAnswer:  userAnswer,
		IsCorrect:   isCorrect,
		AttemptedAt: time.Now(),
	}
}

// Skipped reports whether the attempt was a skip rather than an answer.
func (a *Attempt) Skipped() bool {
	return a.UserAnswer == SkippedAnswer
}

// AttemptDetail is an attempt joined with the question it answered.
type AttemptDetail struct {
	Attempt
	Question Question
}

// AttemptFact is the minimal row needed to aggregate statistics.
type AttemptFact struct {
	IsCorrect   bool
	AttemptedAt time.Time
	Category    string
	Difficulty  int
}

// Wrong question orderings.
const (
	WrongSortRecent         = "recent"
	WrongSortDifficultyAsc  = "difficulty_asc"
	WrongSortDifficultyDesc = "difficulty_desc"
)

// ValidWrongSort reports whether s is a known wrong question ordering. Empty means recent.
func ValidWrongSort(s string) bool {
	switch s {
	case "", WrongSortRecent, WrongSortDifficultyAsc, WrongSortDifficultyDesc:
		return true
	}
	return false
}

// LatestWrongPerQuestion keeps the most recent wrong attempt of every question.
// The result is ordered newest first.
func LatestWrongPerQuestion(details []AttemptDetail) []AttemptDetail {
	latest := make(map[string]int, len(details))
	var out []AttemptDetail
	for _, d := range details {
		if d.IsCorrect {
			continue
		}
		if i, ok := latest[d.QuestionID]; ok {
			if d.AttemptedAt.After(out[i].AttemptedAt) {
				out[i] = d
			}
			continue
		}
		latest[d.QuestionID] = len(out)
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttemptedAt.After(out[j].AttemptedAt)
	})
	return out
}

// SortWrongQuestions orders wrong questions in place. Ties keep the newest-first order.
func SortWrongQuestions(items []AttemptDetail, order string) {
	switch order {
	case WrongSortDifficultyAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Question.Difficulty < items[j].Question.Difficulty
		})
	case WrongSortDifficultyDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Question.Difficulty > items[j].Question.Difficulty
		})
	}
}

// CountByCategory counts items per question category.
func CountByCategory(items []AttemptDetail) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Question.Category]++
	}
	return counts
}
