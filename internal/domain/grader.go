package domain

import (
	"strings"
	"unicode/utf8"
)

var (
	trueTokens  = map[string]struct{}{"T": {}, "TRUE": {}, "对": {}, "正确": {}}
	falseTokens = map[string]struct{}{"F": {}, "FALSE": {}, "错": {}, "错误": {}}
)

func normalizeAnswer(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsCorrect grades a submitted answer against the question's canonical answer.
// It never fails: an empty or unrecognised answer is simply wrong.
func IsCorrect(q *Question, rawUserAnswer string) bool {
	if q == nil {
		return false
	}
	correct := normalizeAnswer(q.Answer)
	user := normalizeAnswer(rawUserAnswer)
	if user == "" {
		return false
	}

	switch q.Type {
	case QuestionTypeMultipleChoice:
		// "B. option text" grades as "B"
		if utf8.RuneCountInString(user) > 1 {
			r, _ := utf8.DecodeRuneInString(user)
			user = string(r)
		}
		return user == correct

	case QuestionTypeTrueFalse:
		_, correctIsTrue := trueTokens[correct]
		if _, ok := trueTokens[user]; ok {
			return correctIsTrue
		}
		if _, ok := falseTokens[user]; ok {
			// complement of the true set, not membership of the false set:
			// a canonical answer outside both sets grades "false" answers as correct
			return !correctIsTrue
		}
		return false

	default:
		return user == correct
	}
}
