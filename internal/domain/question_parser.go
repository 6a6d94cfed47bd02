package domain

import (
	"regexp"
	"strings"
)

const (
	answerLabel      = "答案"
	explanationLabel = "解析"
	minBlockLines    = 3
)

var (
	// blank lines, possibly holding stray spaces, separate question blocks
	blockSeparator = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	optionLine     = regexp.MustCompile(`^[A-D]\. `)

	// answers that make a question without options a true/false question
	trueFalseAnswers = map[string]struct{}{
		"T": {}, "F": {}, "TRUE": {}, "FALSE": {}, "对": {}, "错": {},
	}
)

// ParseQuestionBlock turns one question block into a Question.
// The second return value is false when the block is not a valid question.
func ParseQuestionBlock(text string) (*Question, bool) {
	lines := blockLines(text)
	if len(lines) < minBlockLines {
		return nil, false
	}

	q := &Question{Content: strings.TrimSpace(lines[0])}
	if q.Content == "" {
		return nil, false
	}

	for _, line := range lines {
		if optionLine.MatchString(line) {
			q.Options = append(q.Options, line)
		}
	}
	if len(q.Options) > 0 {
		q.Type = QuestionTypeMultipleChoice
	}

	answer, ok := labelledValue(lines, answerLabel)
	if !ok || answer == "" {
		return nil, false
	}
	q.Answer = answer

	if explanation, ok := labelledValue(lines, explanationLabel); ok {
		q.Explanation = explanation
	}

	if q.Type == "" {
		if _, tf := trueFalseAnswers[normalizeAnswer(answer)]; tf {
			q.Type = QuestionTypeTrueFalse
		} else {
			q.Type = QuestionTypeShortAnswer
		}
	}
	return q, true
}

// ParseQuestionText splits text on blank lines and parses every block on its own.
// Malformed blocks are counted and skipped; they never stop the rest of the import.
func ParseQuestionText(text string) ImportResult {
	var result ImportResult
	for _, block := range splitBlocks(text) {
		q, ok := ParseQuestionBlock(block)
		if !ok {
			result.Skipped++
			continue
		}
		result.Questions = append(result.Questions, q)
	}
	return result
}

// ImportQuestions parses text and stamps every question with the import's category and difficulty.
func ImportQuestions(text, category string, difficulty int) ImportResult {
	result := ParseQuestionText(text)
	for _, q := range result.Questions {
		q.Category = category
		q.Difficulty = difficulty
	}
	return result
}

func splitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []string
	for _, block := range blockSeparator.Split(text, -1) {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func blockLines(text string) []string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		// option lines are kept verbatim, trailing spaces included
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// labelledValue returns the trimmed text after "<label>:" or "<label>：" on the first line carrying it.
func labelledValue(lines []string, label string) (string, bool) {
	for _, line := range lines {
		if !strings.HasPrefix(line, label) {
			continue
		}
		rest := strings.TrimPrefix(line, label)
		for _, sep := range []string{":", "："} {
			if strings.HasPrefix(rest, sep) {
				return strings.TrimSpace(strings.TrimPrefix(rest, sep)), true
			}
		}
	}
	return "", false
}
