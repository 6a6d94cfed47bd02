package domain

import (
	"fmt"
	"strings"
)

const uncategorized = "未分类"

// FormatQuestionMarkdown renders a question for the admin preview.
func FormatQuestionMarkdown(q *Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", q.Content)

	if q.Type == QuestionTypeMultipleChoice && len(q.Options) > 0 {
		b.WriteString(q.OptionsText())
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "**答案:** %s\n\n", q.Answer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "**解析:** %s\n\n", q.Explanation)
	}

	category := q.Category
	if category == "" {
		category = uncategorized
	}
	fmt.Fprintf(&b, "**难度:** %s\n\n", DifficultyStars(q.Difficulty))
	fmt.Fprintf(&b, "**类别:** %s\n\n", category)
	return b.String()
}
