package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const osQuestions = `进程和线程的主要区别是什么？
A. 进程是资源分配的基本单位
B. 线程是资源分配的基本单位
C. 进程不能并发执行
D. 线程拥有独立的地址空间
答案: A
解析: 进程是资源分配的基本单位，线程是调度的基本单位

死锁产生的必要条件包括循环等待。
答案：对
解析：互斥、占有且等待、不可抢占、循环等待`

func TestParseQuestionBlock_MultipleChoice(t *testing.T) {
	block := "以下哪个是Go的关键字？\nA. class\nB. defer\nC. extends\nD. virtual\n答案: B"

	q, ok := ParseQuestionBlock(block)
	require.True(t, ok)
	assert.Equal(t, QuestionTypeMultipleChoice, q.Type)
	assert.Equal(t, "以下哪个是Go的关键字？", q.Content)
	assert.Equal(t, []string{"A. class", "B. defer", "C. extends", "D. virtual"}, q.Options)
	assert.Equal(t, "A. class\nB. defer\nC. extends\nD. virtual", q.OptionsText())
	assert.Equal(t, "B", q.Answer)
	assert.Empty(t, q.Explanation)
}

func TestParseQuestionBlock_OptionOrderPreserved(t *testing.T) {
	block := "顺序？\nC. 三\nA. 一\nD. 四\nB. 二\n答案: A"

	q, ok := ParseQuestionBlock(block)
	require.True(t, ok)
	assert.Equal(t, []string{"C. 三", "A. 一", "D. 四", "B. 二"}, q.Options)
}

func TestParseQuestionBlock_OptionPrefixMustBeExact(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"parenthesis", "题目\nA)选项一\nB)选项二\n答案: 选项一"},
		{"lowercase", "题目\na. 选项一\nb. 选项二\n答案: 选项一"},
		{"no space", "题目\nA.选项一\nB.选项二\n答案: 选项一"},
		{"letter beyond D", "题目\nE. 选项一\nF. 选项二\n答案: 选项一"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ParseQuestionBlock(tt.block)
			require.True(t, ok)
			assert.Equal(t, QuestionTypeShortAnswer, q.Type)
			assert.Empty(t, q.Options)
		})
	}
}

func TestParseQuestionBlock_TrueFalse(t *testing.T) {
	for _, answer := range []string{"对", "错", "T", "f", "true", "FALSE"} {
		t.Run(answer, func(t *testing.T) {
			q, ok := ParseQuestionBlock("是否正确？\n答案: " + answer + "\n解析: 无")
			require.True(t, ok)
			assert.Equal(t, QuestionTypeTrueFalse, q.Type)
			assert.Equal(t, answer, q.Answer)
		})
	}
}

func TestParseQuestionBlock_ShortAnswer(t *testing.T) {
	q, ok := ParseQuestionBlock("中国四大名著中哪一部由曹雪芹所著？\n答案：红楼梦\n解析：清代曹雪芹")
	require.True(t, ok)
	assert.Equal(t, QuestionTypeShortAnswer, q.Type)
	assert.Equal(t, "红楼梦", q.Answer)
	assert.Equal(t, "清代曹雪芹", q.Explanation)
}

func TestParseQuestionBlock_CoincidentalTrueFalseAnswer(t *testing.T) {
	// a short answer that happens to be "T" is still classified as true/false
	q, ok := ParseQuestionBlock("钛的元素符号的首字母？\n答案: T\n解析: Ti")
	require.True(t, ok)
	assert.Equal(t, QuestionTypeTrueFalse, q.Type)
}

func TestParseQuestionBlock_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"two lines", "问题？\n答案: A"},
		{"missing answer line", "问题？\nA. 一\nB. 二\nC. 三\nD. 四"},
		{"empty answer", "问题？\n答案:\n解析: 空"},
		{"answer label without separator", "问题？\n答案 A\n解析: 缺少冒号"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ParseQuestionBlock(tt.block)
			assert.False(t, ok)
			assert.Nil(t, q)
		})
	}
}

func TestParseQuestionBlock_FirstLabelWins(t *testing.T) {
	q, ok := ParseQuestionBlock("问题？\n答案: 甲\n答案: 乙\n解析: 一\n解析: 二")
	require.True(t, ok)
	assert.Equal(t, "甲", q.Answer)
	assert.Equal(t, "一", q.Explanation)
}

func TestParseQuestionBlock_OptionLinesKeptVerbatim(t *testing.T) {
	q, ok := ParseQuestionBlock("哪个是空选项？\nA. 有内容  \nB. \t\nC. 其他\r\n答案: B")
	require.True(t, ok)
	assert.Equal(t, QuestionTypeMultipleChoice, q.Type)
	assert.Equal(t, []string{"A. 有内容  ", "B. \t", "C. 其他"}, q.Options)

	q, ok = ParseQuestionBlock("只有空选项\nA. \n答案: A")
	require.True(t, ok)
	assert.Equal(t, QuestionTypeMultipleChoice, q.Type)
	assert.Equal(t, []string{"A. "}, q.Options)
}

func TestParseQuestionBlock_FullWidthAndASCIISeparators(t *testing.T) {
	q, ok := ParseQuestionBlock("问题？\n答案： 全角 \n解析:半角")
	require.True(t, ok)
	assert.Equal(t, "全角", q.Answer)
	assert.Equal(t, "半角", q.Explanation)
}

func TestParseQuestionText(t *testing.T) {
	result := ParseQuestionText(osQuestions)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, 0, result.Skipped)

	first := result.Questions[0]
	assert.Equal(t, QuestionTypeMultipleChoice, first.Type)
	assert.Len(t, first.Options, 4)
	assert.Equal(t, "A", first.Answer)

	second := result.Questions[1]
	assert.Equal(t, QuestionTypeTrueFalse, second.Type)
	assert.Equal(t, "对", second.Answer)
	assert.Empty(t, second.Options)
}

func TestParseQuestionText_SkipsMalformedBlocksAndContinues(t *testing.T) {
	text := "坏题？\n答案: A\n\n" + osQuestions + "\n\n没有答案的题\nA. 一\nB. 二\n\n\n"

	result := ParseQuestionText(text)
	assert.Len(t, result.Questions, 2)
	assert.Equal(t, 2, result.Skipped)
}

func TestParseQuestionText_CRLFAndWhitespaceSeparators(t *testing.T) {
	text := "问题一？\r\n答案: 甲\r\n解析: 一\r\n  \r\n问题二？\r\n答案: 乙\r\n解析: 二\r\n"

	result := ParseQuestionText(text)
	require.Len(t, result.Questions, 2)
	assert.Equal(t, "问题二？", result.Questions[1].Content)
	assert.Equal(t, "乙", result.Questions[1].Answer)
}

func TestParseQuestionText_Idempotent(t *testing.T) {
	assert.Equal(t, ParseQuestionText(osQuestions), ParseQuestionText(osQuestions))
}

func TestParseQuestionText_Empty(t *testing.T) {
	result := ParseQuestionText("\n\n  \n")
	assert.Empty(t, result.Questions)
	assert.Equal(t, 0, result.Skipped)
}

func TestImportQuestions_StampsCategoryAndDifficulty(t *testing.T) {
	result := ImportQuestions(osQuestions, "OS", 2)

	require.Len(t, result.Questions, 2)
	for _, q := range result.Questions {
		assert.Equal(t, "OS", q.Category)
		assert.Equal(t, 2, q.Difficulty)
		assert.NoError(t, q.Validate())
	}
}
