package service

import (
	"quizbank/internal/domain"
	"quizbank/internal/dto"
)

func toUserProfileResponse(u *domain.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		ID:           q.ID,
		QuestionType: string(q.Type),
		Content:      q.Content,
		Options:      q.Options,
		Answer:       q.Answer,
		Explanation:  q.Explanation,
		Difficulty:   q.Difficulty,
		Category:     q.Category,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func toPracticeQuestionItem(q *domain.Question) *dto.PracticeQuestionItem {
	return &dto.PracticeQuestionItem{
		ID:           q.ID,
		QuestionType: string(q.Type),
		Content:      q.Content,
		Options:      q.Options,
		Difficulty:   q.Difficulty,
		Category:     q.Category,
	}
}

func toAnswerResult(q *domain.Question, answer string, correct, finished bool) *dto.AnswerResultResponse {
	return &dto.AnswerResultResponse{
		QuestionID:    q.ID,
		UserAnswer:    answer,
		IsCorrect:     correct,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
		Finished:      finished,
	}
}
