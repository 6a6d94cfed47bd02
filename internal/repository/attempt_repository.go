package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/repository/models"
	"quizbank/internal/util"

	"github.com/jmoiron/sqlx"
)

const attemptDetailColumns = `up.id "id", up.user_id "user_id", up.question_id "question_id", up.is_correct "is_correct",
	up.user_answer "user_answer", up.attempted_at "attempted_at", q.question_type "question_type", q.content "content",
	q.options "options", q.answer "answer", q.explanation "explanation", q.difficulty "difficulty", q.category "category"`

const attemptJoin = ` FROM user_progress up JOIN questions q ON up.question_id = q.id`

// DateLayout is the format of the start_date and end_date filters.
const DateLayout = "2006-01-02"

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db      *sqlx.DB
	dialect dialect
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db, dialect: dialectOf(db)}
}

func fromDomainAttempt(a *domain.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	return &models.Attempt{
		ID:          a.ID,
		UserID:      a.UserID,
		QuestionID:  a.QuestionID,
		IsCorrect:   models.Flag(a.IsCorrect),
		UserAnswer:  util.StringToNullString(a.UserAnswer),
		AttemptedAt: a.AttemptedAt,
	}
}

func toDomainAttemptDetail(m *models.AttemptDetail) domain.AttemptDetail {
	return domain.AttemptDetail{
		Attempt: domain.Attempt{
			ID:          m.ID,
			UserID:      m.UserID,
			QuestionID:  m.QuestionID,
			UserAnswer:  m.UserAnswer.String,
			IsCorrect:   bool(m.IsCorrect),
			AttemptedAt: m.AttemptedAt,
		},
		Question: domain.Question{
			ID:          m.QuestionID,
			Type:        domain.QuestionType(m.QuestionType),
			Content:     m.Content,
			Options:     domain.SplitOptions(m.Options.String),
			Answer:      m.Answer,
			Explanation: m.Explanation.String,
			Difficulty:  m.Difficulty,
			Category:    m.Category,
		},
	}
}

// RecordAttempt appends an attempt; existing rows are never updated.
func (r *sqlxAttemptRepository) RecordAttempt(ctx context.Context, attempt *domain.Attempt) error {
	m := fromDomainAttempt(attempt)
	if m == nil {
		return fmt.Errorf("cannot record nil attempt")
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	if m.AttemptedAt.IsZero() {
		m.AttemptedAt = time.Now()
	}

	query := r.db.Rebind(`INSERT INTO user_progress (id, user_id, question_id, is_correct, user_answer, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.UserID, m.QuestionID, m.IsCorrect, m.UserAnswer, m.AttemptedAt)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	attempt.ID = m.ID
	attempt.AttemptedAt = m.AttemptedAt
	return nil
}

// buildAttemptsWhere translates the filters into a WHERE clause with positional arguments.
func buildAttemptsWhere(userID string, filters dto.AttemptFilters) (string, []interface{}, error) {
	clauses := []string{"up.user_id = ?"}
	args := []interface{}{userID}

	if filters.Category != "" {
		clauses = append(clauses, "q.category = ?")
		args = append(args, filters.Category)
	}
	if filters.StartDate != "" {
		start, err := time.ParseInLocation(DateLayout, filters.StartDate, time.Local)
		if err != nil {
			return "", nil, fmt.Errorf("invalid start_date %q: %w", filters.StartDate, err)
		}
		clauses = append(clauses, "up.attempted_at >= ?")
		args = append(args, start)
	}
	if filters.EndDate != "" {
		end, err := time.ParseInLocation(DateLayout, filters.EndDate, time.Local)
		if err != nil {
			return "", nil, fmt.Errorf("invalid end_date %q: %w", filters.EndDate, err)
		}
		// end date is inclusive
		clauses = append(clauses, "up.attempted_at < ?")
		args = append(args, end.AddDate(0, 0, 1))
	}
	if filters.IsCorrect != nil {
		clauses = append(clauses, "up.is_correct = ?")
		args = append(args, models.Flag(*filters.IsCorrect))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// GetAttemptsByUserID retrieves a paginated list of attempts for a user, newest first.
func (r *sqlxAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) ([]domain.AttemptDetail, int, error) {
	where, args, err := buildAttemptsWhere(userID, filters)
	if err != nil {
		return nil, 0, err
	}
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*)`+attemptJoin+where), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	limit, offset := pageBounds(pagination)
	query, pageArgs := r.dialect.paginate(`SELECT `+attemptDetailColumns+attemptJoin+where+` ORDER BY up.attempted_at DESC, up.id DESC`, limit, offset)

	var rows []models.AttemptDetail
	if err := exec.SelectContext(ctx, &rows, r.db.Rebind(query), append(args, pageArgs...)...); err != nil {
		return nil, 0, fmt.Errorf("failed to get attempts for user %s: %w", userID, err)
	}

	details := make([]domain.AttemptDetail, len(rows))
	for i := range rows {
		details[i] = toDomainAttemptDetail(&rows[i])
	}
	return details, total, nil
}

// GetWrongAttempts returns every incorrect attempt of a user joined with its question, newest first.
func (r *sqlxAttemptRepository) GetWrongAttempts(ctx context.Context, userID string, category string) ([]domain.AttemptDetail, error) {
	incorrect := false
	where, args, err := buildAttemptsWhere(userID, dto.AttemptFilters{Category: category, IsCorrect: &incorrect})
	if err != nil {
		return nil, err
	}

	var rows []models.AttemptDetail
	query := r.db.Rebind(`SELECT ` + attemptDetailColumns + attemptJoin + where + ` ORDER BY up.attempted_at DESC, up.id DESC`)
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get wrong attempts for user %s: %w", userID, err)
	}

	details := make([]domain.AttemptDetail, len(rows))
	for i := range rows {
		details[i] = toDomainAttemptDetail(&rows[i])
	}
	return details, nil
}

// GetAttemptFacts returns the rows statistics are computed from.
func (r *sqlxAttemptRepository) GetAttemptFacts(ctx context.Context, userID string) ([]domain.AttemptFact, error) {
	var rows []models.AttemptFact
	query := r.db.Rebind(`SELECT up.is_correct "is_correct", up.attempted_at "attempted_at", q.category "category", q.difficulty "difficulty"` +
		attemptJoin + ` WHERE up.user_id = ?`)
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get attempt facts for user %s: %w", userID, err)
	}

	facts := make([]domain.AttemptFact, len(rows))
	for i, row := range rows {
		facts[i] = domain.AttemptFact{
			IsCorrect:   bool(row.IsCorrect),
			AttemptedAt: row.AttemptedAt,
			Category:    row.Category,
			Difficulty:  row.Difficulty,
		}
	}
	return facts, nil
}
