package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/repository/models"
	"quizbank/internal/util"

	"github.com/jmoiron/sqlx"
)

// quoted aliases keep column names lower case on Oracle
const questionColumns = `id "id", question_type "question_type", content "content", options "options",
	answer "answer", explanation "explanation", difficulty "difficulty", category "category",
	created_at "created_at", updated_at "updated_at"`

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db      *sqlx.DB
	dialect dialect
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db, dialect: dialectOf(db)}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:          m.ID,
		Type:        domain.QuestionType(m.QuestionType),
		Content:     m.Content,
		Options:     domain.SplitOptions(m.Options.String),
		Answer:      m.Answer,
		Explanation: m.Explanation.String,
		Difficulty:  m.Difficulty,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:           q.ID,
		QuestionType: string(q.Type),
		Content:      q.Content,
		Options:      util.StringToNullString(q.OptionsText()),
		Answer:       q.Answer,
		Explanation:  util.StringToNullString(q.Explanation),
		Difficulty:   q.Difficulty,
		Category:     q.Category,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// CreateQuestion inserts a question and returns its id.
func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) (string, error) {
	m := fromDomainQuestion(question)
	if m == nil {
		return "", fmt.Errorf("cannot save nil question")
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := r.db.Rebind(`INSERT INTO questions (id, question_type, content, options, answer, explanation, difficulty, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.QuestionType, m.Content, m.Options, m.Answer, m.Explanation,
		m.Difficulty, m.Category, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to create question: %w", err)
	}

	question.ID = m.ID
	question.CreatedAt = m.CreatedAt
	question.UpdatedAt = m.UpdatedAt
	return m.ID, nil
}

// GetQuestionByID returns (nil, nil) when the question does not exist.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)

	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id %s: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

// GetQuestionsByIDs returns the questions in the order of ids, silently skipping unknown ids.
func (r *sqlxQuestionRepository) GetQuestionsByIDs(ctx context.Context, ids []string) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+questionColumns+` FROM questions WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build question lookup: %w", err)
	}

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by ids: %w", err)
	}

	byID := make(map[string]*domain.Question, len(rows))
	for i := range rows {
		byID[rows[i].ID] = toDomainQuestion(&rows[i])
	}
	out := make([]*domain.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func questionWhere(category string, difficulty int, questionType string) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, category)
	}
	if difficulty > 0 {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, difficulty)
	}
	if questionType != "" {
		clauses = append(clauses, "question_type = ?")
		args = append(args, questionType)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// GetRandomQuestions samples up to count questions in random order.
func (r *sqlxQuestionRepository) GetRandomQuestions(ctx context.Context, count int, category string, difficulty int) ([]*domain.Question, error) {
	if count <= 0 {
		return nil, nil
	}
	where, args := questionWhere(category, difficulty, "")
	query, pageArgs := r.dialect.paginate(`SELECT `+questionColumns+` FROM questions`+where+` ORDER BY `+r.dialect.randomOrder(), count, 0)
	args = append(args, pageArgs...)

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get random questions: %w", err)
	}

	out := make([]*domain.Question, len(rows))
	for i := range rows {
		out[i] = toDomainQuestion(&rows[i])
	}
	return out, nil
}

// ListQuestions returns one page of questions, newest first, and the total number of matches.
func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context, filters dto.QuestionFilters, pagination dto.Pagination) ([]*domain.Question, int, error) {
	where, args := questionWhere(filters.Category, filters.Difficulty, filters.QuestionType)
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM questions`+where), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	limit, offset := pageBounds(pagination)
	query, pageArgs := r.dialect.paginate(`SELECT `+questionColumns+` FROM questions`+where+` ORDER BY created_at DESC, id DESC`, limit, offset)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, r.db.Rebind(query), append(args, pageArgs...)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	out := make([]*domain.Question, len(rows))
	for i := range rows {
		out[i] = toDomainQuestion(&rows[i])
	}
	return out, total, nil
}

// UpdateQuestion overwrites every editable column of an existing question.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	if m == nil {
		return fmt.Errorf("cannot update nil question")
	}
	m.UpdatedAt = time.Now()

	query := r.db.Rebind(`UPDATE questions SET question_type = ?, content = ?, options = ?, answer = ?,
		explanation = ?, difficulty = ?, category = ?, updated_at = ? WHERE id = ?`)

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.QuestionType, m.Content, m.Options, m.Answer, m.Explanation,
		m.Difficulty, m.Category, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if err := requireAffected(result, domain.NewQuestionNotFoundError(m.ID)); err != nil {
		return err
	}
	question.UpdatedAt = m.UpdatedAt
	return nil
}

// DeleteQuestion removes a question; its attempts go with it.
func (r *sqlxQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, r.db.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return requireAffected(result, domain.NewQuestionNotFoundError(id))
}

// GetAllCategories returns the distinct categories in alphabetical order.
func (r *sqlxQuestionRepository) GetAllCategories(ctx context.Context) ([]string, error) {
	var categories []string
	query := `SELECT DISTINCT category "category" FROM questions ORDER BY category`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
