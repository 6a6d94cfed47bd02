package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/repository/models"
	"quizbank/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id "id", username "username", password_hash "password_hash", email "email",
	is_admin "is_admin", created_at "created_at", updated_at "updated_at"`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db      *sqlx.DB
	dialect dialect
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db, dialect: dialectOf(db)}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Email:        m.Email.String,
		IsAdmin:      bool(m.IsAdmin),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        util.StringToNullString(u.Email),
		IsAdmin:      models.Flag(u.IsAdmin),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// CreateUser inserts a new user. A taken username yields a CodeDuplicate error.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	if m == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := r.db.Rebind(`INSERT INTO users (id, username, password_hash, email, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.Username, m.PasswordHash, m.Email, m.IsAdmin, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError(fmt.Sprintf("username %q is already taken", user.Username))
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	var m models.User
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)

	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Return nil, nil for not found, services can handle this
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "id", userID)
}

// GetUserByUsername retrieves a user by login name.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username", username)
}

// ListUsers returns one page of users ordered by username.
func (r *sqlxUserRepository) ListUsers(ctx context.Context, pagination dto.Pagination) ([]*domain.User, int, error) {
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit, offset := pageBounds(pagination)
	query, args := r.dialect.paginate(`SELECT `+userColumns+` FROM users ORDER BY username`, limit, offset)

	var rows []models.User
	if err := exec.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = toDomainUser(&rows[i])
	}
	return users, total, nil
}

// UpdateUser overwrites username, password hash, email and admin flag.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	if m == nil {
		return fmt.Errorf("cannot update nil user")
	}
	m.UpdatedAt = time.Now()

	query := r.db.Rebind(`UPDATE users SET username = ?, password_hash = ?, email = ?, is_admin = ?, updated_at = ?
		WHERE id = ?`)

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.Username, m.PasswordHash, m.Email, m.IsAdmin, m.UpdatedAt, m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError(fmt.Sprintf("username %q is already taken", user.Username))
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := requireAffected(result, domain.NewNotFoundError("user not found")); err != nil {
		return err
	}
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// DeleteUser removes a user together with their answer history.
func (r *sqlxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(result, domain.NewNotFoundError("user not found"))
}
