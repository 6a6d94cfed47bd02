package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	ID           string         `db:"id"` // ULID
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"` // bcrypt
	Email        sql.NullString `db:"email"`
	IsAdmin      Flag           `db:"is_admin"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
