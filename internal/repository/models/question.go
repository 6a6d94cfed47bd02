package models

import (
	"database/sql"
	"time"
)

// Question is a row of the questions table. Options are stored newline-joined.
type Question struct {
	ID           string         `db:"id"`
	QuestionType string         `db:"question_type"`
	Content      string         `db:"content"`
	Options      sql.NullString `db:"options"`
	Answer       string         `db:"answer"`
	Explanation  sql.NullString `db:"explanation"`
	Difficulty   int            `db:"difficulty"`
	Category     string         `db:"category"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
