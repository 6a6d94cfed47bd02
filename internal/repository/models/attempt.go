package models

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// Flag is a boolean column. SQLite and Oracle store it as a 0/1 number.
type Flag bool

// Value implements the driver.Valuer interface
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

// Scan implements the sql.Scanner interface
func (f *Flag) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		return f.Scan(string(v))
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			n, nerr := strconv.ParseFloat(v, 64)
			if nerr != nil {
				return fmt.Errorf("Flag Scan: cannot parse %q", v)
			}
			b = n != 0
		}
		*f = Flag(b)
	default:
		return fmt.Errorf("Flag Scan: unsupported type %T", value)
	}
	return nil
}

// Attempt is a row of the user_progress table.
type Attempt struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	QuestionID  string         `db:"question_id"`
	IsCorrect   Flag           `db:"is_correct"`
	UserAnswer  sql.NullString `db:"user_answer"`
	AttemptedAt time.Time      `db:"attempted_at"`
}

// AttemptDetail is an attempt joined with its question.
type AttemptDetail struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	QuestionID   string         `db:"question_id"`
	IsCorrect    Flag           `db:"is_correct"`
	UserAnswer   sql.NullString `db:"user_answer"`
	AttemptedAt  time.Time      `db:"attempted_at"`
	QuestionType string         `db:"question_type"`
	Content      string         `db:"content"`
	Options      sql.NullString `db:"options"`
	Answer       string         `db:"answer"`
	Explanation  sql.NullString `db:"explanation"`
	Difficulty   int            `db:"difficulty"`
	Category     string         `db:"category"`
}

// AttemptFact is the projection used for statistics.
type AttemptFact struct {
	IsCorrect   Flag      `db:"is_correct"`
	AttemptedAt time.Time `db:"attempted_at"`
	Category    string    `db:"category"`
	Difficulty  int       `db:"difficulty"`
}
