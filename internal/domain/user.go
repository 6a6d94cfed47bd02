package domain

import (
	"strings"
	"time"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// User represents a domain user object
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(username, passwordHash, email string, isAdmin bool) *User {
	now := time.Now()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	username := strings.TrimSpace(u.Username)
	switch {
	case username == "":
		errs = append(errs, NewMissingFieldError("username"))
	case len([]rune(username)) < MinUsernameLength || len([]rune(username)) > MaxUsernameLength:
		errs = append(errs, NewOutOfRangeError("username", len([]rune(username)), MinUsernameLength, MaxUsernameLength))
	}
	if u.PasswordHash == "" {
		errs = append(errs, NewMissingFieldError("password"))
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		errs = append(errs, NewInvalidFormatError("email", u.Email))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ValidationErrors{NewOutOfRangeError("password", len(password), MinPasswordLength, 72)}
	}
	if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		return ValidationErrors{NewOutOfRangeError("password", len(password), MinPasswordLength, 72)}
	}
	return nil
}
