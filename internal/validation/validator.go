package validation

import (
	"regexp"
	"strconv"
	"strings"

	"quizbank/internal/domain"

	"github.com/google/uuid"
)

// MaxPageSize is the largest limit a list endpoint accepts.
const MaxPageSize = 100

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEntityID checks a question, user or attempt ID.
func (v *Validator) ValidateEntityID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// ValidateSessionID checks a practice session ID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if _, err := uuid.Parse(id); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidatePagination checks the raw limit, offset and page query values. Empty values are allowed.
func (v *Validator) ValidatePagination(limit, offset, page string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if limit != "" {
		if n, err := strconv.Atoi(limit); err != nil {
			errors = append(errors, domain.NewInvalidFormatError("limit", limit))
		} else if n < 1 || n > MaxPageSize {
			errors = append(errors, domain.NewOutOfRangeError("limit", n, 1, MaxPageSize))
		}
	}
	if offset != "" {
		if n, err := strconv.Atoi(offset); err != nil || n < 0 {
			errors = append(errors, domain.NewInvalidFormatError("offset", offset))
		}
	}
	if page != "" {
		if n, err := strconv.Atoi(page); err != nil || n < 1 {
			errors = append(errors, domain.NewInvalidFormatError("page", page))
		}
	}
	return errors
}

// ValidateDifficulty checks an optional difficulty filter.
func (v *Validator) ValidateDifficulty(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if raw == "" {
		return errors
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", raw))
	} else if n < domain.MinDifficulty || n > domain.MaxDifficulty {
		errors = append(errors, domain.NewOutOfRangeError("difficulty", n, domain.MinDifficulty, domain.MaxDifficulty))
	}
	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}
