package middleware

import (
	"quizbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware rejects malformed path and query parameters before they reach a handler.
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam checks that the :id path parameter is a ULID.
func (vm *ValidationMiddleware) ValidateIDParam(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errors := vm.validator.ValidateEntityID(field, c.Params("id")); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidateSessionParam checks that the :id path parameter is a practice session ID.
func (vm *ValidationMiddleware) ValidateSessionParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errors := vm.validator.ValidateSessionID(c.Params("id")); len(errors) > 0 {
			return errors
		}
		return c.Next()
	}
}

// ValidateListQuery checks the pagination and difficulty query parameters of list endpoints.
func (vm *ValidationMiddleware) ValidateListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := vm.validator.ValidatePagination(c.Query("limit"), c.Query("offset"), c.Query("page"))
		errors = append(errors, vm.validator.ValidateDifficulty(c.Query("difficulty"))...)
		if len(errors) > 0 {
			return errors
		}
		return c.Next()
	}
}
