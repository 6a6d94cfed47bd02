package handler

import (
	"strconv"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the identity stored by middleware.Protected.
func currentUserID(c *fiber.Ctx) (string, error) {
	userID := middleware.UserID(c)
	if userID == "" {
		return "", domain.NewUnauthorizedError("User ID not found in context")
	}
	return userID, nil
}

// parseBody decodes a JSON request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("Invalid request body").WithContext("error", err.Error())
	}
	return nil
}

func parsePagination(c *fiber.Ctx) (dto.Pagination, error) {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return p, domain.NewInvalidInputError("Invalid pagination parameters")
	}
	return p, nil
}

func parseAttemptFilters(c *fiber.Ctx) (dto.AttemptFilters, error) {
	filters := dto.AttemptFilters{
		Category:  c.Query("category"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if raw := c.Query("is_correct"); raw != "" {
		isCorrect, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, domain.ValidationErrors{domain.NewInvalidFormatError("is_correct", raw)}
		}
		filters.IsCorrect = &isCorrect
	}
	return filters, nil
}

// formInt reads an optional integer form field. Missing means 0.
func formInt(c *fiber.Ctx, field string) (int, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return n, nil
}
