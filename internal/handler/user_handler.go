package handler

import (
	"quizbank/internal/dto"
	"quizbank/internal/logger"
	"quizbank/internal/service"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the profile information of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetUserProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetMyAttempts retrieves the answer history of the authenticated user.
// @Summary Get My Attempts
// @Description Retrieves a paginated list of the logged-in user's answers, newest first.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 10)"
// @Param page query int false "Page number (default 1)"
// @Param category query string false "Filter by category"
// @Param start_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param end_date query string false "Filter by end date (YYYY-MM-DD)"
// @Param is_correct query bool false "Filter by correctness (true/false)"
// @Success 200 {object} dto.AttemptsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid filter"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/attempts [get]
func (h *UserHandler) GetMyAttempts(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	pagination, err := parsePagination(c)
	if err != nil {
		return err
	}
	filters, err := parseAttemptFilters(c)
	if err != nil {
		return err
	}

	logger.Get().Debug("User attempts requested",
		zap.String("userID", userID),
		zap.Any("filters", filters),
		zap.Any("pagination", pagination))

	response, err := h.userService.GetUserAttempts(c.Context(), userID, filters, pagination)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetMyWrongQuestions lists the questions the user answered incorrectly.
// @Summary Get My Wrong Questions
// @Description Latest wrong attempt of every question the user got wrong, with per-category counts.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param category query string false "Filter by category"
// @Param sort query string false "recent (default), difficulty_asc or difficulty_desc"
// @Param limit query int false "Number of items per page (default 10)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} dto.WrongQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid sort"
// @Router /users/me/wrong-questions [get]
func (h *UserHandler) GetMyWrongQuestions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	pagination, err := parsePagination(c)
	if err != nil {
		return err
	}
	filters := dto.WrongQuestionFilters{Category: c.Query("category"), Sort: c.Query("sort")}

	response, err := h.userService.GetWrongQuestions(c.Context(), userID, filters, pagination)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ReviewWrongQuestion answers a question again from the wrong question list.
// @Summary Review Wrong Question
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.ReviewAnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /users/me/wrong-questions/{id}/review [post]
func (h *UserHandler) ReviewWrongQuestion(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ReviewAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.userService.ReviewWrongQuestion(c.Context(), userID, c.Params("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetMyStats returns the learning dashboard numbers.
// @Summary Get My Statistics
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Router /users/me/stats [get]
func (h *UserHandler) GetMyStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.userService.GetUserStats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ListUsers godoc
// @Summary List users
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 10)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} middleware.ErrorResponse "Not an administrator"
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	pagination, err := parsePagination(c)
	if err != nil {
		return err
	}
	users, err := h.userService.ListUsers(c.Context(), pagination)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.UserProfileResponse
// @Failure 409 {object} middleware.ErrorResponse "Username already taken"
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Only the provided fields change.
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserProfileResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateUser(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the account and its answer history. Administrators cannot delete themselves.
// @Tags admin-users
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse "Self deletion"
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteUser(c.Context(), adminID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
