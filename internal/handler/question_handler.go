package handler

import (
	"strings"

	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"
	"quizbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler serves the public category list and the admin question bank.
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// GetCategories godoc
// @Summary Get all question categories
// @Description Returns every category that has at least one question
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *QuestionHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesResponse{Categories: categories})
}

// ListQuestions godoc
// @Summary List questions
// @Tags admin-questions
// @Security ApiKeyAuth
// @Produce json
// @Param category query string false "Category"
// @Param difficulty query int false "Difficulty (1-3)"
// @Param question_type query string false "multiple_choice, true_false or short_answer"
// @Param limit query int false "Items per page (default 10)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	var filters dto.QuestionFilters
	if err := c.QueryParser(&filters); err != nil {
		return domain.NewInvalidInputError("Invalid filter parameters")
	}
	pagination, err := parsePagination(c)
	if err != nil {
		return err
	}
	resp, err := h.service.ListQuestions(c.Context(), filters, pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags admin-questions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	q, err := h.service.GetQuestion(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	q, err := h.service.CreateQuestion(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Only the provided fields change.
// @Tags admin-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.UpdateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	q, err := h.service.UpdateQuestion(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin-questions
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.DeleteQuestion(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportQuestions godoc
// @Summary Import questions from text
// @Description Parses question blocks separated by blank lines and stores the valid ones.
// @Tags admin-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.ImportQuestionsRequest true "Question text"
// @Success 201 {object} dto.ImportQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions/import [post]
func (h *QuestionHandler) ImportQuestions(c *fiber.Ctx) error {
	var req dto.ImportQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.service.ImportText(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ImportQuestionFile godoc
// @Summary Import a question file
// @Description Uploads a UTF-8 text file. The category defaults to the file name without extension.
// @Tags admin-questions
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question file (.txt)"
// @Param category formData string false "Category"
// @Param difficulty formData int false "Difficulty (1-3, default 2)"
// @Success 201 {object} dto.ImportQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions/import/file [post]
func (h *QuestionHandler) ImportQuestionFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	difficulty, err := formInt(c, "difficulty")
	if err != nil {
		return err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer f.Close()

	logger.Get().Info("Question file uploaded",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)
	resp, err := h.service.ImportFile(c.Context(), fileHeader.Filename, f, strings.TrimSpace(c.FormValue("category")), difficulty)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PreviewQuestions godoc
// @Summary Preview parsed questions
// @Description Parses question text without storing anything.
// @Tags admin-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.PreviewQuestionsRequest true "Question text"
// @Success 200 {object} dto.PreviewQuestionsResponse
// @Router /admin/questions/preview [post]
func (h *QuestionHandler) PreviewQuestions(c *fiber.Ctx) error {
	var req dto.PreviewQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return c.JSON(h.service.PreviewQuestions(c.Context(), req))
}
