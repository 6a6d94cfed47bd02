package handler

import (
	"quizbank/internal/dto"
	"quizbank/internal/logger"
	"quizbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PracticeHandler struct {
	practiceService service.PracticeService
}

func NewPracticeHandler(practiceService service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// StartSession starts a practice session on random questions.
// @Summary Start Practice Session
// @Description Draws random questions of a category and difficulty and starts a session.
// @Tags practice
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.StartPracticeRequest true "Session options"
// @Success 201 {object} dto.PracticeSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid options"
// @Failure 404 {object} middleware.ErrorResponse "No matching questions"
// @Router /practice/sessions [post]
func (h *PracticeHandler) StartSession(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.StartPracticeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	session, err := h.practiceService.StartSession(c.Context(), userID, req)
	if err != nil {
		return err
	}
	logger.Get().Info("Practice session started",
		zap.String("userID", userID),
		zap.String("sessionID", session.SessionID),
		zap.Int("total", session.Total),
	)
	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetSession returns the current question of a session.
// @Summary Get Practice Session
// @Tags practice
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeSessionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not your session"
// @Failure 404 {object} middleware.ErrorResponse "Session not found or expired"
// @Router /practice/sessions/{id} [get]
func (h *PracticeHandler) GetSession(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	session, err := h.practiceService.GetSession(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// SubmitAnswer grades the answer to the current question.
// @Summary Answer Current Question
// @Tags practice
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} middleware.ErrorResponse "Empty answer or finished session"
// @Failure 404 {object} middleware.ErrorResponse "Session not found or expired"
// @Failure 409 {object} middleware.ErrorResponse "Another answer is in flight"
// @Router /practice/sessions/{id}/answer [post]
func (h *PracticeHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SubmitAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.practiceService.SubmitAnswer(c.Context(), userID, c.Params("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// SkipQuestion records the current question as skipped.
// @Summary Skip Current Question
// @Tags practice
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} middleware.ErrorResponse "Finished session"
// @Failure 409 {object} middleware.ErrorResponse "Another answer is in flight"
// @Router /practice/sessions/{id}/skip [post]
func (h *PracticeHandler) SkipQuestion(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	result, err := h.practiceService.SkipQuestion(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetSummary godoc
// @Summary Practice Session Summary
// @Tags practice
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeSummaryResponse
// @Router /practice/sessions/{id}/summary [get]
func (h *PracticeHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	summary, err := h.practiceService.GetSummary(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
