package handler

import (
	"quizbank/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Practice *PracticeHandler
	User     *UserHandler
}

// SetupRoutes mounts the API routes on app.
func SetupRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator) {
	protected := middleware.Protected(tokens)
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", protected, h.Auth.Logout)

	api.Get("/categories", h.Question.GetCategories)

	userGroup := api.Group("/users", protected)
	userGroup.Get("/me", h.User.GetMyProfile)
	userGroup.Get("/me/attempts", vm.ValidateListQuery(), h.User.GetMyAttempts)
	userGroup.Get("/me/wrong-questions", vm.ValidateListQuery(), h.User.GetMyWrongQuestions)
	userGroup.Post("/me/wrong-questions/:id/review", vm.ValidateIDParam("question_id"), h.User.ReviewWrongQuestion)
	userGroup.Get("/me/stats", h.User.GetMyStats)

	practice := api.Group("/practice/sessions", protected)
	practice.Post("/", h.Practice.StartSession)
	practice.Get("/:id", vm.ValidateSessionParam(), h.Practice.GetSession)
	practice.Post("/:id/answer", vm.ValidateSessionParam(), h.Practice.SubmitAnswer)
	practice.Post("/:id/skip", vm.ValidateSessionParam(), h.Practice.SkipQuestion)
	practice.Get("/:id/summary", vm.ValidateSessionParam(), h.Practice.GetSummary)

	admin := api.Group("/admin", protected, middleware.AdminOnly())
	admin.Get("/questions", vm.ValidateListQuery(), h.Question.ListQuestions)
	admin.Post("/questions", h.Question.CreateQuestion)
	admin.Post("/questions/import", h.Question.ImportQuestions)
	admin.Post("/questions/import/file", h.Question.ImportQuestionFile)
	admin.Post("/questions/preview", h.Question.PreviewQuestions)
	admin.Get("/questions/:id", vm.ValidateIDParam("question_id"), h.Question.GetQuestion)
	admin.Put("/questions/:id", vm.ValidateIDParam("question_id"), h.Question.UpdateQuestion)
	admin.Delete("/questions/:id", vm.ValidateIDParam("question_id"), h.Question.DeleteQuestion)

	admin.Get("/users", vm.ValidateListQuery(), h.User.ListUsers)
	admin.Post("/users", h.User.CreateUser)
	admin.Put("/users/:id", vm.ValidateIDParam("user_id"), h.User.UpdateUser)
	admin.Delete("/users/:id", vm.ValidateIDParam("user_id"), h.User.DeleteUser)
}
