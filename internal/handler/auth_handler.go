package handler

import (
	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"
	"quizbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a regular user account.
// @Summary Register
// @Description Creates a non-admin account with a username and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid input"
// @Failure 409 {object} middleware.ErrorResponse "Username already taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	profile, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// Login exchanges credentials for a token pair.
// @Summary Login
// @Description Checks the username and password and issues access and refresh tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Missing fields"
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	var missing domain.ValidationErrors
	if req.Username == "" {
		missing = append(missing, domain.NewMissingFieldError("username"))
	}
	if req.Password == "" {
		missing = append(missing, domain.NewMissingFieldError("password"))
	}
	if len(missing) > 0 {
		return missing
	}

	tokens, err := h.authService.Login(c.Context(), req)
	if err != nil {
		logger.Get().Info("Login failed", zap.String("username", req.Username), zap.Error(err))
		return err
	}
	return c.JSON(tokens)
}

// RefreshToken issues a new token pair from a refresh token.
// @Summary Refresh Tokens
// @Description Issues a new access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Missing refresh token"
// @Failure 401 {object} middleware.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.RefreshToken == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("refresh_token")}
	}
	tokens, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// Logout ends the session on the client side; tokens are stateless.
// @Summary Logout
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	logger.Get().Info("User logged out", zap.String("userID", userID))
	return c.JSON(dto.MessageResponse{Message: "Successfully logged out"})
}
