package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"quizbank/internal/dto"
	"quizbank/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockTokenValidator implements middleware.TokenValidator.
type ManualMockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func claimsFor(token string) (*dto.AuthClaims, error) {
	switch token {
	case "user_token":
		return &dto.AuthClaims{UserID: "user123", Username: "alice", TokenType: "access"}, nil
	case "admin_token":
		return &dto.AuthClaims{UserID: "admin1", Username: "admin", IsAdmin: true, TokenType: "access"}, nil
	case "refresh_token":
		return &dto.AuthClaims{UserID: "user123", TokenType: "refresh"}, nil
	}
	return nil, errors.New("invalid token")
}

func TestProtected(t *testing.T) {
	validator := &ManualMockTokenValidator{ValidateJWTFunc: func(_ context.Context, token string) (*dto.AuthClaims, error) {
		return claimsFor(token)
	}}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedCode   string
		expectedUserID string
	}{
		{name: "No Auth Header", expectedStatus: fiber.StatusUnauthorized, expectedCode: "MISSING_AUTH_HEADER"},
		{name: "Not Bearer", authHeader: "Basic abc", expectedStatus: fiber.StatusUnauthorized, expectedCode: "INVALID_AUTH_SCHEME"},
		{name: "Bearer No Token", authHeader: "Bearer ", expectedStatus: fiber.StatusUnauthorized, expectedCode: "EMPTY_TOKEN"},
		{name: "Invalid Token", authHeader: "Bearer garbage", expectedStatus: fiber.StatusUnauthorized, expectedCode: "INVALID_TOKEN"},
		{name: "Refresh Token", authHeader: "Bearer refresh_token", expectedStatus: fiber.StatusUnauthorized, expectedCode: "INVALID_TOKEN_TYPE"},
		{name: "Valid Access Token", authHeader: "Bearer user_token", expectedStatus: fiber.StatusOK, expectedUserID: "user123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			var seenUserID string
			app.Get("/protected", middleware.Protected(validator), func(c *fiber.Ctx) error {
				seenUserID = middleware.UserID(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, seenUserID)

			if tc.expectedCode != "" {
				var body middleware.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.expectedCode, body.Code)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	validator := &ManualMockTokenValidator{ValidateJWTFunc: func(_ context.Context, token string) (*dto.AuthClaims, error) {
		return claimsFor(token)
	}}
	app := fiber.New()
	app.Get("/admin", middleware.Protected(validator), middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer user_token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin_token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAdminOnly_WithoutProtected(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
