package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/config"
	"quizbank/internal/domain"
	"quizbank/internal/dto"
	"quizbank/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidJWTToken     = errors.New("invalid jwt token")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotARefreshToken    = errors.New("not a refresh token")
	ErrJWTSecretNotDefined = errors.New("jwt secret key is not configured")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfileResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
}

type authServiceImpl struct {
	userRepo domain.UserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, ErrJWTSecretNotDefined
	}
	return &authServiceImpl{userRepo: userRepo, jwtCfg: jwtCfg}, nil
}

// Register creates a regular, non-admin account.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfileResponse, error) {
	user, err := newUserAccount(req.Username, req.Password, req.Email, false)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if domain.HasCode(err, domain.CodeDuplicate) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to create user", err)
	}
	logger.Get().Info("User registered", zap.String("userID", user.ID), zap.String("username", user.Username))
	return toUserProfileResponse(user), nil
}

// newUserAccount validates the credentials and builds a user with a hashed password.
func newUserAccount(username, password, email string, isAdmin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}
	user := domain.NewUser(username, hash, strings.TrimSpace(email), isAdmin)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a token pair.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.CodeUnauthorized, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}

	ok, err := checkPassword(user.PasswordHash, req.Password)
	if err != nil {
		logger.Get().Error("Stored password hash is unusable", zap.String("userID", user.ID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to verify password", err)
	}
	if !ok {
		logger.Get().Info("Login rejected", zap.String("username", user.Username))
		return nil, domain.NewError(domain.CodeUnauthorized, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.jwtCfg.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create refresh token", err)
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtCfg.AccessTokenTTL.Seconds()),
		User:         *toUserProfileResponse(user),
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// RefreshToken exchanges a refresh token for a new pair. Admin rights are re-read from storage.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "Invalid refresh token", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewError(domain.CodeUnauthorized, ErrNotARefreshToken.Error(), ErrNotARefreshToken)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		logger.Get().Warn("User not found for refresh token", zap.String("userID", claims.UserID))
		return nil, domain.NewNotFoundError(fmt.Sprintf("User %s not found for refresh token", claims.UserID))
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("JWT token refreshed", zap.String("userID", user.ID))
	return resp, nil
}
