package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
)

var ErrInvalidToken = errors.New("недействительный токен")

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// AuthServiceImpl verifies access tokens issued by the identity service.
// IssueToken exists for local development and tests.
type AuthServiceImpl struct {
	jwtConfig config.JWTConfig
	logger    *zap.Logger
}

func NewAuthService(jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

func (s *AuthServiceImpl) ParseToken(_ context.Context, tokenString string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidToken
	}
	if claims.UserID <= 0 || !claims.Role.IsValid() {
		return 0, "", fmt.Errorf("%w: неполные данные пользователя", ErrInvalidToken)
	}

	return claims.UserID, claims.Role, nil
}

func (s *AuthServiceImpl) IssueToken(userID int64, role domain.UserRole) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		s.logger.Error("ошибка подписи токена", zap.Int64("userID", userID), zap.Error(err))
		return "", fmt.Errorf("ошибка подписи access token: %w", err)
	}

	return token, nil
}
