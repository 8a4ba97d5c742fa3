package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: time.Hour}, zap.NewNop())

	token, err := svc.IssueToken(42, domain.UserRolePractitioner)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	userID, role, err := svc.ParseToken(context.Background(), token)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if userID != 42 || role != domain.UserRolePractitioner {
		t.Errorf("получено %d %s", userID, role)
	}
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: time.Hour}, zap.NewNop())

	foreign := NewAuthService(config.JWTConfig{SigningKey: "other-key", AccessTokenTTL: time.Hour}, zap.NewNop())
	signedElsewhere, _ := foreign.IssueToken(42, domain.UserRoleClient)

	expiredIssuer := NewAuthService(config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: -time.Minute}, zap.NewNop())
	expired, _ := expiredIssuer.IssueToken(42, domain.UserRoleClient)

	badRole, _ := svc.IssueToken(42, domain.UserRole("guest"))

	for name, token := range map[string]string{
		"мусор":            "not-a-token",
		"чужая подпись":    signedElsewhere,
		"истекший":         expired,
		"неизвестная роль": badRole,
	} {
		if _, _, err := svc.ParseToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: ожидалась ErrInvalidToken, получено %v", name, err)
		}
	}
}
