package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/config"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/pkg/httpErrors"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
)

func newTestAuthUC(t *testing.T) *authUC {
	t.Helper()
	hash, err := models.HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Auth: config.AuthConfig{
		JwtSecretKey: "jwt-secret",
		Username:     "admin",
		PasswordHash: hash,
		TokenTTL:     time.Hour,
	}}
	return NewAuthUseCase(cfg, logger.NewNopLogger()).(*authUC)
}

func TestAuthUC_IssueToken(t *testing.T) {
	uc := newTestAuthUC(t)
	ctx := context.Background()

	token, err := uc.IssueToken(ctx, &models.Credentials{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token.TokenType != "Bearer" || token.ExpiresIn != 3600 || token.AccessToken == "" {
		t.Fatalf("unexpected token: %+v", token)
	}

	identity, err := uc.CurrentCaller(ctx, token.AccessToken)
	if err != nil {
		t.Fatalf("CurrentCaller: %v", err)
	}
	if identity.Username != "admin" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthUC_IssueToken_BadCredentials(t *testing.T) {
	uc := newTestAuthUC(t)
	ctx := context.Background()

	for _, creds := range []*models.Credentials{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "s3cret"},
	} {
		if _, err := uc.IssueToken(ctx, creds); !errors.Is(err, httpErrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", creds.Username, err)
		}
	}

	if _, err := uc.IssueToken(ctx, &models.Credentials{}); err == nil || errors.Is(err, httpErrors.ErrUnauthorized) {
		t.Fatalf("expected a validation error for empty credentials, got %v", err)
	}
}

func TestAuthUC_CurrentCaller_Rejects(t *testing.T) {
	uc := newTestAuthUC(t)
	ctx := context.Background()

	foreign, err := utils.GenerateJWTToken("admin", "another-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	stranger, err := utils.GenerateJWTToken("someone", "jwt-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := utils.GenerateJWTToken("admin", "jwt-secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"foreign secret": foreign,
		"unknown user":   stranger,
		"expired":        expired,
	} {
		if _, err := uc.CurrentCaller(ctx, token); !errors.Is(err, httpErrors.ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}
