package auth

import (
	"context"
	"testing"

	pkgauth "github.com/boticaviva/backend/pkg/auth"
	"github.com/boticaviva/backend/pkg/config"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/security"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: discard{}})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func adminConfig(t *testing.T, password string) config.AdminConfig {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return config.AdminConfig{
		Email:             "admin@boticaviva.pe",
		PasswordHash:      hash,
		JWTSecret:         "test-secret",
		JWTIssuer:         "boticaviva",
		ExpirationMinutes: 60,
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	cfg := adminConfig(t, "hunter2hunter2")
	svc, err := NewService(cfg, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{Email: "Admin@BoticaViva.pe", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := pkgauth.VerifyAdminToken(cfg, result.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Role != pkgauth.AdminRole {
		t.Fatalf("expected admin role, got %s", claims.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, err := NewService(adminConfig(t, "hunter2hunter2"), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{Email: "admin@boticaviva.pe", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, err := NewService(adminConfig(t, "hunter2hunter2"), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{Email: "intruder@example.com", Password: "hunter2hunter2"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	svc, err := NewService(adminConfig(t, "hunter2hunter2"), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
