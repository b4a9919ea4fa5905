package auth

import (
	"testing"
	"time"

	"github.com/boticaviva/backend/pkg/config"
)

func adminConfig() config.AdminConfig {
	return config.AdminConfig{
		Email:             "admin@botica.pe",
		JWTSecret:         "test-secret",
		JWTIssuer:         "boticaviva",
		ExpirationMinutes: 30,
	}
}

func TestIssueAndVerifyAdminToken(t *testing.T) {
	cfg := adminConfig()
	raw, err := IssueAdminToken(cfg, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := VerifyAdminToken(cfg, raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != AdminRole {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.Subject != cfg.Email {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := adminConfig()
	raw, err := IssueAdminToken(cfg, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifyAdminToken(cfg, raw); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := IssueAdminToken(adminConfig(), time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := adminConfig()
	other.JWTSecret = "different"
	if _, err := VerifyAdminToken(other, raw); err == nil {
		t.Fatal("expected token signed with other secret to fail")
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	if _, err := VerifyAdminToken(adminConfig(), "  "); err == nil {
		t.Fatal("expected empty token to fail")
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	cfg := adminConfig()
	cfg.JWTSecret = ""
	if _, err := IssueAdminToken(cfg, time.Now()); err == nil {
		t.Fatal("expected error without secret")
	}
}
