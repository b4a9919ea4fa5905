package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/boticaviva/backend/pkg/auth"
	"github.com/boticaviva/backend/pkg/config"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/security"
)

// LoginInput is the admin credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token for the admin panel.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service is the back-office gate. A single configured credential, no user
// accounts behind it.
type Service interface {
	Login(ctx context.Context, input LoginInput) (LoginResult, error)
}

type service struct {
	cfg config.AdminConfig
	log *logger.Logger
	now func() time.Time
}

// NewService wires the admin auth service.
func NewService(cfg config.AdminConfig, log *logger.Logger) (Service, error) {
	if cfg.Email == "" || cfg.PasswordHash == "" {
		return nil, fmt.Errorf("admin credential config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{cfg: cfg, log: log, now: time.Now}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	// identical failure for wrong email and wrong password
	denied := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

	if email != strings.ToLower(s.cfg.Email) {
		s.log.Warn(ctx, "admin login rejected")
		return LoginResult{}, denied
	}
	ok, err := security.VerifyPassword(input.Password, s.cfg.PasswordHash)
	if err != nil || !ok {
		s.log.Warn(ctx, "admin login rejected")
		return LoginResult{}, denied
	}

	now := s.now()
	token, err := pkgauth.IssueAdminToken(s.cfg, now)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing admin token")
	}

	s.log.Info(ctx, "admin login succeeded")
	return LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.cfg.TokenTTL()),
	}, nil
}
