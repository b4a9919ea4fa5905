package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boticaviva/backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only role the back-office token ever carries.
const AdminRole = "admin"

// ErrInvalidToken signals a missing, malformed, or expired token.
var ErrInvalidToken = errors.New("invalid admin token")

// Claims are the registered claims plus the fixed admin role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs a short-lived token for the fixed admin credential.
func IssueAdminToken(cfg config.AdminConfig, now time.Time) (string, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return "", fmt.Errorf("admin jwt secret is required")
	}

	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	claims := Claims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			Subject:   cfg.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// VerifyAdminToken parses and validates the token, returning its claims.
func VerifyAdminToken(cfg config.AdminConfig, raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
