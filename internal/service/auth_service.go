package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-quest/internal/config"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrInvalidJWTToken = errors.New("invalid JWT token")

// AuthService issues and validates the HS256 access tokens that carry the caller's email.
type AuthService interface {
	IssueAccessToken(email string) (*dto.TokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	cfg config.AuthConfig
	now func() time.Time
}

func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("auth: jwt secret is not configured")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	return &authServiceImpl{cfg: cfg, now: time.Now}, nil
}

func (s *authServiceImpl) IssueAccessToken(email string) (*dto.TokenResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("auth: email is required")
	}
	now := s.now()
	claims := dto.AuthClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: signed, ExpiresIn: int64(s.cfg.AccessTTL.Seconds())}, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now)}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Email) == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
