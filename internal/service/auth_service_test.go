package service

import (
	"context"
	"testing"
	"time"

	"skill-quest/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T, cfg config.AuthConfig) *authServiceImpl {
	t.Helper()
	svc, err := NewAuthService(cfg)
	require.NoError(t, err)
	return svc.(*authServiceImpl)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.AuthConfig{JWTSecret: " "})
	assert.Error(t, err)
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := newTestAuthService(t, config.AuthConfig{JWTSecret: "test-secret", Issuer: "skill-quest", AccessTTL: time.Hour})

	token, err := svc.IssueAccessToken("learner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.ValidateJWT(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", claims.Email)
	assert.Equal(t, "skill-quest", claims.Issuer)
}

func TestAuthService_IssueAccessToken_EmptyEmail(t *testing.T) {
	svc := newTestAuthService(t, config.AuthConfig{JWTSecret: "test-secret"})
	_, err := svc.IssueAccessToken("")
	assert.Error(t, err)
}

func TestAuthService_ValidateJWT_Failures(t *testing.T) {
	ctx := context.Background()
	issuer := newTestAuthService(t, config.AuthConfig{JWTSecret: "test-secret", Issuer: "skill-quest", AccessTTL: time.Hour})
	token, err := issuer.IssueAccessToken("learner@example.com")
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		svc := newTestAuthService(t, config.AuthConfig{JWTSecret: "test-secret", Issuer: "skill-quest"})
		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := svc.ValidateJWT(ctx, token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		svc := newTestAuthService(t, config.AuthConfig{JWTSecret: "other-secret", Issuer: "skill-quest"})
		_, err := svc.ValidateJWT(ctx, token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		svc := newTestAuthService(t, config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"})
		_, err := svc.ValidateJWT(ctx, token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.ValidateJWT(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": "skill-quest",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.ValidateJWT(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})

	t.Run("UnexpectedAlgorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"iss":   "skill-quest",
			"email": "learner@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		signed, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.ValidateJWT(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidJWTToken)
	})
}
