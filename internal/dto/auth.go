package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT. Email is the caller identity.
type AuthClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenResponse represents the response containing an access token.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
