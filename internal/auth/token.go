package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// Token type claims distinguishing access tokens from refresh tokens
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carries the identity encoded in an access or refresh token
type Claims struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"tokenType"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a short-lived access token for the user
func GenerateAccessToken(user *model.User, secret string, expiry time.Duration) (string, error) {
	return generateToken(user, TokenTypeAccess, secret, expiry)
}

// GenerateRefreshToken signs a long-lived refresh token for the user
func GenerateRefreshToken(user *model.User, secret string, expiry time.Duration) (string, error) {
	return generateToken(user, TokenTypeRefresh, secret, expiry)
}

func generateToken(user *model.User, tokenType, secret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a signed token
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
