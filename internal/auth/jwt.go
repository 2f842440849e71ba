// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a session token whose subject is the user's opaque
// auth identity, not the database primary key.
func GenerateJWT(authID string, secretKey []byte) (string, error) {
	if authID == "" {
		return "", errors.New("auth identity cannot be empty")
	}

	claims := jwt.MapClaims{
		"sub": authID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and returns the auth identity
// carried in the subject claim.
func ValidateToken(tokenString string, secretKey []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if authID, ok := claims["sub"].(string); ok && authID != "" {
			return authID, nil
		}
	}

	return "", errors.New("invalid token")
}
