package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fleetworks/transport-backend/internal/models"
)

const tokenLifetime = 72 * time.Hour

// jwtSecret comes from the environment only. main refuses to start without
// it, so tokens are never signed with a default key.
func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken mints a bearer token for an authenticated user. The jti claim
// lets logout revoke the token before it expires.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"login": user.Login,
		"name":  user.FullName,
		"role":  string(user.Role),
		"jti":   fmt.Sprintf("%d-%d", user.ID, now.UnixNano()),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
}
