package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/pkg/utils"
)

const principalKey = "principal"

// AuthMiddleware validates the bearer token, rejects revoked tokens and puts
// the resulting Principal into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// WebSocket clients cannot set headers; they pass the token as a
		// query parameter instead.
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Authorization header or token query parameter required"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		if jti, _ := claims["jti"].(string); services.TokenRevoked(c.Request.Context(), jti) {
			c.JSON(401, gin.H{"error": "Token has been revoked"})
			c.Abort()
			return
		}

		id, _ := claims["id"].(float64)
		role, _ := claims["role"].(string)
		name, _ := claims["name"].(string)
		c.Set(principalKey, auth.Principal{
			UserID:      uint(id),
			Role:        models.Role(role),
			DisplayName: name,
		})
		if jti, ok := claims["jti"].(string); ok {
			c.Set("jti", jti)
		}
		if exp, ok := claims["exp"].(float64); ok {
			c.Set("exp", int64(exp))
		}
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal set by AuthMiddleware.
func PrincipalFrom(c *gin.Context) auth.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(auth.Principal)
	return principal
}
