package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
	"github.com/fleetworks/transport-backend/pkg/utils"
)

type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a bearer token.
func Login(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		principal, err := s.Authenticate(input.Login, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		user, err := s.GetUser(principal.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		logrus.WithFields(logrus.Fields{"user": user.Login, "role": user.Role}).Info("login")
		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"login":    user.Login,
				"fullName": user.FullName,
				"role":     user.Role,
			},
		})
	}
}

// Logout revokes the presented token when a revocation store is configured.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		jti := c.GetString("jti")
		exp := c.GetInt64("exp")
		if jti != "" && exp > 0 {
			if err := services.RevokeToken(c.Request.Context(), jti, time.Unix(exp, 0)); err != nil {
				logrus.Warnf("logout: revoke token: %v", err)
			}
		}
		c.JSON(200, gin.H{"message": "Logged out"})
	}
}
