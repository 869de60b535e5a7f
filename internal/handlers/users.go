package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/models"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
)

// UserInput is shared by the users and drivers endpoints. VehicleID is
// optional: when the field is absent the current driver-vehicle assignment is
// left untouched, so a plain profile edit cannot drop it.
type UserInput struct {
	Login        string `json:"login" binding:"required"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	FullName     string `json:"fullName" binding:"required"`
	PhoneNumber  string `json:"phoneNumber"`
	DriverStatus string `json:"driverStatus"`
	VehicleID    *uint  `json:"vehicleId"`
}

func (in UserInput) draft() store.UserDraft {
	return store.UserDraft{
		Login:        in.Login,
		Password:     in.Password,
		Role:         models.Role(in.Role),
		FullName:     in.FullName,
		PhoneNumber:  in.PhoneNumber,
		DriverStatus: in.DriverStatus,
		VehicleID:    in.VehicleID,
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GetProfile returns the authenticated user's own record.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		p := middleware.PrincipalFrom(c)
		user, err := s.GetUser(p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"id":           user.ID,
			"login":        user.Login,
			"fullName":     user.FullName,
			"phoneNumber":  user.PhoneNumber,
			"role":         user.Role,
			"driverStatus": user.DriverStatus,
		})
	}
}

// GetUsers lists every account (administrators only).
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		users, err := s.ListUsers(middleware.PrincipalFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, users)
	}
}

// CreateUser creates an account of any role (administrators only).
func CreateUser(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input UserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := s.CreateUser(middleware.PrincipalFrom(c), input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityUsers, Action: "created", ID: user.ID})
		c.JSON(201, user)
	}
}

// UpdateUser edits an account; an empty password keeps the old credential.
func UpdateUser(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input UserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := s.UpdateUser(middleware.PrincipalFrom(c), id, input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityUsers, Action: "updated", ID: user.ID})
		c.JSON(200, user)
	}
}

// DeleteUser removes an account; blocked while trips reference it.
func DeleteUser(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteUser(middleware.PrincipalFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityUsers, Action: "deleted", ID: id})
		c.JSON(200, gin.H{"message": "User deleted"})
	}
}
