package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
)

// GetDrivers lists the driver roster with each driver's assigned vehicle.
// Supports ?search= (substring over name/phone/login) and ?status=.
func GetDrivers(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		rows, err := s.ListDrivers(middleware.PrincipalFrom(c), c.Query("search"), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, rows)
	}
}

// driverDraft converts the input the way the driver form works: the vehicle
// selection is always part of the submission, so an absent vehicleId means
// "no vehicle" rather than "leave alone".
func driverDraft(input UserInput) store.UserDraft {
	draft := input.draft()
	if draft.VehicleID == nil {
		draft.VehicleID = new(uint)
	}
	return draft
}

// CreateDriver adds a driver account, optionally pairing it with a vehicle.
func CreateDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input UserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		draft := driverDraft(input)
		user, err := s.CreateDriver(middleware.PrincipalFrom(c), draft)
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityUsers, Action: "created", ID: user.ID})
		hub.PublishChange(services.EntityChange{Entity: services.EntityVehicles, Action: "updated", ID: *draft.VehicleID})
		c.JSON(201, user)
	}
}

// UpdateDriver edits a driver and re-applies the vehicle pairing.
func UpdateDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
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
		draft := driverDraft(input)
		user, err := s.UpdateUser(middleware.PrincipalFrom(c), id, draft)
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityUsers, Action: "updated", ID: user.ID})
		hub.PublishChange(services.EntityChange{Entity: services.EntityVehicles, Action: "updated", ID: *draft.VehicleID})
		c.JSON(200, user)
	}
}

// DeleteDriver removes a driver; blocked while trips reference them, and the
// driver's vehicle is released on success.
func DeleteDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
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
		c.JSON(200, gin.H{"message": "Driver deleted"})
	}
}
