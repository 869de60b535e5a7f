package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
)

type VehicleInput struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Status      string `json:"status"`
	DriverID    *uint  `json:"driverId"`
}

func (in VehicleInput) draft() store.VehicleDraft {
	return store.VehicleDraft{
		PlateNumber: in.PlateNumber,
		Model:       in.Model,
		Status:      in.Status,
		DriverID:    in.DriverID,
	}
}

// GetVehicles lists the fleet; ?search= matches plate number or model.
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		vehicles, err := s.ListVehicles(middleware.PrincipalFrom(c), c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, vehicles)
	}
}

func CreateVehicle(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		vehicle, err := s.CreateVehicle(middleware.PrincipalFrom(c), input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityVehicles, Action: "created", ID: vehicle.ID})
		c.JSON(201, vehicle)
	}
}

func UpdateVehicle(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		vehicle, err := s.UpdateVehicle(middleware.PrincipalFrom(c), id, input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityVehicles, Action: "updated", ID: vehicle.ID})
		c.JSON(200, vehicle)
	}
}

func DeleteVehicle(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteVehicle(middleware.PrincipalFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityVehicles, Action: "deleted", ID: id})
		c.JSON(200, gin.H{"message": "Vehicle deleted"})
	}
}
