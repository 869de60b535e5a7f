package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
)

type TripInput struct {
	ShipmentID uint   `json:"shipmentId" binding:"required"`
	VehicleID  uint   `json:"vehicleId" binding:"required"`
	DriverID   uint   `json:"driverId" binding:"required"`
	Status     string `json:"status"`
}

func (in TripInput) draft() store.TripDraft {
	return store.TripDraft{
		ShipmentID: in.ShipmentID,
		VehicleID:  in.VehicleID,
		DriverID:   in.DriverID,
		Status:     in.Status,
	}
}

// GetTrips lists trips with joined shipment, vehicle and driver. Driver
// principals only ever receive their own trips.
func GetTrips(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		trips, err := s.ListTrips(middleware.PrincipalFrom(c), c.Query("search"), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, trips)
	}
}

func CreateTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		trip, err := s.CreateTrip(middleware.PrincipalFrom(c), input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityTrips, Action: "created", ID: trip.ID})
		c.JSON(201, trip)
	}
}

func UpdateTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		trip, err := s.UpdateTrip(middleware.PrincipalFrom(c), id, input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityTrips, Action: "updated", ID: trip.ID})
		c.JSON(200, trip)
	}
}

func DeleteTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteTrip(middleware.PrincipalFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityTrips, Action: "deleted", ID: id})
		c.JSON(200, gin.H{"message": "Trip deleted"})
	}
}

// UpdateTripStatus lets the assigned driver (or a manager) change a trip's
// status. The value is free text, like every status in the system.
func UpdateTripStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		trip, err := s.UpdateTripStatus(middleware.PrincipalFrom(c), id, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityTrips, Action: "updated", ID: trip.ID})
		c.JSON(200, trip)
	}
}
