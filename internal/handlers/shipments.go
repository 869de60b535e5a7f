package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
	"github.com/fleetworks/transport-backend/internal/store"
)

type ShipmentInput struct {
	FromAddress       string `json:"fromAddress" binding:"required"`
	ToAddress         string `json:"toAddress" binding:"required"`
	Status            string `json:"status"`
	Description       string `json:"description"`
	AssignedVehicleID *uint  `json:"assignedVehicleId"`
}

func (in ShipmentInput) draft() store.ShipmentDraft {
	return store.ShipmentDraft{
		FromAddress:       in.FromAddress,
		ToAddress:         in.ToAddress,
		Status:            in.Status,
		Description:       in.Description,
		AssignedVehicleID: in.AssignedVehicleID,
	}
}

// GetShipments lists shipments; ?search= matches addresses, status and
// description, ?status= and ?vehicleId= are exact filters.
func GetShipments(db *gorm.DB) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		filter := store.ShipmentFilter{
			Search: c.Query("search"),
			Status: c.Query("status"),
		}
		if v := c.Query("vehicleId"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid vehicleId"})
				return
			}
			filter.VehicleID = uint(id)
		}
		shipments, err := s.ListShipments(middleware.PrincipalFrom(c), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, shipments)
	}
}

func CreateShipment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		var input ShipmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		shipment, err := s.CreateShipment(middleware.PrincipalFrom(c), input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityShipments, Action: "created", ID: shipment.ID})
		c.JSON(201, shipment)
	}
}

func UpdateShipment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input ShipmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		shipment, err := s.UpdateShipment(middleware.PrincipalFrom(c), id, input.draft())
		if err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityShipments, Action: "updated", ID: shipment.ID})
		c.JSON(200, shipment)
	}
}

func DeleteShipment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	s := store.New(db)
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteShipment(middleware.PrincipalFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		hub.PublishChange(services.EntityChange{Entity: services.EntityShipments, Action: "deleted", ID: id})
		c.JSON(200, gin.H{"message": "Shipment deleted"})
	}
}
