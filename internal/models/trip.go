package models

import (
	"gorm.io/gorm"
)

const (
	TripStatusPlanned   = "Planned"
	TripStatusInTransit = "In Transit"
	TripStatusCompleted = "Completed"
)

// Trip binds one shipment to one vehicle and one driver. It is a join record:
// deleting a trip never touches the rows it references, and the referenced rows
// cannot be deleted while the trip exists.
type Trip struct {
	gorm.Model
	ShipmentID uint      `gorm:"column:shipment_id;not null" json:"shipmentId"`
	VehicleID  uint      `gorm:"column:vehicle_id;not null" json:"vehicleId"`
	DriverID   uint      `gorm:"column:driver_id;not null" json:"driverId"`
	Status     string    `gorm:"column:status" json:"status"`
	Shipment   *Shipment `gorm:"foreignKey:ShipmentID;constraint:OnDelete:RESTRICT" json:"shipment,omitempty"`
	Vehicle    *Vehicle  `gorm:"foreignKey:VehicleID;constraint:OnDelete:RESTRICT" json:"vehicle,omitempty"`
	Driver     *User     `gorm:"foreignKey:DriverID;constraint:OnDelete:RESTRICT" json:"driver,omitempty"`
}

func (Trip) TableName() string {
	return "trips"
}
