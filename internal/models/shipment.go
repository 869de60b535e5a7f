package models

import (
	"gorm.io/gorm"
)

const (
	ShipmentStatusPlanned   = "Planned"
	ShipmentStatusInTransit = "In Transit"
	ShipmentStatusDelivered = "Delivered"
)

type Shipment struct {
	gorm.Model
	FromAddress       string   `gorm:"column:from_address" json:"fromAddress"`
	ToAddress         string   `gorm:"column:to_address" json:"toAddress"`
	Status            string   `gorm:"column:status" json:"status"`
	Description       string   `gorm:"column:description" json:"description"`
	AssignedVehicleID *uint    `gorm:"column:assigned_vehicle_id" json:"assignedVehicleId"`
	AssignedVehicle   *Vehicle `gorm:"foreignKey:AssignedVehicleID;constraint:OnDelete:SET NULL" json:"assignedVehicle,omitempty"`
}

func (Shipment) TableName() string {
	return "shipments"
}
