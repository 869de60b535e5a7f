package models

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	VehicleStatusAvailable     = "Available"
	VehicleStatusOnTrip        = "On Trip"
	VehicleStatusInMaintenance = "In Maintenance"
)

type Vehicle struct {
	gorm.Model
	PlateNumber  string `gorm:"column:plate_number" json:"plateNumber"`
	VehicleModel string `gorm:"column:vehicle_model" json:"model"`
	Status       string `gorm:"column:status" json:"status"`
	DriverID     *uint  `gorm:"column:driver_id" json:"driverId"`
	Driver       *User  `gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL" json:"driver,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Display is the "plate (model)" label the list views show for an assigned vehicle.
func (v *Vehicle) Display() string {
	return fmt.Sprintf("%s (%s)", v.PlateNumber, v.VehicleModel)
}
