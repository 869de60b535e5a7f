package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/models"
)

// assignDriverToVehicle makes vehicleID the only vehicle pointing at driverID.
// Every other vehicle currently holding the driver is released first, so a
// driver never appears on two vehicles at once. vehicleID 0 just releases.
// Runs inside the caller's transaction.
func assignDriverToVehicle(tx *gorm.DB, vehicleID, driverID uint) error {
	q := tx.Model(&models.Vehicle{}).Where("driver_id = ?", driverID)
	if vehicleID != 0 {
		q = q.Where("id <> ?", vehicleID)
	}
	if err := q.Update("driver_id", nil).Error; err != nil {
		return err
	}
	if vehicleID == 0 {
		return nil
	}
	var vehicle models.Vehicle
	if err := tx.First(&vehicle, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The original UI silently ignored a stale vehicle choice.
			return nil
		}
		return err
	}
	return tx.Model(&vehicle).Update("driver_id", driverID).Error
}

// setVehicleDriver is the vehicle-side entry to the same rule: pair a vehicle
// with a driver (or nil), keeping the one-vehicle-per-driver invariant.
func setVehicleDriver(tx *gorm.DB, vehicle *models.Vehicle, driverID *uint) error {
	if driverID == nil {
		vehicle.DriverID = nil
		return nil
	}
	var driver models.User
	if err := tx.Where("id = ? AND role = ?", *driverID, models.RoleDriver).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDanglingReference
		}
		return err
	}
	if err := tx.Model(&models.Vehicle{}).
		Where("driver_id = ? AND id <> ?", *driverID, vehicle.ID).
		Update("driver_id", nil).Error; err != nil {
		return err
	}
	vehicle.DriverID = driverID
	return nil
}
