package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// VehicleDraft is a candidate vehicle. DriverID pairs the save with a driver
// assignment; nil releases the current driver. Plate uniqueness is not
// checked on this path (only the seeder checks it), matching the reference
// behavior.
type VehicleDraft struct {
	PlateNumber string
	Model       string
	Status      string
	DriverID    *uint
}

func (d VehicleDraft) validate() error {
	if strings.TrimSpace(d.PlateNumber) == "" || strings.TrimSpace(d.Model) == "" {
		return fmt.Errorf("%w: plate number and model are required", ErrValidation)
	}
	return nil
}

// CreateVehicle requires ManageVehicles (administrators only).
func (s *Store) CreateVehicle(p auth.Principal, draft VehicleDraft) (models.Vehicle, error) {
	if !auth.Can(p, auth.ActionManageVehicles) {
		return models.Vehicle{}, ErrPermissionDenied
	}
	if err := draft.validate(); err != nil {
		return models.Vehicle{}, err
	}
	vehicle := models.Vehicle{
		PlateNumber:  draft.PlateNumber,
		VehicleModel: draft.Model,
		Status:       draft.Status,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := setVehicleDriver(tx, &vehicle, draft.DriverID); err != nil {
			return err
		}
		return tx.Create(&vehicle).Error
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

// UpdateVehicle is open to administrators and dispatchers, mirroring the
// original UI where shipment managers could also edit the fleet.
func (s *Store) UpdateVehicle(p auth.Principal, id uint, draft VehicleDraft) (models.Vehicle, error) {
	if !auth.Can(p, auth.ActionManageVehicles) && !auth.Can(p, auth.ActionManageShipments) {
		return models.Vehicle{}, ErrPermissionDenied
	}
	if err := draft.validate(); err != nil {
		return models.Vehicle{}, err
	}
	var vehicle models.Vehicle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		vehicle.PlateNumber = draft.PlateNumber
		vehicle.VehicleModel = draft.Model
		vehicle.Status = draft.Status
		if err := setVehicleDriver(tx, &vehicle, draft.DriverID); err != nil {
			return err
		}
		return tx.Save(&vehicle).Error
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

// DeleteVehicle refuses while any trip or shipment references the vehicle.
func (s *Store) DeleteVehicle(p auth.Principal, id uint) error {
	if !auth.Can(p, auth.ActionManageVehicles) && !auth.Can(p, auth.ActionManageShipments) {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var tripCount int64
		if err := tx.Model(&models.Trip{}).Where("vehicle_id = ?", id).Count(&tripCount).Error; err != nil {
			return err
		}
		if tripCount > 0 {
			return fmt.Errorf("%w: vehicle is assigned to trips", ErrReferencedByTrip)
		}
		var shipmentCount int64
		if err := tx.Model(&models.Shipment{}).Where("assigned_vehicle_id = ?", id).Count(&shipmentCount).Error; err != nil {
			return err
		}
		if shipmentCount > 0 {
			return fmt.Errorf("%w: vehicle is assigned to shipments", ErrReferencedByTrip)
		}
		return tx.Unscoped().Delete(&models.Vehicle{}, id).Error
	})
}
