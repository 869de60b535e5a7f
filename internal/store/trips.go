package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// TripDraft is a candidate trip. All three references are required and must
// resolve at save time; the driver reference must be a driver-role user.
type TripDraft struct {
	ShipmentID uint
	VehicleID  uint
	DriverID   uint
	Status     string
}

func resolveTripRefs(tx *gorm.DB, draft TripDraft) error {
	if draft.ShipmentID == 0 || draft.VehicleID == 0 || draft.DriverID == 0 {
		return fmt.Errorf("%w: shipment, vehicle and driver are required", ErrValidation)
	}
	var shipment models.Shipment
	if err := tx.First(&shipment, draft.ShipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: shipment %d", ErrDanglingReference, draft.ShipmentID)
		}
		return err
	}
	var vehicle models.Vehicle
	if err := tx.First(&vehicle, draft.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: vehicle %d", ErrDanglingReference, draft.VehicleID)
		}
		return err
	}
	var driver models.User
	if err := tx.Where("id = ? AND role = ?", draft.DriverID, models.RoleDriver).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: driver %d", ErrDanglingReference, draft.DriverID)
		}
		return err
	}
	return nil
}

func (s *Store) CreateTrip(p auth.Principal, draft TripDraft) (models.Trip, error) {
	if !auth.Can(p, auth.ActionManageTrips) {
		return models.Trip{}, ErrPermissionDenied
	}
	trip := models.Trip{
		ShipmentID: draft.ShipmentID,
		VehicleID:  draft.VehicleID,
		DriverID:   draft.DriverID,
		Status:     draft.Status,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveTripRefs(tx, draft); err != nil {
			return err
		}
		return tx.Create(&trip).Error
	})
	if err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

func (s *Store) UpdateTrip(p auth.Principal, id uint, draft TripDraft) (models.Trip, error) {
	if !auth.Can(p, auth.ActionManageTrips) {
		return models.Trip{}, ErrPermissionDenied
	}
	var trip models.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trip, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := resolveTripRefs(tx, draft); err != nil {
			return err
		}
		trip.ShipmentID = draft.ShipmentID
		trip.VehicleID = draft.VehicleID
		trip.DriverID = draft.DriverID
		trip.Status = draft.Status
		return tx.Save(&trip).Error
	})
	if err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

// DeleteTrip is unguarded: a trip is a leaf record.
func (s *Store) DeleteTrip(p auth.Principal, id uint) error {
	if !auth.Can(p, auth.ActionManageTrips) {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var trip models.Trip
		if err := tx.First(&trip, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Unscoped().Delete(&models.Trip{}, id).Error
	})
}

// UpdateTripStatus is the one driver-facing mutation: the assigned driver may
// change the status of their own trip. Managers may change any trip's status.
func (s *Store) UpdateTripStatus(p auth.Principal, id uint, status string) (models.Trip, error) {
	var trip models.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trip, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		allowed := auth.Can(p, auth.ActionManageTrips) ||
			auth.Can(p, auth.ActionChangeOwnTripStatus, auth.Target{DriverID: trip.DriverID})
		if !allowed {
			return ErrPermissionDenied
		}
		trip.Status = status
		return tx.Save(&trip).Error
	})
	if err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}
