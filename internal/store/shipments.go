package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// ShipmentDraft is a candidate shipment. AssignedVehicleID is a plain
// nullable reference: unlike the driver-vehicle pairing there is no
// exclusivity rule, so several shipments may point at one vehicle.
type ShipmentDraft struct {
	FromAddress       string
	ToAddress         string
	Status            string
	Description       string
	AssignedVehicleID *uint
}

func (d ShipmentDraft) validate() error {
	if strings.TrimSpace(d.FromAddress) == "" || strings.TrimSpace(d.ToAddress) == "" {
		return fmt.Errorf("%w: origin and destination addresses are required", ErrValidation)
	}
	return nil
}

func resolveShipmentVehicle(tx *gorm.DB, vehicleID *uint) error {
	if vehicleID == nil {
		return nil
	}
	var vehicle models.Vehicle
	if err := tx.First(&vehicle, *vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDanglingReference
		}
		return err
	}
	return nil
}

func (s *Store) CreateShipment(p auth.Principal, draft ShipmentDraft) (models.Shipment, error) {
	if !auth.Can(p, auth.ActionManageShipments) {
		return models.Shipment{}, ErrPermissionDenied
	}
	if err := draft.validate(); err != nil {
		return models.Shipment{}, err
	}
	shipment := models.Shipment{
		FromAddress:       draft.FromAddress,
		ToAddress:         draft.ToAddress,
		Status:            draft.Status,
		Description:       draft.Description,
		AssignedVehicleID: draft.AssignedVehicleID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveShipmentVehicle(tx, draft.AssignedVehicleID); err != nil {
			return err
		}
		return tx.Create(&shipment).Error
	})
	if err != nil {
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *Store) UpdateShipment(p auth.Principal, id uint, draft ShipmentDraft) (models.Shipment, error) {
	if !auth.Can(p, auth.ActionManageShipments) {
		return models.Shipment{}, ErrPermissionDenied
	}
	if err := draft.validate(); err != nil {
		return models.Shipment{}, err
	}
	var shipment models.Shipment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shipment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := resolveShipmentVehicle(tx, draft.AssignedVehicleID); err != nil {
			return err
		}
		shipment.FromAddress = draft.FromAddress
		shipment.ToAddress = draft.ToAddress
		shipment.Status = draft.Status
		shipment.Description = draft.Description
		shipment.AssignedVehicleID = draft.AssignedVehicleID
		return tx.Save(&shipment).Error
	})
	if err != nil {
		return models.Shipment{}, err
	}
	return shipment, nil
}

// DeleteShipment refuses while any trip references the shipment.
func (s *Store) DeleteShipment(p auth.Principal, id uint) error {
	if !auth.Can(p, auth.ActionManageShipments) {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var shipment models.Shipment
		if err := tx.First(&shipment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var tripCount int64
		if err := tx.Model(&models.Trip{}).Where("shipment_id = ?", id).Count(&tripCount).Error; err != nil {
			return err
		}
		if tripCount > 0 {
			return fmt.Errorf("%w: shipment is used by trips", ErrReferencedByTrip)
		}
		return tx.Unscoped().Delete(&models.Shipment{}, id).Error
	})
}
