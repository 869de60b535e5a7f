package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// UserDraft is a candidate user submitted for creation or update. Password is
// plaintext here; it is hashed before anything is persisted. VehicleID pairs
// the save with a driver-vehicle assignment and is only honored for
// driver-role drafts: nil leaves the current assignment untouched, a pointer
// to 0 releases it. Profile edits that never saw the assignment must not
// clear it.
type UserDraft struct {
	Login        string
	Password     string
	Role         models.Role
	FullName     string
	PhoneNumber  string
	DriverStatus string
	VehicleID    *uint
}

func (d UserDraft) validate(requirePassword bool) error {
	if strings.TrimSpace(d.Login) == "" || strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("%w: login and full name are required", ErrValidation)
	}
	if requirePassword && d.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if d.Password != "" && !auth.ValidPassword(d.Password) {
		return fmt.Errorf("%w: password must be at least 8 characters with letters and digits", ErrValidation)
	}
	return nil
}

// loginTaken reports whether another user already holds the login. The match
// is case-sensitive on purpose: that is the behavior the data was created
// under, and relaxing it could orphan existing accounts.
func loginTaken(tx *gorm.DB, login string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.User{}).Where("login = ?", login)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser persists a new user of any role. Requires ManageUsers.
func (s *Store) CreateUser(p auth.Principal, draft UserDraft) (models.User, error) {
	if !auth.Can(p, auth.ActionManageUsers) {
		return models.User{}, ErrPermissionDenied
	}
	return s.createUser(draft)
}

// CreateDriver persists a new driver. The driver roster is maintained by
// dispatchers as well, so this requires ManageShipments rather than
// ManageUsers, matching who may staff a shipment.
func (s *Store) CreateDriver(p auth.Principal, draft UserDraft) (models.User, error) {
	if !auth.Can(p, auth.ActionManageShipments) {
		return models.User{}, ErrPermissionDenied
	}
	draft.Role = models.RoleDriver
	return s.createUser(draft)
}

func (s *Store) createUser(draft UserDraft) (models.User, error) {
	if err := draft.validate(true); err != nil {
		return models.User{}, err
	}
	user := models.User{
		Login:        draft.Login,
		PasswordHash: auth.HashPassword(draft.Password),
		Role:         draft.Role,
		FullName:     draft.FullName,
		PhoneNumber:  draft.PhoneNumber,
		DriverStatus: draft.DriverStatus,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := loginTaken(tx, draft.Login, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateLogin
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.IsDriver() && draft.VehicleID != nil {
			return assignDriverToVehicle(tx, *draft.VehicleID, user.ID)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser edits an existing user. An empty draft password leaves the
// stored credential unchanged. Requires ManageUsers for non-driver rows;
// driver rows accept ManageShipments so dispatchers can maintain the roster.
func (s *Store) UpdateUser(p auth.Principal, id uint, draft UserDraft) (models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.IsDriver() {
			if !auth.Can(p, auth.ActionManageShipments) {
				return ErrPermissionDenied
			}
		} else if !auth.Can(p, auth.ActionManageUsers) {
			return ErrPermissionDenied
		}
		if err := draft.validate(false); err != nil {
			return err
		}
		taken, err := loginTaken(tx, draft.Login, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateLogin
		}
		user.Login = draft.Login
		user.FullName = draft.FullName
		user.PhoneNumber = draft.PhoneNumber
		user.DriverStatus = draft.DriverStatus
		if draft.Role != "" && auth.Can(p, auth.ActionManageUsers) {
			user.Role = draft.Role
		}
		if draft.Password != "" {
			user.PasswordHash = auth.HashPassword(draft.Password)
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if user.IsDriver() && draft.VehicleID != nil {
			return assignDriverToVehicle(tx, *draft.VehicleID, user.ID)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user. Fails with ErrReferencedByTrip while any trip
// names the user as driver; on success every vehicle assigned to the user is
// released.
func (s *Store) DeleteUser(p auth.Principal, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.IsDriver() {
			if !auth.Can(p, auth.ActionManageShipments) {
				return ErrPermissionDenied
			}
		} else if !auth.Can(p, auth.ActionManageUsers) {
			return ErrPermissionDenied
		}
		var tripCount int64
		if err := tx.Model(&models.Trip{}).Where("driver_id = ?", id).Count(&tripCount).Error; err != nil {
			return err
		}
		if tripCount > 0 {
			return fmt.Errorf("%w: driver is assigned to trips", ErrReferencedByTrip)
		}
		if err := tx.Model(&models.Vehicle{}).Where("driver_id = ?", id).Update("driver_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}
