package store

import (
	"sort"
	"strings"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// StatusAll disables a status filter.
const StatusAll = "all"

// Substring matching is done in Go rather than with SQL LIKE so the search is
// case-sensitive on every backend (sqlite's LIKE folds ASCII case).
func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// DriverRow is the read-only projection the driver list shows: the user
// joined with the vehicle currently assigned to them, if any.
type DriverRow struct {
	DriverID       uint   `json:"driverId"`
	Login          string `json:"login"`
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	Status         string `json:"status"`
	VehicleID      uint   `json:"vehicleId"`
	VehicleDisplay string `json:"vehicleDisplay"`
}

// ListDrivers returns driver users ordered by full name, optionally narrowed
// by a case-sensitive substring over full name, phone and login, and by an
// exact status match.
func (s *Store) ListDrivers(p auth.Principal, search, status string) ([]DriverRow, error) {
	if !auth.Can(p, auth.ActionViewShipments) {
		return nil, ErrPermissionDenied
	}
	var drivers []models.User
	if err := s.db.Where("role = ?", models.RoleDriver).Order("full_name asc").Find(&drivers).Error; err != nil {
		return nil, err
	}
	var vehicles []models.Vehicle
	if err := s.db.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	byDriver := make(map[uint]*models.Vehicle, len(vehicles))
	for i := range vehicles {
		if vehicles[i].DriverID != nil {
			byDriver[*vehicles[i].DriverID] = &vehicles[i]
		}
	}

	rows := make([]DriverRow, 0, len(drivers))
	for _, d := range drivers {
		if search != "" && !contains(d.FullName, search) && !contains(d.PhoneNumber, search) && !contains(d.Login, search) {
			continue
		}
		if status != "" && status != StatusAll && d.DriverStatus != status {
			continue
		}
		row := DriverRow{
			DriverID:    d.ID,
			Login:       d.Login,
			FullName:    d.FullName,
			PhoneNumber: d.PhoneNumber,
			Status:      d.DriverStatus,
		}
		if v, ok := byDriver[d.ID]; ok {
			row.VehicleID = v.ID
			row.VehicleDisplay = v.Display()
		} else {
			row.VehicleDisplay = "Unassigned"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListVehicles returns vehicles ordered by id, optionally narrowed by a
// substring over plate number and model.
func (s *Store) ListVehicles(p auth.Principal, search string) ([]models.Vehicle, error) {
	if !auth.Can(p, auth.ActionViewVehicles) {
		return nil, ErrPermissionDenied
	}
	var vehicles []models.Vehicle
	if err := s.db.Preload("Driver").Order("id asc").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if search == "" {
		return vehicles, nil
	}
	filtered := vehicles[:0]
	for _, v := range vehicles {
		if contains(v.PlateNumber, search) || contains(v.VehicleModel, search) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// ShipmentFilter narrows ListShipments. Zero values disable each criterion.
type ShipmentFilter struct {
	Search    string
	Status    string
	VehicleID uint
}

// ListShipments returns shipments ordered by id. Search is a substring over
// both addresses, status and description; status and vehicle are exact.
func (s *Store) ListShipments(p auth.Principal, filter ShipmentFilter) ([]models.Shipment, error) {
	if !auth.Can(p, auth.ActionViewShipments) {
		return nil, ErrPermissionDenied
	}
	var shipments []models.Shipment
	if err := s.db.Preload("AssignedVehicle").Order("id asc").Find(&shipments).Error; err != nil {
		return nil, err
	}
	filtered := shipments[:0]
	for _, sh := range shipments {
		if filter.Search != "" &&
			!contains(sh.FromAddress, filter.Search) &&
			!contains(sh.ToAddress, filter.Search) &&
			!contains(sh.Status, filter.Search) &&
			!contains(sh.Description, filter.Search) {
			continue
		}
		if filter.Status != "" && filter.Status != StatusAll && sh.Status != filter.Status {
			continue
		}
		if filter.VehicleID != 0 && (sh.AssignedVehicleID == nil || *sh.AssignedVehicleID != filter.VehicleID) {
			continue
		}
		filtered = append(filtered, sh)
	}
	return filtered, nil
}

// ListTrips returns trips ordered by id with their shipment, vehicle and
// driver joined. Driver principals only ever see their own trips; that
// restriction is not a caller-controlled filter.
func (s *Store) ListTrips(p auth.Principal, search, status string) ([]models.Trip, error) {
	q := s.db.Preload("Shipment").Preload("Vehicle").Preload("Driver")
	if p.Role == models.RoleDriver {
		q = q.Where("driver_id = ?", p.UserID)
	}
	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	filtered := trips[:0]
	for _, t := range trips {
		if search != "" {
			match := contains(t.Status, search)
			if !match && t.Shipment != nil {
				match = contains(t.Shipment.FromAddress, search) || contains(t.Shipment.ToAddress, search)
			}
			if !match && t.Vehicle != nil {
				match = contains(t.Vehicle.VehicleModel, search)
			}
			if !match {
				continue
			}
		}
		if status != "" && status != StatusAll && t.Status != status {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return filtered, nil
}

// ListUsers returns every account, for the administrator's user management
// screen.
func (s *Store) ListUsers(p auth.Principal) ([]models.User, error) {
	if !auth.Can(p, auth.ActionManageUsers) {
		return nil, ErrPermissionDenied
	}
	var users []models.User
	if err := s.db.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
