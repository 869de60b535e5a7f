package auth

import (
	"github.com/fleetworks/transport-backend/internal/models"
)

// Principal is an authenticated actor. Core operations take it explicitly;
// there is no ambient session state.
type Principal struct {
	UserID      uint
	Role        models.Role
	DisplayName string
}

type Action string

const (
	ActionViewVehicles        Action = "view_vehicles"
	ActionViewShipments       Action = "view_shipments"
	ActionManageVehicles      Action = "manage_vehicles"
	ActionManageShipments     Action = "manage_shipments"
	ActionManageTrips         Action = "manage_trips"
	ActionManageUsers         Action = "manage_users"
	ActionChangeOwnTripStatus Action = "change_own_trip_status"
)

// Target carries the ownership information some actions are checked against.
// Only ActionChangeOwnTripStatus consults it.
type Target struct {
	DriverID uint
}

// Can is the permission predicate table. Pure and total: unknown actions are
// denied for every role.
func Can(p Principal, action Action, target ...Target) bool {
	switch action {
	case ActionViewVehicles, ActionViewShipments:
		return p.Role != models.RoleDriver
	case ActionManageVehicles, ActionManageUsers:
		return p.Role == models.RoleAdministrator
	case ActionManageShipments, ActionManageTrips:
		return p.Role == models.RoleAdministrator || p.Role == models.RoleDispatcher
	case ActionChangeOwnTripStatus:
		if p.Role != models.RoleDriver || len(target) == 0 {
			return false
		}
		return target[0].DriverID == p.UserID
	default:
		return false
	}
}
