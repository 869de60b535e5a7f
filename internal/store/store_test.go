package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Shipment{}, &models.Trip{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

var (
	admin      = auth.Principal{UserID: 1, Role: models.RoleAdministrator, DisplayName: "Admin"}
	dispatcher = auth.Principal{UserID: 2, Role: models.RoleDispatcher, DisplayName: "Dispatcher"}
)

func asDriver(id uint) auth.Principal {
	return auth.Principal{UserID: id, Role: models.RoleDriver}
}

func mustCreateDriver(t *testing.T, s *Store, login, name string) models.User {
	t.Helper()
	user, err := s.CreateDriver(dispatcher, UserDraft{
		Login:    login,
		Password: "driver123pass1",
		FullName: name,
	})
	if err != nil {
		t.Fatalf("create driver %s: %v", login, err)
	}
	return user
}

func mustCreateVehicle(t *testing.T, s *Store, plate, model string) models.Vehicle {
	t.Helper()
	vehicle, err := s.CreateVehicle(admin, VehicleDraft{
		PlateNumber: plate,
		Model:       model,
		Status:      models.VehicleStatusAvailable,
	})
	if err != nil {
		t.Fatalf("create vehicle %s: %v", plate, err)
	}
	return vehicle
}

func mustCreateShipment(t *testing.T, s *Store, from, to, status string) models.Shipment {
	t.Helper()
	shipment, err := s.CreateShipment(dispatcher, ShipmentDraft{
		FromAddress: from,
		ToAddress:   to,
		Status:      status,
	})
	if err != nil {
		t.Fatalf("create shipment %s -> %s: %v", from, to, err)
	}
	return shipment
}

func mustCreateTrip(t *testing.T, s *Store, shipmentID, vehicleID, driverID uint) models.Trip {
	t.Helper()
	trip, err := s.CreateTrip(dispatcher, TripDraft{
		ShipmentID: shipmentID,
		VehicleID:  vehicleID,
		DriverID:   driverID,
		Status:     models.TripStatusPlanned,
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func vehicleByID(t *testing.T, s *Store, id uint) models.Vehicle {
	t.Helper()
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		t.Fatalf("load vehicle %d: %v", id, err)
	}
	return vehicle
}
