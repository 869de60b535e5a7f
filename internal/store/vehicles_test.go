package store

import (
	"errors"
	"testing"

	"github.com/fleetworks/transport-backend/internal/models"
)

func TestExclusiveDriverAssignment(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	v1 := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	v2 := mustCreateVehicle(t, s, "B229KM", "Volvo FH16")

	assign := func(vehicleID uint) {
		t.Helper()
		vehicle := vehicleByID(t, s, vehicleID)
		if _, err := s.UpdateVehicle(admin, vehicleID, VehicleDraft{
			PlateNumber: vehicle.PlateNumber,
			Model:       vehicle.VehicleModel,
			Status:      vehicle.Status,
			DriverID:    &driver.ID,
		}); err != nil {
			t.Fatalf("assign driver to vehicle %d: %v", vehicleID, err)
		}
	}

	assign(v1.ID)
	if got := vehicleByID(t, s, v1.ID); got.DriverID == nil || *got.DriverID != driver.ID {
		t.Fatalf("v1 should hold the driver")
	}

	// Moving the driver to v2 must release v1.
	assign(v2.ID)
	if got := vehicleByID(t, s, v1.ID); got.DriverID != nil {
		t.Errorf("v1 still holds driver %d after reassignment", *got.DriverID)
	}
	if got := vehicleByID(t, s, v2.ID); got.DriverID == nil || *got.DriverID != driver.ID {
		t.Errorf("v2 should hold the driver")
	}

	var doubled int64
	s.db.Raw(`SELECT COUNT(*) FROM vehicles v1 JOIN vehicles v2
		ON v1.driver_id = v2.driver_id AND v1.id <> v2.id
		WHERE v1.driver_id IS NOT NULL`).Scan(&doubled)
	if doubled != 0 {
		t.Errorf("%d vehicle pairs share a driver", doubled)
	}
}

func TestExclusiveAssignmentFromDriverSide(t *testing.T) {
	s := newTestStore(t)
	v1 := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	v2 := mustCreateVehicle(t, s, "B229KM", "Volvo FH16")

	driver, err := s.CreateDriver(dispatcher, UserDraft{
		Login:     "driver1",
		Password:  "driver123pass1",
		FullName:  "Sergey Ivanov",
		VehicleID: &v1.ID,
	})
	if err != nil {
		t.Fatalf("create driver with vehicle: %v", err)
	}
	if got := vehicleByID(t, s, v1.ID); got.DriverID == nil || *got.DriverID != driver.ID {
		t.Fatal("creating a driver with a vehicle should pair them")
	}

	// Editing the driver onto v2 releases v1.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:     "driver1",
		FullName:  "Sergey Ivanov",
		VehicleID: &v2.ID,
	}); err != nil {
		t.Fatalf("update driver: %v", err)
	}
	if got := vehicleByID(t, s, v1.ID); got.DriverID != nil {
		t.Error("v1 should be released")
	}
	if got := vehicleByID(t, s, v2.ID); got.DriverID == nil || *got.DriverID != driver.ID {
		t.Error("v2 should hold the driver")
	}

	// An explicit 0 unassigns.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:     "driver1",
		FullName:  "Sergey Ivanov",
		VehicleID: new(uint),
	}); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got := vehicleByID(t, s, v2.ID); got.DriverID != nil {
		t.Error("v2 should be released after unassignment")
	}
}

func TestVehicleAssignmentRequiresDriverRole(t *testing.T) {
	s := newTestStore(t)
	vehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	clerk, err := s.CreateUser(admin, UserDraft{
		Login: "dispatcher9", Password: "password12", Role: models.RoleDispatcher, FullName: "Clerk",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err = s.UpdateVehicle(admin, vehicle.ID, VehicleDraft{
		PlateNumber: "A451BC",
		Model:       "Mercedes-Benz Actros",
		DriverID:    &clerk.ID,
	})
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("assigning a non-driver: got %v, want ErrDanglingReference", err)
	}
}

func TestDeleteVehicleGuards(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	tripVehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	shipVehicle := mustCreateVehicle(t, s, "B229KM", "Volvo FH16")
	freeVehicle := mustCreateVehicle(t, s, "C103OP", "Scania R450")

	shipment := mustCreateShipment(t, s, "Moscow", "Tula", models.ShipmentStatusPlanned)
	mustCreateTrip(t, s, shipment.ID, tripVehicle.ID, driver.ID)
	if _, err := s.UpdateShipment(dispatcher, shipment.ID, ShipmentDraft{
		FromAddress:       "Moscow",
		ToAddress:         "Tula",
		Status:            models.ShipmentStatusPlanned,
		AssignedVehicleID: &shipVehicle.ID,
	}); err != nil {
		t.Fatalf("assign vehicle to shipment: %v", err)
	}

	if err := s.DeleteVehicle(admin, tripVehicle.ID); !errors.Is(err, ErrReferencedByTrip) {
		t.Errorf("vehicle on a trip: got %v, want ErrReferencedByTrip", err)
	}
	if err := s.DeleteVehicle(admin, shipVehicle.ID); !errors.Is(err, ErrReferencedByTrip) {
		t.Errorf("vehicle on a shipment: got %v, want ErrReferencedByTrip", err)
	}
	if err := s.DeleteVehicle(admin, freeVehicle.ID); err != nil {
		t.Errorf("unreferenced vehicle should delete: %v", err)
	}
}

func TestVehiclePlateNotUnique(t *testing.T) {
	s := newTestStore(t)
	mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	// The live CRUD path deliberately performs no plate uniqueness check.
	if _, err := s.CreateVehicle(admin, VehicleDraft{
		PlateNumber: "A451BC",
		Model:       "Volvo FH16",
	}); err != nil {
		t.Fatalf("duplicate plate should be accepted: %v", err)
	}
}

func TestVehiclePermissions(t *testing.T) {
	s := newTestStore(t)
	vehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")

	if _, err := s.CreateVehicle(dispatcher, VehicleDraft{PlateNumber: "X", Model: "Y"}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("dispatcher creating vehicles: got %v, want ErrPermissionDenied", err)
	}
	// Dispatchers may edit and delete existing vehicles.
	if _, err := s.UpdateVehicle(dispatcher, vehicle.ID, VehicleDraft{
		PlateNumber: "A451BC", Model: "Mercedes-Benz Actros", Status: models.VehicleStatusOnTrip,
	}); err != nil {
		t.Errorf("dispatcher editing a vehicle: %v", err)
	}
	if _, err := s.UpdateVehicle(asDriver(driver.ID), vehicle.ID, VehicleDraft{
		PlateNumber: "A451BC", Model: "Mercedes-Benz Actros",
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("driver editing a vehicle: got %v, want ErrPermissionDenied", err)
	}
}
