package store

import (
	"errors"
	"testing"

	"github.com/fleetworks/transport-backend/internal/models"
)

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateUser(admin, UserDraft{
		Login:    "dispatcher1",
		Password: "dispatch123",
		Role:     models.RoleDispatcher,
		FullName: "Anna Sokolova",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	principal, err := s.Authenticate("dispatcher1", "dispatch123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.UserID != created.ID || principal.Role != models.RoleDispatcher || principal.DisplayName != "Anna Sokolova" {
		t.Errorf("unexpected principal: %+v", principal)
	}

	if _, err := s.Authenticate("dispatcher1", "wrongpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Authenticate("nobody", "dispatch123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown login: got %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	s := newTestStore(t)
	mustCreateDriver(t, s, "driver1", "Sergey Ivanov")

	_, err := s.CreateDriver(dispatcher, UserDraft{
		Login:    "driver1",
		Password: "driver123pass1",
		FullName: "Another Ivanov",
	})
	if !errors.Is(err, ErrDuplicateLogin) {
		t.Fatalf("duplicate login: got %v, want ErrDuplicateLogin", err)
	}

	// Login matching is case-sensitive, so a different casing is a new login.
	if _, err := s.CreateDriver(dispatcher, UserDraft{
		Login:    "Driver1",
		Password: "driver123pass1",
		FullName: "Cased Ivanov",
	}); err != nil {
		t.Fatalf("cased login should be distinct: %v", err)
	}
}

func TestUpdateUserKeepsOwnLogin(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	mustCreateDriver(t, s, "driver2", "Artem Kuznetsov")

	// Saving without changing the login must not trip the duplicate check.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:    "driver1",
		FullName: "Sergey P. Ivanov",
	}); err != nil {
		t.Fatalf("update with own login: %v", err)
	}

	// Taking another user's login must fail.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:    "driver2",
		FullName: "Sergey P. Ivanov",
	}); !errors.Is(err, ErrDuplicateLogin) {
		t.Fatalf("stealing a login: got %v, want ErrDuplicateLogin", err)
	}
}

func TestUpdateUserPasswordHandling(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")

	// Empty password keeps the old credential.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:    "driver1",
		FullName: "Sergey Ivanov",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.Authenticate("driver1", "driver123pass1"); err != nil {
		t.Fatalf("old password should still work: %v", err)
	}

	// A supplied password replaces it.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:    "driver1",
		FullName: "Sergey Ivanov",
		Password: "newpass1234",
	}); err != nil {
		t.Fatalf("update with password: %v", err)
	}
	if _, err := s.Authenticate("driver1", "newpass1234"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
	if _, err := s.Authenticate("driver1", "driver123pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be gone: %v", err)
	}
}

func TestUpdateUserKeepsVehicleAssignment(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	vehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	if _, err := s.UpdateVehicle(admin, vehicle.ID, VehicleDraft{
		PlateNumber: "A451BC",
		Model:       "Mercedes-Benz Actros",
		DriverID:    &driver.ID,
	}); err != nil {
		t.Fatalf("assign driver: %v", err)
	}

	// A profile edit that carries no vehicle field must not touch the pairing.
	if _, err := s.UpdateUser(admin, driver.ID, UserDraft{
		Login:    "driver1",
		FullName: "Sergey P. Ivanov",
	}); err != nil {
		t.Fatalf("profile update: %v", err)
	}
	if got := vehicleByID(t, s, vehicle.ID); got.DriverID == nil || *got.DriverID != driver.ID {
		t.Fatal("profile update dropped the vehicle assignment")
	}

	// An explicit 0 is the way to release the vehicle.
	if _, err := s.UpdateUser(dispatcher, driver.ID, UserDraft{
		Login:     "driver1",
		FullName:  "Sergey P. Ivanov",
		VehicleID: new(uint),
	}); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got := vehicleByID(t, s, vehicle.ID); got.DriverID != nil {
		t.Error("explicit zero should release the vehicle")
	}
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name  string
		draft UserDraft
	}{
		{"empty login", UserDraft{Login: "  ", Password: "driver123pass1", FullName: "X"}},
		{"empty full name", UserDraft{Login: "driver9", Password: "driver123pass1", FullName: ""}},
		{"missing password", UserDraft{Login: "driver9", FullName: "X"}},
		{"weak password", UserDraft{Login: "driver9", Password: "short1", FullName: "X"}},
		{"no digits", UserDraft{Login: "driver9", Password: "onlyletters", FullName: "X"}},
	}
	for _, tt := range tests {
		if _, err := s.CreateDriver(dispatcher, tt.draft); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", tt.name, err)
		}
	}
}

func TestDeleteDriverCascadesVehicle(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	vehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")

	if _, err := s.UpdateVehicle(admin, vehicle.ID, VehicleDraft{
		PlateNumber: "A451BC",
		Model:       "Mercedes-Benz Actros",
		Status:      models.VehicleStatusAvailable,
		DriverID:    &driver.ID,
	}); err != nil {
		t.Fatalf("assign driver: %v", err)
	}

	if err := s.DeleteUser(dispatcher, driver.ID); err != nil {
		t.Fatalf("delete driver: %v", err)
	}
	if got := vehicleByID(t, s, vehicle.ID); got.DriverID != nil {
		t.Errorf("vehicle still references deleted driver %d", *got.DriverID)
	}

	// Recreating the same login must work after a hard delete.
	mustCreateDriver(t, s, "driver1", "Sergey Ivanov II")
}

func TestDeleteDriverBlockedByTrip(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")
	vehicle := mustCreateVehicle(t, s, "A451BC", "Mercedes-Benz Actros")
	shipment := mustCreateShipment(t, s, "Moscow", "Tula", models.ShipmentStatusPlanned)
	mustCreateTrip(t, s, shipment.ID, vehicle.ID, driver.ID)

	err := s.DeleteUser(dispatcher, driver.ID)
	if !errors.Is(err, ErrReferencedByTrip) {
		t.Fatalf("got %v, want ErrReferencedByTrip", err)
	}
	// Failure is idempotent: retrying without changing state fails the same way.
	if err := s.DeleteUser(dispatcher, driver.ID); !errors.Is(err, ErrReferencedByTrip) {
		t.Fatalf("retry: got %v, want ErrReferencedByTrip", err)
	}
	if _, err := s.GetUser(driver.ID); err != nil {
		t.Fatalf("driver should still exist: %v", err)
	}
}

func TestUserPermissions(t *testing.T) {
	s := newTestStore(t)
	driver := mustCreateDriver(t, s, "driver1", "Sergey Ivanov")

	if _, err := s.CreateUser(dispatcher, UserDraft{
		Login: "x", Password: "password12", Role: models.RoleDispatcher, FullName: "X",
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("dispatcher creating non-driver users: got %v, want ErrPermissionDenied", err)
	}
	if _, err := s.CreateDriver(asDriver(driver.ID), UserDraft{
		Login: "y", Password: "password12", FullName: "Y",
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("driver creating drivers: got %v, want ErrPermissionDenied", err)
	}
	if err := s.DeleteUser(asDriver(driver.ID), driver.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("driver deleting accounts: got %v, want ErrPermissionDenied", err)
	}
}
