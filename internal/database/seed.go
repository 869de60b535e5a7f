package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// Seed loads the demo dataset: one administrator, two dispatchers, ten
// drivers with vehicles, twenty shipments and ten trips. Safe to run
// repeatedly — rows already present (by login, plate, or address pair) are
// skipped. These presence checks are the only place plate and route-pair
// uniqueness exist; the live CRUD path does not enforce them.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedVehicles(db); err != nil {
		return err
	}
	if err := seedShipments(db); err != nil {
		return err
	}
	return seedTrips(db)
}

func seedUsers(db *gorm.DB) error {
	users := []models.User{
		{Login: "admin", PasswordHash: auth.HashPassword("admin123"), Role: models.RoleAdministrator, FullName: "System Administrator"},
		{Login: "dispatcher1", PasswordHash: auth.HashPassword("dispatcher123"), Role: models.RoleDispatcher, FullName: "Anna Sokolova"},
		{Login: "dispatcher2", PasswordHash: auth.HashPassword("dispatcher123"), Role: models.RoleDispatcher, FullName: "Ilya Mironov"},
	}

	driverNames := []string{
		"Sergey Ivanov", "Artem Kuznetsov", "Pavel Smirnov", "Denis Orlov", "Roman Fedorov",
		"Nikita Egorov", "Kirill Vasilyev", "Mikhail Popov", "Vitaly Zaitsev", "Ivan Tarasov",
	}
	for i := 1; i <= 10; i++ {
		status := models.DriverStatusAvailable
		switch {
		case i%3 == 0:
			status = models.DriverStatusDayOff
		case i%2 == 0:
			status = models.DriverStatusOnTrip
		}
		users = append(users, models.User{
			Login:        fmt.Sprintf("driver%d", i),
			PasswordHash: auth.HashPassword(fmt.Sprintf("driver%d123", i)),
			Role:         models.RoleDriver,
			FullName:     driverNames[i-1],
			PhoneNumber:  fmt.Sprintf("+7 (900) 100-%02d-%02d", i, i+10),
			DriverStatus: status,
		})
	}

	for _, user := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("login = ?", user.Login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedVehicles(db *gorm.DB) error {
	var drivers []models.User
	if err := db.Where("role = ?", models.RoleDriver).Order("id asc").Find(&drivers).Error; err != nil {
		return err
	}
	driverID := func(i int) *uint {
		if i >= len(drivers) {
			return nil
		}
		id := drivers[i].ID
		return &id
	}

	fleet := []models.Vehicle{
		{PlateNumber: "A451BC", VehicleModel: "Mercedes-Benz Actros", Status: models.VehicleStatusAvailable, DriverID: driverID(0)},
		{PlateNumber: "B229KM", VehicleModel: "Volvo FH16", Status: models.VehicleStatusOnTrip, DriverID: driverID(1)},
		{PlateNumber: "C103OP", VehicleModel: "Scania R450", Status: models.VehicleStatusAvailable, DriverID: driverID(2)},
		{PlateNumber: "E845TX", VehicleModel: "DAF XF", Status: models.VehicleStatusInMaintenance, DriverID: driverID(3)},
		{PlateNumber: "H515AA", VehicleModel: "MAN TGX", Status: models.VehicleStatusOnTrip, DriverID: driverID(4)},
		{PlateNumber: "K700MP", VehicleModel: "Iveco S-Way", Status: models.VehicleStatusAvailable, DriverID: driverID(5)},
		{PlateNumber: "M318BT", VehicleModel: "KamAZ 54901", Status: models.VehicleStatusAvailable, DriverID: driverID(6)},
		{PlateNumber: "O912CT", VehicleModel: "Renault T High", Status: models.VehicleStatusInMaintenance, DriverID: driverID(7)},
		{PlateNumber: "P640EK", VehicleModel: "Gazon Next", Status: models.VehicleStatusOnTrip, DriverID: driverID(8)},
		{PlateNumber: "T773PO", VehicleModel: "Isuzu Forward", Status: models.VehicleStatusAvailable, DriverID: driverID(9)},
	}

	for _, vehicle := range fleet {
		var count int64
		if err := db.Model(&models.Vehicle{}).Where("plate_number = ?", vehicle.PlateNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&vehicle).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedShipments(db *gorm.DB) error {
	var vehicles []models.Vehicle
	if err := db.Order("id asc").Find(&vehicles).Error; err != nil {
		return err
	}
	vehicleID := func(i int) *uint {
		if len(vehicles) == 0 {
			return nil
		}
		id := vehicles[i%len(vehicles)].ID
		return &id
	}

	type row struct {
		from, to, status, desc string
	}
	rows := []row{
		{"Moscow, South Warehouse", "Tula, Logistics Center", models.ShipmentStatusInTransit, "Construction materials: bricks and dry mixes"},
		{"Saint Petersburg, Port", "Veliky Novgorod, Warehouse 2", models.ShipmentStatusPlanned, "Container of household appliances"},
		{"Kazan, Technopark", "Samara, Industrial Zone", models.ShipmentStatusDelivered, "Production components"},
		{"Yekaterinburg, East Warehouse", "Perm, PM Depot", models.ShipmentStatusInTransit, "Pallets of paint products"},
		{"Nizhny Novgorod, Terminal", "Yaroslavl, Warehouse", models.ShipmentStatusPlanned, "Auto parts"},
		{"Rostov-on-Don, Hub", "Krasnodar, South Mall", models.ShipmentStatusInTransit, "Food products batch"},
		{"Ufa, Oil Depot", "Chelyabinsk, Industrial Park", models.ShipmentStatusPlanned, "Technical oils in drums"},
		{"Novosibirsk, North Warehouse", "Omsk, Grand Warehouse", models.ShipmentStatusDelivered, "Power tools"},
		{"Voronezh, Distribution Center", "Lipetsk, Service Center", models.ShipmentStatusInTransit, "Household chemicals"},
		{"Sochi, Sea Port", "Stavropol, Warehouse", models.ShipmentStatusPlanned, "Office furniture"},
		{"Kaluga, Plant", "Ryazan, Auto Cluster", models.ShipmentStatusPlanned, "Metal profiles"},
		{"Izhevsk, Warehouse", "Kirov, Trade Depot", models.ShipmentStatusInTransit, "Plumbing supplies"},
		{"Tver, Logistics Center", "Smolensk, DC", models.ShipmentStatusDelivered, "Office supplies"},
		{"Bryansk, Cold Storage", "Oryol, Market", models.ShipmentStatusInTransit, "Chilled goods"},
		{"Penza, Pharma Center", "Saratov, Pharmacy Warehouse", models.ShipmentStatusPlanned, "Medical goods"},
		{"Belgorod, Warehouse", "Kursk, Logistics Center", models.ShipmentStatusDelivered, "Animal feed"},
		{"Arkhangelsk, Port", "Vologda, Warehouse", models.ShipmentStatusInTransit, "Timber"},
		{"Tyumen, Depot", "Kurgan, Warehouse", models.ShipmentStatusPlanned, "Pipes and fittings"},
		{"Murmansk, Port", "Petrozavodsk, DC", models.ShipmentStatusInTransit, "Fish products"},
		{"Vladimir, Factory", "Ivanovo, Warehouse", models.ShipmentStatusDelivered, "Textile products"},
	}

	for i, r := range rows {
		var count int64
		if err := db.Model(&models.Shipment{}).
			Where("from_address = ? AND to_address = ?", r.from, r.to).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		shipment := models.Shipment{
			FromAddress:       r.from,
			ToAddress:         r.to,
			Status:            r.status,
			Description:       r.desc,
			AssignedVehicleID: vehicleID(i),
		}
		if err := db.Create(&shipment).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedTrips(db *gorm.DB) error {
	var drivers []models.User
	if err := db.Where("role = ?", models.RoleDriver).Order("id asc").Find(&drivers).Error; err != nil {
		return err
	}
	var shipments []models.Shipment
	if err := db.Order("id asc").Limit(10).Find(&shipments).Error; err != nil {
		return err
	}
	var vehicles []models.Vehicle
	if err := db.Order("id asc").Limit(10).Find(&vehicles).Error; err != nil {
		return err
	}

	for i := 0; i < 10 && i < len(drivers) && i < len(shipments) && i < len(vehicles); i++ {
		var count int64
		if err := db.Model(&models.Trip{}).
			Where("shipment_id = ? AND vehicle_id = ? AND driver_id = ?",
				shipments[i].ID, vehicles[i].ID, drivers[i].ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		status := models.TripStatusInTransit
		switch i % 3 {
		case 0:
			status = models.TripStatusCompleted
		case 1:
			status = models.TripStatusPlanned
		}
		trip := models.Trip{
			ShipmentID: shipments[i].ID,
			VehicleID:  vehicles[i].ID,
			DriverID:   drivers[i].ID,
			Status:     status,
		}
		if err := db.Create(&trip).Error; err != nil {
			return err
		}
	}
	return nil
}
