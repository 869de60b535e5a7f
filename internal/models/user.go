package models

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDispatcher    Role = "dispatcher"
	RoleDriver        Role = "driver"
)

// Driver status values used by the seeder and the UI filter dropdown.
// The column itself is free text.
const (
	DriverStatusAvailable = "Available"
	DriverStatusOnTrip    = "On Trip"
	DriverStatusDayOff    = "Day Off"
)

type User struct {
	gorm.Model
	Login        string `gorm:"column:login;unique;not null" json:"login"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"column:role;not null" json:"role"`
	FullName     string `gorm:"column:full_name" json:"fullName"`
	PhoneNumber  string `gorm:"column:phone_number" json:"phoneNumber"`
	DriverStatus string `gorm:"column:driver_status" json:"driverStatus"` // meaningful only for Role == RoleDriver
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDriver() bool {
	return u.Role == RoleDriver
}
