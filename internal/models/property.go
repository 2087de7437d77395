package models

import "time"

// RoomStatus represents the occupancy state of a room
type RoomStatus string

const (
	RoomVacant      RoomStatus = "vacant"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Property represents a managed building with rentable rooms
type Property struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Address     string `json:"address" gorm:"not null"`
	City        string `json:"city" gorm:"not null"`
	State       string `json:"state" gorm:"not null"`
	ZipCode     string `json:"zipCode" gorm:"not null"`
	Description string `json:"description"`

	Rooms       []Room               `json:"rooms,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Maintenance []MaintenanceRequest `json:"maintenance,omitempty" gorm:"foreignKey:PropertyID"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Room represents a single rentable unit within a property
type Room struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	PropertyID uint       `json:"propertyId" gorm:"not null;index"`
	RoomNumber string     `json:"roomNumber" gorm:"not null"`
	Status     RoomStatus `json:"status" gorm:"not null;default:vacant"`
	RentAmount float64    `json:"rentAmount" gorm:"not null"`

	Property *Property `json:"property,omitempty"`
	Leases   []Lease   `json:"leases,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// PropertyRequest is the form payload for creating or updating a property
type PropertyRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Address     string `form:"address" json:"address" binding:"required"`
	City        string `form:"city" json:"city" binding:"required"`
	State       string `form:"state" json:"state" binding:"required"`
	ZipCode     string `form:"zipCode" json:"zipCode" binding:"required"`
	Description string `form:"description" json:"description"`
}

// RoomRequest is the form payload for creating or updating a room
type RoomRequest struct {
	RoomNumber string  `form:"roomNumber" json:"roomNumber" binding:"required"`
	RentAmount float64 `form:"rentAmount" json:"rentAmount" binding:"required"`
	Status     string  `form:"status" json:"status"`
}
