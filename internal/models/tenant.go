package models

import "time"

// Tenant represents a person renting (or applying to rent) a room
type Tenant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FirstName string     `json:"firstName" gorm:"not null"`
	LastName  string     `json:"lastName" gorm:"not null"`
	Email     string     `json:"email" gorm:"not null;uniqueIndex"`
	Phone     string     `json:"phone"`
	DOB       *time.Time `json:"dob"`

	Leases              []Lease              `json:"leases,omitempty"`
	MaintenanceRequests []MaintenanceRequest `json:"maintenanceRequests,omitempty" gorm:"foreignKey:TenantID"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// FullName returns the tenant's display name
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TenantRequest is the form payload for creating or updating a tenant
type TenantRequest struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required"`
	LastName  string `form:"lastName" json:"lastName" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Phone     string `form:"phone" json:"phone"`
	DOB       string `form:"dob" json:"dob"`
}
