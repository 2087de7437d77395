package models

import "time"

// Lease represents a rental agreement binding a tenant to a room for a date range
type Lease struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TenantID    uint      `json:"tenantId" gorm:"not null;index"`
	RoomID      uint      `json:"roomId" gorm:"not null;index"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	RentAmount  float64   `json:"rentAmount" gorm:"not null"`
	DepositPaid float64   `json:"depositPaid"`

	Tenant    *Tenant         `json:"tenant,omitempty"`
	Room      *Room           `json:"room,omitempty"`
	Payments  []Payment       `json:"payments,omitempty"`
	Documents []LeaseDocument `json:"documents,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// IsActiveAt reports whether the lease's date range contains the given moment
func (l *Lease) IsActiveAt(t time.Time) bool {
	return !l.StartDate.After(t) && !l.EndDate.Before(t)
}

// LeaseDocument represents a file attached to a lease (contract scan, ID copy, etc.)
type LeaseDocument struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	LeaseID      uint      `json:"leaseId" gorm:"not null;index"`
	DocumentType string    `json:"documentType" gorm:"not null"`
	FileName     string    `json:"fileName" gorm:"not null"`
	StoredName   string    `json:"storedName" gorm:"not null"`
	FilePath     string    `json:"filePath" gorm:"not null"`
	Description  string    `json:"description"`
	UploadedAt   time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
}

// LeaseRequest is the form payload for creating or updating a lease
type LeaseRequest struct {
	TenantID    uint    `form:"tenantId" json:"tenantId" binding:"required"`
	RoomID      uint    `form:"roomId" json:"roomId" binding:"required"`
	StartDate   string  `form:"startDate" json:"startDate" binding:"required"`
	EndDate     string  `form:"endDate" json:"endDate" binding:"required"`
	RentAmount  float64 `form:"rentAmount" json:"rentAmount" binding:"required"`
	DepositPaid float64 `form:"depositPaid" json:"depositPaid"`
}
