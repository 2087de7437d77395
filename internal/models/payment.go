package models

import "time"

// PaymentStatus represents the settlement state of a rent payment
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// Payment represents a rent payment recorded against a lease
type Payment struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	LeaseID         uint          `json:"leaseId" gorm:"not null;index"`
	Amount          float64       `json:"amount" gorm:"not null"`
	PaymentDate     time.Time     `json:"paymentDate" gorm:"not null"`
	PaymentForMonth time.Time     `json:"paymentForMonth" gorm:"not null"`
	Status          PaymentStatus `json:"status" gorm:"not null;default:pending"`
	Note            string        `json:"note"`

	Lease *Lease `json:"lease,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// PaymentRequest is the form payload for recording or updating a payment
type PaymentRequest struct {
	LeaseID         uint    `form:"leaseId" json:"leaseId" binding:"required"`
	Amount          float64 `form:"amount" json:"amount" binding:"required"`
	PaymentDate     string  `form:"paymentDate" json:"paymentDate" binding:"required"`
	PaymentForMonth string  `form:"paymentForMonth" json:"paymentForMonth" binding:"required"`
	Status          string  `form:"status" json:"status" binding:"required"`
	Note            string  `form:"note" json:"note"`
}

// PaymentFilter narrows payment report queries
type PaymentFilter struct {
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
