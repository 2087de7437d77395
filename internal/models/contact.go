package models

import "time"

// ContactStatus represents the triage state of an inbound contact message
type ContactStatus string

const (
	ContactUnread    ContactStatus = "unread"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

// ContactMessage represents a message submitted through the public contact form
type ContactMessage struct {
	ID      uint          `json:"id" gorm:"primaryKey"`
	Name    string        `json:"name" gorm:"not null"`
	Email   string        `json:"email" gorm:"not null"`
	Phone   string        `json:"phone"`
	Message string        `json:"message" gorm:"not null"`
	Status  ContactStatus `json:"status" gorm:"not null;default:unread"`
	Notes   string        `json:"notes"`
	ReadAt  *time.Time    `json:"readAt"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ContactMessageRequest is the form payload for the public contact form
type ContactMessageRequest struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Phone   string `form:"phone" json:"phone"`
	Message string `form:"message" json:"message" binding:"required"`
}

// ContactStats summarizes message counts per triage state
type ContactStats struct {
	Total     int64 `json:"total"`
	Unread    int64 `json:"unread"`
	Read      int64 `json:"read"`
	Responded int64 `json:"responded"`
}
