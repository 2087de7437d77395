package models

import "time"

// MaintenancePriority represents the urgency of a maintenance request
type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

// MaintenanceStatus represents the workflow state of a maintenance request
type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// MaintenanceRequest represents a repair or service request raised by a tenant
type MaintenanceRequest struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	TenantID    uint                `json:"tenantId" gorm:"not null;index"`
	PropertyID  uint                `json:"propertyId" gorm:"not null;index"`
	Title       string              `json:"title" gorm:"not null"`
	Description string              `json:"description"`
	Priority    MaintenancePriority `json:"priority" gorm:"not null;default:medium"`
	Status      MaintenanceStatus   `json:"status" gorm:"not null;default:open"`

	Tenant   *Tenant   `json:"tenant,omitempty"`
	Property *Property `json:"property,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// MaintenanceRequestForm is the form payload for creating or updating a request
type MaintenanceRequestForm struct {
	TenantID    uint   `form:"tenantId" json:"tenantId" binding:"required"`
	PropertyID  uint   `form:"propertyId" json:"propertyId" binding:"required"`
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Priority    string `form:"priority" json:"priority" binding:"required"`
	Status      string `form:"status" json:"status"`
}
