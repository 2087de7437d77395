package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// MaintenanceRepository handles persistence for maintenance requests
type MaintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Create creates a new maintenance request
func (r *MaintenanceRepository) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return nil
}

// List returns all requests with tenant and property, newest first
func (r *MaintenanceRepository) List(ctx context.Context) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Property").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return requests, nil
}

// ListFiltered returns requests matching optional status and priority, newest first
func (r *MaintenanceRepository) ListFiltered(ctx context.Context, status, priority string) ([]models.MaintenanceRequest, error) {
	query := r.db.WithContext(ctx).Preload("Tenant").Preload("Property")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var requests []models.MaintenanceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list filtered maintenance requests: %w", err)
	}
	return requests, nil
}

// GetByID returns one request with tenant and property
func (r *MaintenanceRepository) GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Property").
		First(&request, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance request %d: %w", id, err)
	}
	return &request, nil
}

// Update updates a maintenance request
func (r *MaintenanceRepository) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return fmt.Errorf("failed to update maintenance request: %w", err)
	}
	return nil
}

// Delete hard-deletes a maintenance request
func (r *MaintenanceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.MaintenanceRequest{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete maintenance request %d: %w", id, err)
	}
	return nil
}
