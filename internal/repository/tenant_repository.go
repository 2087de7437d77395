package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// TenantRepository handles persistence for tenants
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant record. A duplicate email surfaces as
// gorm.ErrDuplicatedKey for the handler to map to a conflict response.
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// List returns all tenants ordered by last name
func (r *TenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := r.db.WithContext(ctx).Order("last_name ASC").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// GetByID returns one tenant with lease history including room and property
func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Leases").
		Preload("Leases.Room").
		Preload("Leases.Room.Property").
		First(&tenant, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %d: %w", id, err)
	}
	return &tenant, nil
}

// Update updates a tenant record
func (r *TenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	if err := r.db.WithContext(ctx).Save(tenant).Error; err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	return nil
}

// Delete hard-deletes a tenant
func (r *TenantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tenant{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete tenant %d: %w", id, err)
	}
	return nil
}
