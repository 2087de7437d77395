package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// LeaseRepository handles persistence for leases and their documents.
// Creating and deleting a lease also flips the room status; both writes run
// inside one transaction so the room can never disagree with lease existence.
type LeaseRepository struct {
	db *gorm.DB
}

// NewLeaseRepository creates a new lease repository
func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// List returns all leases with tenant, room and property
func (r *LeaseRepository) List(ctx context.Context) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Room").
		Preload("Room.Property").
		Find(&leases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	return leases, nil
}

// ListForForm returns all leases with tenant, room and property, for payment forms
func (r *LeaseRepository) ListForForm(ctx context.Context) ([]models.Lease, error) {
	return r.List(ctx)
}

// GetByID returns one lease with relations; payments ordered by date ascending
func (r *LeaseRepository) GetByID(ctx context.Context, id uint) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Room").
		Preload("Room.Property").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC")
		}).
		Preload("Documents").
		First(&lease, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get lease %d: %w", id, err)
	}
	return &lease, nil
}

// GetBasic returns one lease without relations
func (r *LeaseRepository) GetBasic(ctx context.Context, id uint) (*models.Lease, error) {
	var lease models.Lease
	if err := r.db.WithContext(ctx).First(&lease, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get lease %d: %w", id, err)
	}
	return &lease, nil
}

// CreateWithRoom inserts the lease and marks its room occupied in one transaction
func (r *LeaseRepository) CreateWithRoom(ctx context.Context, lease *models.Lease) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lease).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", err)
		}
		err := tx.Model(&models.Room{}).
			Where("id = ?", lease.RoomID).
			Update("status", models.RoomOccupied).Error
		if err != nil {
			return fmt.Errorf("failed to mark room %d occupied: %w", lease.RoomID, err)
		}
		return nil
	})
}

// Update updates a lease record
func (r *LeaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	if err := r.db.WithContext(ctx).Save(lease).Error; err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}
	return nil
}

// DeleteWithRoom releases the room, removes the lease's document rows and
// deletes the lease, all in one transaction. File removal for the documents
// is the caller's concern and happens before this, best-effort.
func (r *LeaseRepository) DeleteWithRoom(ctx context.Context, lease *models.Lease) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Room{}).
			Where("id = ?", lease.RoomID).
			Update("status", models.RoomVacant).Error
		if err != nil {
			return fmt.Errorf("failed to release room %d: %w", lease.RoomID, err)
		}
		if err := tx.Where("lease_id = ?", lease.ID).Delete(&models.LeaseDocument{}).Error; err != nil {
			return fmt.Errorf("failed to delete documents for lease %d: %w", lease.ID, err)
		}
		if err := tx.Where("lease_id = ?", lease.ID).Delete(&models.Payment{}).Error; err != nil {
			return fmt.Errorf("failed to delete payments for lease %d: %w", lease.ID, err)
		}
		if err := tx.Delete(&models.Lease{}, lease.ID).Error; err != nil {
			return fmt.Errorf("failed to delete lease %d: %w", lease.ID, err)
		}
		return nil
	})
}

// ListDocuments returns the document rows attached to a lease
func (r *LeaseRepository) ListDocuments(ctx context.Context, leaseID uint) ([]models.LeaseDocument, error) {
	var docs []models.LeaseDocument
	if err := r.db.WithContext(ctx).Where("lease_id = ?", leaseID).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents for lease %d: %w", leaseID, err)
	}
	return docs, nil
}

// CreateDocument creates one lease document row
func (r *LeaseRepository) CreateDocument(ctx context.Context, doc *models.LeaseDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create lease document: %w", err)
	}
	return nil
}

// GetDocument returns one lease document row
func (r *LeaseRepository) GetDocument(ctx context.Context, id uint) (*models.LeaseDocument, error) {
	var doc models.LeaseDocument
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get lease document %d: %w", id, err)
	}
	return &doc, nil
}

// DeleteDocument removes one lease document row
func (r *LeaseRepository) DeleteDocument(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.LeaseDocument{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete lease document %d: %w", id, err)
	}
	return nil
}
