package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// ContactRepository handles persistence for contact messages
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a newly submitted contact message
func (r *ContactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// List returns messages newest first, optionally filtered by status
func (r *ContactRepository) List(ctx context.Context, status string) ([]models.ContactMessage, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

// Stats returns message counts per triage state
func (r *ContactRepository) Stats(ctx context.Context) (*models.ContactStats, error) {
	stats := &models.ContactStats{}

	counts := []struct {
		status models.ContactStatus
		dest   *int64
	}{
		{"", &stats.Total},
		{models.ContactUnread, &stats.Unread},
		{models.ContactRead, &stats.Read},
		{models.ContactResponded, &stats.Responded},
	}
	for _, c := range counts {
		query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
		if c.status != "" {
			query = query.Where("status = ?", c.status)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count contact messages: %w", err)
		}
	}
	return stats, nil
}

// GetByID returns one message
func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get contact message %d: %w", id, err)
	}
	return &message, nil
}

// MarkRead sets the message status to read and stamps ReadAt
func (r *ContactRepository) MarkRead(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.ContactRead,
			"read_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark contact message %d read: %w", id, err)
	}
	return nil
}

// MarkResponded sets the message status to responded with optional notes
func (r *ContactRepository) MarkResponded(ctx context.Context, id uint, notes string) error {
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.ContactResponded,
			"notes":  notes,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark contact message %d responded: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a contact message
func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete contact message %d: %w", id, err)
	}
	return nil
}
