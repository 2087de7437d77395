package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// PropertyRepository handles persistence for properties and their rooms
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create creates a new property record
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// List returns all properties with their rooms
func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.WithContext(ctx).Preload("Rooms").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetByID returns one property with its rooms
func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).Preload("Rooms").First(&property, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get property %d: %w", id, err)
	}
	return &property, nil
}

// Update updates a property record
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// Delete hard-deletes a property and its rooms
func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete rooms for property %d: %w", id, err)
		}
		if err := tx.Delete(&models.Property{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete property %d: %w", id, err)
		}
		return nil
	})
}

// CreateRoom creates a new room under a property
func (r *PropertyRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// GetRoomByID returns one room with its owning property
func (r *PropertyRepository) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Property").First(&room, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get room %d: %w", id, err)
	}
	return &room, nil
}

// UpdateRoom updates a room record
func (r *PropertyRepository) UpdateRoom(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

// DeleteRoom hard-deletes a room
func (r *PropertyRepository) DeleteRoom(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}

// ListVacantRooms returns vacant rooms with their properties, for lease forms
func (r *PropertyRepository) ListVacantRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RoomVacant).
		Preload("Property").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vacant rooms: %w", err)
	}
	return rooms, nil
}

// ListRooms returns all rooms with their properties
func (r *PropertyRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Preload("Property").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// ReleaseStaleOccupancies flips occupied rooms with no lease active at the
// given time back to vacant and returns the number of rooms released. Room
// status is the authoritative occupancy signal; this repairs drift left by
// expired leases.
func (r *PropertyRepository) ReleaseStaleOccupancies(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("status = ?", models.RoomOccupied).
		Where("id NOT IN (?)", r.db.
			Model(&models.Lease{}).
			Select("room_id").
			Where("start_date <= ? AND end_date >= ?", now, now),
		).
		Update("status", models.RoomVacant)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to release stale occupancies: %w", result.Error)
	}
	return result.RowsAffected, nil
}
