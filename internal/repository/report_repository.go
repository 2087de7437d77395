package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// ReportRepository issues the bounded aggregate and relation-heavy queries
// behind the dashboard and report views
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountProperties returns the total number of properties
func (r *ReportRepository) CountProperties(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Property{}))
}

// CountRooms returns the total number of rooms
func (r *ReportRepository) CountRooms(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Room{}))
}

// CountRoomsByStatus returns the number of rooms in the given status
func (r *ReportRepository) CountRoomsByStatus(ctx context.Context, status models.RoomStatus) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Room{}).Where("status = ?", status))
}

// CountTenants returns the total number of tenants
func (r *ReportRepository) CountTenants(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Tenant{}))
}

// CountActiveLeases returns the number of leases whose range contains now
func (r *ReportRepository) CountActiveLeases(ctx context.Context, now time.Time) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Lease{}).
		Where("start_date <= ? AND end_date >= ?", now, now))
}

// CountLeasesExpiring returns the number of leases ending within [now, until]
func (r *ReportRepository) CountLeasesExpiring(ctx context.Context, now, until time.Time) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Lease{}).
		Where("end_date >= ? AND end_date <= ?", now, until))
}

// CountMaintenanceByStatus returns the number of requests in the given status
func (r *ReportRepository) CountMaintenanceByStatus(ctx context.Context, status models.MaintenanceStatus) (int64, error) {
	return r.count(ctx, r.db.Model(&models.MaintenanceRequest{}).Where("status = ?", status))
}

// CountPaymentsByStatus returns the number of payments in the given status
func (r *ReportRepository) CountPaymentsByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Payment{}).Where("status = ?", status))
}

func (r *ReportRepository) count(ctx context.Context, query *gorm.DB) (int64, error) {
	var n int64
	if err := query.WithContext(ctx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

// SumPaidSince returns the sum of paid payment amounts dated on or after from
func (r *ReportRepository) SumPaidSince(ctx context.Context, from time.Time) (float64, error) {
	return r.sum(ctx, r.db.Model(&models.Payment{}).
		Where("status = ? AND payment_date >= ?", models.PaymentPaid, from))
}

// SumPaidBetween returns the sum of paid payment amounts inside [from, to]
func (r *ReportRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(ctx, r.db.Model(&models.Payment{}).
		Where("status = ? AND payment_date BETWEEN ? AND ?", models.PaymentPaid, from, to))
}

// SumAllPayments returns the all-time sum of payment amounts regardless of
// status
func (r *ReportRepository) SumAllPayments(ctx context.Context) (float64, error) {
	return r.sum(ctx, r.db.Model(&models.Payment{}))
}

// SumByStatus returns the sum of payment amounts in the given status
func (r *ReportRepository) SumByStatus(ctx context.Context, status models.PaymentStatus) (float64, error) {
	return r.sum(ctx, r.db.Model(&models.Payment{}).Where("status = ?", status))
}

func (r *ReportRepository) sum(ctx context.Context, query *gorm.DB) (float64, error) {
	var result struct {
		Total float64
	}
	err := query.WithContext(ctx).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return result.Total, nil
}

// PropertiesWithRooms returns all properties with their rooms
func (r *ReportRepository) PropertiesWithRooms(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.WithContext(ctx).Preload("Rooms").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to load properties with rooms: %w", err)
	}
	return properties, nil
}

// PropertiesForReport returns properties with rooms, the rooms' currently
// active leases and all maintenance requests
func (r *ReportRepository) PropertiesForReport(ctx context.Context, now time.Time) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Rooms.Leases", "start_date <= ? AND end_date >= ?", now, now).
		Preload("Maintenance").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load properties for report: %w", err)
	}
	return properties, nil
}

// VacantRoomsWithProperty returns vacant rooms with their owning properties
func (r *ReportRepository) VacantRoomsWithProperty(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RoomVacant).
		Preload("Property").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load vacant rooms: %w", err)
	}
	return rooms, nil
}

// TenantsWithActiveLeases returns every tenant; tenants with a lease active
// at now get that lease preloaded with room, property and payments. Tenants
// without one still appear with an empty lease slice.
func (r *ReportRepository) TenantsWithActiveLeases(ctx context.Context, now time.Time) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Leases", "start_date <= ? AND end_date >= ?", now, now).
		Preload("Leases.Room").
		Preload("Leases.Room.Property").
		Preload("Leases.Payments").
		Find(&tenants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tenants with active leases: %w", err)
	}
	return tenants, nil
}

// LeasesExpiring returns leases ending within [now, until] with relations,
// soonest expiry first
func (r *ReportRepository) LeasesExpiring(ctx context.Context, now, until time.Time) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.WithContext(ctx).
		Where("end_date >= ? AND end_date <= ?", now, until).
		Preload("Tenant").
		Preload("Room").
		Preload("Room.Property").
		Order("end_date ASC").
		Find(&leases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load expiring leases: %w", err)
	}
	return leases, nil
}

// SumPaidForLeases returns the paid revenue across the given leases dated on
// or after from. An empty lease set yields zero without touching the database.
func (r *ReportRepository) SumPaidForLeases(ctx context.Context, leaseIDs []uint, from time.Time) (float64, error) {
	if len(leaseIDs) == 0 {
		return 0, nil
	}
	return r.sum(ctx, r.db.Model(&models.Payment{}).
		Where("lease_id IN ? AND status = ? AND payment_date >= ?", leaseIDs, models.PaymentPaid, from))
}
