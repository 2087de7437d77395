package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
)

// PaymentRepository handles persistence for rent payments
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func paymentPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Room").
		Preload("Lease.Room.Property")
}

// Create records a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// List returns all payments with lease, tenant, room and property,
// newest payment date first
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := paymentPreloads(r.db.WithContext(ctx)).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetByID returns one payment with relations
func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := paymentPreloads(r.db.WithContext(ctx)).First(&payment, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return &payment, nil
}

// GetBasic returns one payment without relations
func (r *PaymentRepository) GetBasic(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return &payment, nil
}

// Update updates a payment record
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// Delete hard-deletes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Payment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	return nil
}

// ListPaidInRange returns paid payments inside [from, to], newest first
func (r *PaymentRepository) ListPaidInRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := paymentPreloads(r.db.WithContext(ctx)).
		Where("status = ? AND payment_date BETWEEN ? AND ?", models.PaymentPaid, from, to).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list paid payments: %w", err)
	}
	return payments, nil
}

// ListFiltered returns payments matching an optional status and date range,
// newest first
func (r *PaymentRepository) ListFiltered(ctx context.Context, status string, from, to *time.Time) ([]models.Payment, error) {
	query := paymentPreloads(r.db.WithContext(ctx))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if from != nil && to != nil {
		query = query.Where("payment_date BETWEEN ? AND ?", *from, *to)
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list filtered payments: %w", err)
	}
	return payments, nil
}

// ListPending returns pending payments oldest first, for the outstanding report
func (r *PaymentRepository) ListPending(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := paymentPreloads(r.db.WithContext(ctx)).
		Where("status = ?", models.PaymentPending).
		Order("payment_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}
