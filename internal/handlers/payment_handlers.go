package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// PaymentHandler handles payment routes
type PaymentHandler struct {
	payments *repository.PaymentRepository
	leases   *repository.LeaseRepository
	logger   *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *repository.PaymentRepository, leases *repository.LeaseRepository, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, leases: leases, logger: logger}
}

// List returns all payments, newest payment date first
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading payments.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// New returns the data for the record-payment form
func (h *PaymentHandler) New(c *gin.Context) {
	leases, err := h.leases.ListForForm(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading payment form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": nil,
		"leases":  leases,
		"title":   "Record New Payment",
	})
}

func paymentFromRequest(req *models.PaymentRequest) (*models.Payment, error) {
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid payment date: %w", err)
	}
	forMonth, err := parseDate(req.PaymentForMonth)
	if err != nil {
		return nil, fmt.Errorf("invalid payment month: %w", err)
	}
	return &models.Payment{
		LeaseID:         req.LeaseID,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		PaymentForMonth: forMonth,
		Status:          models.PaymentStatus(req.Status),
		Note:            req.Note,
	}, nil
}

// Create records a payment against a lease
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid payment form.")
		return
	}

	payment, err := paymentFromRequest(&req)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payment form.")
		return
	}

	if err := h.payments.Create(c.Request.Context(), payment); err != nil {
		respondServerError(c, h.logger, err, "Error recording payment.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/payments")
}

// View returns one payment with lease, tenant, room and property
func (h *PaymentHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id", "Payment not found.")
	if !ok {
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Payment not found.", "Error loading payment.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// Edit returns the data for the edit-payment form
func (h *PaymentHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "Payment not found.")
	if !ok {
		return
	}

	payment, err := h.payments.GetBasic(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Payment not found.", "Error loading payment.")
		return
	}
	leases, err := h.leases.ListForForm(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading payment form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
		"leases":  leases,
		"title":   "Edit Payment Record",
	})
}

// Update updates a payment record
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Payment not found.")
	if !ok {
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid payment form.")
		return
	}

	payment, err := h.payments.GetBasic(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Payment not found.", "Error updating payment.")
		return
	}

	updated, err := paymentFromRequest(&req)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payment form.")
		return
	}
	payment.LeaseID = updated.LeaseID
	payment.Amount = updated.Amount
	payment.PaymentDate = updated.PaymentDate
	payment.PaymentForMonth = updated.PaymentForMonth
	payment.Status = updated.Status
	payment.Note = updated.Note

	if err := h.payments.Update(c.Request.Context(), payment); err != nil {
		respondServerError(c, h.logger, err, "Error updating payment.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/payments/%d", id))
}

// Delete hard-deletes a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Payment not found.")
	if !ok {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		respondServerError(c, h.logger, err, "Error deleting payment.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/payments")
}
