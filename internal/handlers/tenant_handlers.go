package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// TenantHandler handles tenant routes
type TenantHandler struct {
	tenants *repository.TenantRepository
	logger  *logrus.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenants *repository.TenantRepository, logger *logrus.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, logger: logger}
}

// List returns all tenants ordered by last name
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading tenants.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

// New returns the data for the new-tenant form
func (h *TenantHandler) New(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tenant": nil, "title": "Add New Tenant"})
}

func tenantFromRequest(req *models.TenantRequest) (*models.Tenant, error) {
	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}
	return &models.Tenant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		DOB:       dob,
	}, nil
}

// Create creates a tenant; a duplicate email yields 409
func (h *TenantHandler) Create(c *gin.Context) {
	var req models.TenantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid tenant form.")
		return
	}

	tenant, err := tenantFromRequest(&req)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid tenant form.")
		return
	}

	if err := h.tenants.Create(c.Request.Context(), tenant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.String(http.StatusConflict, "Error: A tenant with this email already exists.")
			return
		}
		respondServerError(c, h.logger, err, "Error creating tenant.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/tenants")
}

// View returns one tenant with lease history
func (h *TenantHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id", "Tenant not found.")
	if !ok {
		return
	}

	tenant, err := h.tenants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Tenant not found.", "Error loading tenant.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant})
}

// Edit returns the data for the edit-tenant form
func (h *TenantHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "Tenant not found.")
	if !ok {
		return
	}

	tenant, err := h.tenants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Tenant not found.", "Error loading tenant.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant, "title": "Edit Tenant"})
}

// Update updates a tenant; a duplicate email yields 409
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Tenant not found.")
	if !ok {
		return
	}

	var req models.TenantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid tenant form.")
		return
	}

	tenant, err := h.tenants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Tenant not found.", "Error updating tenant.")
		return
	}

	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid tenant form.")
		return
	}

	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.DOB = dob
	tenant.Leases = nil

	if err := h.tenants.Update(c.Request.Context(), tenant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.String(http.StatusConflict, "Error: A tenant with this email already exists.")
			return
		}
		respondServerError(c, h.logger, err, "Error updating tenant.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/tenants/%d", id))
}

// Delete hard-deletes a tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Tenant not found.")
	if !ok {
		return
	}

	if err := h.tenants.Delete(c.Request.Context(), id); err != nil {
		respondServerError(c, h.logger, err, "Error deleting tenant.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/tenants")
}
