package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// MaintenanceHandler handles maintenance request routes
type MaintenanceHandler struct {
	requests   *repository.MaintenanceRepository
	tenants    *repository.TenantRepository
	properties *repository.PropertyRepository
	logger     *logrus.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(
	requests *repository.MaintenanceRepository,
	tenants *repository.TenantRepository,
	properties *repository.PropertyRepository,
	logger *logrus.Logger,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		requests:   requests,
		tenants:    tenants,
		properties: properties,
		logger:     logger,
	}
}

// List returns all requests, newest first
func (h *MaintenanceHandler) List(c *gin.Context) {
	requests, err := h.requests.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading maintenance requests.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// New returns the data for the new-request form
func (h *MaintenanceHandler) New(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading request form.")
		return
	}
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading request form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request":    nil,
		"tenants":    tenants,
		"properties": properties,
		"title":      "Submit New Request",
	})
}

// Create submits a new request; new requests always start open
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req models.MaintenanceRequestForm
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid maintenance request form.")
		return
	}

	request := &models.MaintenanceRequest{
		TenantID:    req.TenantID,
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.MaintenancePriority(req.Priority),
		Status:      models.MaintenanceOpen,
	}
	if err := h.requests.Create(c.Request.Context(), request); err != nil {
		respondServerError(c, h.logger, err, "Error submitting maintenance request.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/maintenance")
}

// View returns one request with tenant and property
func (h *MaintenanceHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id", "Request not found.")
	if !ok {
		return
	}

	request, err := h.requests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Request not found.", "Error loading request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// Edit returns the data for the edit-request form
func (h *MaintenanceHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "Request not found.")
	if !ok {
		return
	}

	request, err := h.requests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Request not found.", "Error loading request.")
		return
	}
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading request form.")
		return
	}
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading request form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request":    request,
		"tenants":    tenants,
		"properties": properties,
		"title":      "Edit Maintenance Request",
	})
}

// Update updates a request, including workflow status
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Request not found.")
	if !ok {
		return
	}

	var req models.MaintenanceRequestForm
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid maintenance request form.")
		return
	}

	request, err := h.requests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Request not found.", "Error updating request.")
		return
	}

	request.TenantID = req.TenantID
	request.PropertyID = req.PropertyID
	request.Title = req.Title
	request.Description = req.Description
	request.Priority = models.MaintenancePriority(req.Priority)
	if req.Status != "" {
		request.Status = models.MaintenanceStatus(req.Status)
	}
	request.Tenant = nil
	request.Property = nil

	if err := h.requests.Update(c.Request.Context(), request); err != nil {
		respondServerError(c, h.logger, err, "Error updating maintenance request.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/maintenance/%d", id))
}

// Delete hard-deletes a request
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Request not found.")
	if !ok {
		return
	}

	if err := h.requests.Delete(c.Request.Context(), id); err != nil {
		respondServerError(c, h.logger, err, "Error deleting maintenance request.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/maintenance")
}
